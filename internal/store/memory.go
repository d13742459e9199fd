package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"orgauth/internal/models"
)

type membershipKey struct {
	userID string
	orgID  string
}

// Memory is a process-local Store. It backs the server when no database is configured.
type Memory struct {
	mu          sync.Mutex
	users       map[string]models.User
	emails      map[string]string
	orgs        map[string]models.Organisation
	memberships []models.Membership
	linked      map[membershipKey]struct{}
	now         func() time.Time
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:  make(map[string]models.User),
		emails: make(map[string]string),
		orgs:   make(map[string]models.Organisation),
		linked: make(map[membershipKey]struct{}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createUser(user)
}

func (m *Memory) CreateOrganisation(_ context.Context, org *models.Organisation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createOrganisation(org)
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

func (m *Memory) FindUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) FindOrganisationByID(_ context.Context, id string) (*models.Organisation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orgs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (m *Memory) AddMembership(_ context.Context, userID, orgID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addMembership(userID, orgID)
}

func (m *Memory) ListOrganisationsForUser(_ context.Context, userID string) ([]models.Organisation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orgs := make([]models.Organisation, 0)
	for _, ms := range m.memberships {
		if ms.UserID == userID {
			orgs = append(orgs, m.orgs[ms.OrgID])
		}
	}
	return orgs, nil
}

func (m *Memory) ListUsersForOrganisation(_ context.Context, orgID string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0)
	for _, ms := range m.memberships {
		if ms.OrgID == orgID {
			u := m.users[ms.UserID]
			u.Password = ""
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *Memory) RegisterUser(_ context.Context, user *models.User, org *models.Organisation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.emails[user.Email]; ok {
		return fmt.Errorf("create user: %w: users_email_key", ErrDuplicateKey)
	}
	if _, ok := m.users[user.ID]; ok {
		return fmt.Errorf("create user: %w: users_pkey", ErrDuplicateKey)
	}
	if _, ok := m.orgs[org.ID]; ok {
		return fmt.Errorf("create organisation: %w: organisations_pkey", ErrDuplicateKey)
	}
	// All checks passed under the lock, so the writes below cannot fail halfway.
	if err := m.createUser(user); err != nil {
		return err
	}
	if err := m.createOrganisation(org); err != nil {
		return err
	}
	return m.addMembership(user.ID, org.ID)
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) createUser(user *models.User) error {
	if _, ok := m.emails[user.Email]; ok {
		return fmt.Errorf("create user: %w: users_email_key", ErrDuplicateKey)
	}
	if _, ok := m.users[user.ID]; ok {
		return fmt.Errorf("create user: %w: users_pkey", ErrDuplicateKey)
	}
	user.CreatedAt = m.now()
	m.users[user.ID] = *user
	m.emails[user.Email] = user.ID
	return nil
}

func (m *Memory) createOrganisation(org *models.Organisation) error {
	if _, ok := m.orgs[org.ID]; ok {
		return fmt.Errorf("create organisation: %w: organisations_pkey", ErrDuplicateKey)
	}
	org.CreatedAt = m.now()
	m.orgs[org.ID] = *org
	return nil
}

func (m *Memory) addMembership(userID, orgID string) error {
	if _, ok := m.users[userID]; !ok {
		return fmt.Errorf("add membership: %w: user %s", ErrNotFound, userID)
	}
	if _, ok := m.orgs[orgID]; !ok {
		return fmt.Errorf("add membership: %w: organisation %s", ErrNotFound, orgID)
	}
	key := membershipKey{userID: userID, orgID: orgID}
	if _, ok := m.linked[key]; ok {
		return nil
	}
	m.linked[key] = struct{}{}
	m.memberships = append(m.memberships, models.Membership{UserID: userID, OrgID: orgID, CreatedAt: m.now()})
	return nil
}
