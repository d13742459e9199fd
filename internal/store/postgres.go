package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"orgauth/internal/models"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Postgres implements Store on PostgreSQL through database/sql and lib/pq.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	return createUser(ctx, p.db, user)
}

func (p *Postgres) CreateOrganisation(ctx context.Context, org *models.Organisation) error {
	return createOrganisation(ctx, p.db, org)
}

func (p *Postgres) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT user_id, first_name, last_name, email, password, phone, created_at
		FROM users WHERE email = $1`
	return scanUser(p.db.QueryRowContext(ctx, query, email))
}

func (p *Postgres) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT user_id, first_name, last_name, email, password, phone, created_at
		FROM users WHERE user_id = $1`
	return scanUser(p.db.QueryRowContext(ctx, query, id))
}

func (p *Postgres) FindOrganisationByID(ctx context.Context, id string) (*models.Organisation, error) {
	const query = `SELECT org_id, name, description, created_at FROM organisations WHERE org_id = $1`
	var (
		o           models.Organisation
		description sql.NullString
	)
	err := p.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &description, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find organisation: %w", err)
	}
	o.Description = description.String
	return &o, nil
}

func (p *Postgres) AddMembership(ctx context.Context, userID, orgID string) error {
	return addMembership(ctx, p.db, userID, orgID)
}

func (p *Postgres) ListOrganisationsForUser(ctx context.Context, userID string) ([]models.Organisation, error) {
	const query = `SELECT o.org_id, o.name, o.description, o.created_at
		FROM organisations o
		INNER JOIN memberships m ON m.org_id = o.org_id
		WHERE m.user_id = $1
		ORDER BY m.created_at ASC, o.org_id ASC`
	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	defer rows.Close()

	orgs := make([]models.Organisation, 0)
	for rows.Next() {
		var (
			o           models.Organisation
			description sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Name, &description, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan organisation: %w", err)
		}
		o.Description = description.String
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	return orgs, nil
}

func (p *Postgres) ListUsersForOrganisation(ctx context.Context, orgID string) ([]models.User, error) {
	const query = `SELECT u.user_id, u.first_name, u.last_name, u.email, u.phone, u.created_at
		FROM users u
		INNER JOIN memberships m ON m.user_id = u.user_id
		WHERE m.org_id = $1
		ORDER BY m.created_at ASC, u.user_id ASC`
	rows, err := p.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var (
			u     models.User
			phone sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		u.Phone = phone.String
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return users, nil
}

func (p *Postgres) RegisterUser(ctx context.Context, user *models.User, org *models.Organisation) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration: %w", err)
	}
	defer tx.Rollback()

	if err := createUser(ctx, tx, user); err != nil {
		return err
	}
	if err := createOrganisation(ctx, tx, org); err != nil {
		return err
	}
	if err := addMembership(ctx, tx, user.ID, org.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func createUser(ctx context.Context, q querier, user *models.User) error {
	const query = `INSERT INTO users (user_id, first_name, last_name, email, password, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := q.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Password, nilIfEmpty(user.Phone),
	).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func createOrganisation(ctx context.Context, q querier, org *models.Organisation) error {
	const query = `INSERT INTO organisations (org_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	err := q.QueryRowContext(ctx, query, org.ID, org.Name, nilIfEmpty(org.Description)).Scan(&org.CreatedAt)
	if err != nil {
		return fmt.Errorf("create organisation: %w", translate(err))
	}
	return nil
}

func addMembership(ctx context.Context, q querier, userID, orgID string) error {
	const query = `INSERT INTO memberships (user_id, org_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, org_id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, userID, orgID); err != nil {
		return fmt.Errorf("add membership: %w", translate(err))
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u     models.User
		phone sql.NullString
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &phone, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Phone = phone.String
	return &u, nil
}

// translate maps constraint violations onto the store sentinel errors.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrNotFound, pqErr.Constraint)
		}
	}
	return err
}

func nilIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
