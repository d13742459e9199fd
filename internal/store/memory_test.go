package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgauth/internal/models"
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u := sampleUser()
	require.NoError(t, m.CreateUser(ctx, u))
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := m.FindUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := m.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	dup := sampleUser()
	dup.ID = "user-2"
	assert.ErrorIs(t, m.CreateUser(ctx, dup), ErrDuplicateKey)

	_, err = m.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryMemberships(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u := sampleUser()
	require.NoError(t, m.CreateUser(ctx, u))
	first := &models.Organisation{ID: "org-1", Name: "First"}
	second := &models.Organisation{ID: "org-2", Name: "Second"}
	require.NoError(t, m.CreateOrganisation(ctx, first))
	require.NoError(t, m.CreateOrganisation(ctx, second))

	require.NoError(t, m.AddMembership(ctx, u.ID, second.ID))
	require.NoError(t, m.AddMembership(ctx, u.ID, first.ID))
	require.NoError(t, m.AddMembership(ctx, u.ID, second.ID))

	orgs, err := m.ListOrganisationsForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "org-2", orgs[0].ID)
	assert.Equal(t, "org-1", orgs[1].ID)

	members, err := m.ListUsersForOrganisation(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Empty(t, members[0].Password)

	assert.ErrorIs(t, m.AddMembership(ctx, "missing", first.ID), ErrNotFound)
	assert.ErrorIs(t, m.AddMembership(ctx, u.ID, "missing"), ErrNotFound)

	none, err := m.ListOrganisationsForUser(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryRegisterUserIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.RegisterUser(ctx, sampleUser(), &models.Organisation{ID: "org-1", Name: "John's Organisation"}))

	dup := sampleUser()
	dup.ID = "user-2"
	err := m.RegisterUser(ctx, dup, &models.Organisation{ID: "org-2", Name: "John's Organisation"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = m.FindUserByID(ctx, "user-2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.FindOrganisationByID(ctx, "org-2")
	assert.ErrorIs(t, err, ErrNotFound)

	fresh := sampleUser()
	fresh.ID = "user-3"
	fresh.Email = "jane@example.com"
	err = m.RegisterUser(ctx, fresh, &models.Organisation{ID: "org-1", Name: "clash"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	_, err = m.FindUserByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConcurrentRegistrationsWithSameEmail(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := sampleUser()
			u.ID = fmt.Sprintf("user-%d", i)
			err := m.RegisterUser(ctx, u, &models.Organisation{ID: fmt.Sprintf("org-%d", i), Name: "x"})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}
