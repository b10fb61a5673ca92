package storage

import (
	"testing"
	"time"

	"github.com/feedify/backend/internal/domain/space"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	owner := newTestUser("alice", "alice@example.com")
	require.NoError(t, NewUserRepository(db).Save(owner))
	repo := NewSpaceRepository(db)

	base := time.Now()
	require.NoError(t, repo.Create(&space.Space{UserID: owner.ID, Name: "talks", Title: "Conference talks", CreatedAt: base}))
	require.NoError(t, repo.Create(&space.Space{UserID: owner.ID, Name: "team", Title: "Team retro", CreatedAt: base.Add(time.Second)}))

	err := repo.Create(&space.Space{UserID: owner.ID, Name: "talks", Title: "Duplicate"})
	assert.ErrorIs(t, err, space.ErrSpaceExists)

	found, err := repo.FindByName(owner.ID, "talks")
	require.NoError(t, err)
	assert.Equal(t, "Conference talks", found.Title)

	_, err = repo.FindByName(owner.ID, "missing")
	assert.ErrorIs(t, err, space.ErrSpaceNotFound)

	list, err := repo.ListByUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "talks", list[0].Name)
	assert.Equal(t, "team", list[1].Name)

	list, err = repo.ListByUser("nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
}
