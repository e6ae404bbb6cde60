package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityRepo_FreeSlug(t *testing.T) {
	r := newTestRepos(t)

	available, err := r.availability.IsAvailable(context.Background(), "never-claimed", uuid.Nil)

	require.NoError(t, err)
	assert.True(t, available)
}

func TestAvailabilityRepo_TakenByActiveSlug(t *testing.T) {
	r := newTestRepos(t)
	inv := createInvitation(t, r)
	setSlug(t, r, inv.ID, "kim-lee-2027")

	available, err := r.availability.IsAvailable(context.Background(), "kim-lee-2027", uuid.Nil)

	require.NoError(t, err)
	assert.False(t, available)
}

func TestAvailabilityRepo_TakenByAlias(t *testing.T) {
	r := newTestRepos(t)
	inv := createInvitation(t, r)
	_, err := r.aliases.Insert(context.Background(), inv.ID, "our-old-address")
	require.NoError(t, err)

	available, err := r.availability.IsAvailable(context.Background(), "our-old-address", uuid.Nil)

	require.NoError(t, err)
	assert.False(t, available)
}

func TestAvailabilityRepo_ExcludesOwnRows(t *testing.T) {
	r := newTestRepos(t)
	inv := createInvitation(t, r)
	setSlug(t, r, inv.ID, "kim-lee-2027")
	_, err := r.aliases.Insert(context.Background(), inv.ID, "our-old-address")
	require.NoError(t, err)

	// The invitation's own active slug reads as available to itself.
	available, err := r.availability.IsAvailable(context.Background(), "kim-lee-2027", inv.ID)
	require.NoError(t, err)
	assert.True(t, available)

	// So does its own alias — the reclaim path.
	available, err = r.availability.IsAvailable(context.Background(), "our-old-address", inv.ID)
	require.NoError(t, err)
	assert.True(t, available)

	// But not to anyone else.
	available, err = r.availability.IsAvailable(context.Background(), "our-old-address", uuid.New())
	require.NoError(t, err)
	assert.False(t, available)
}
