package services

import (
	"testing"

	"github.com/footpoets/claimsdb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenClaimRecordsBothSides(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	require.NoError(t, store.OpenClaim(10, 7))

	userID, found, err := store.ClaimingUser(10)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(7), userID)

	pending, err := store.HasPendingClaim(10)
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestOpenClaimIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	require.NoError(t, store.OpenClaim(10, 7))
	require.NoError(t, store.OpenClaim(10, 7))

	userID, found, err := store.ClaimingUser(10)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(7), userID)
}

func TestOpenClaimConflictsWithOtherUser(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	require.NoError(t, store.OpenClaim(10, 7))

	err := store.OpenClaim(10, 8)
	assert.ErrorIs(t, err, ErrClaimConflict)

	// The original claim is untouched
	userID, found, err := store.ClaimingUser(10)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(7), userID)
}

func TestCloseClaimClearsBothSides(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	require.NoError(t, store.OpenClaim(10, 7))
	require.NoError(t, store.OpenClaim(11, 7))
	require.NoError(t, store.CloseClaim(10, 7))

	_, found, err := store.ClaimingUser(10)
	require.NoError(t, err)
	assert.False(t, found)

	// The user still holds the other claim
	userID, found, err := store.ClaimingUser(11)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(7), userID)
}

func TestCloseClaimWithoutClaimIsNoop(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	require.NoError(t, store.CloseClaim(10, 7))
}

func TestPrimaryClaimFlags(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	require.NoError(t, store.OpenClaim(10, 7))
	require.NoError(t, store.OpenPrimaryClaim(10, 7))

	userID, found, err := store.PendingPrimaryClaimUser(10)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(7), userID)

	poetID, found, err := store.UserPendingPrimaryClaim(7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(10), poetID)

	mine, err := store.PoetClaimedAsPrimaryBy(10, 7)
	require.NoError(t, err)
	assert.True(t, mine)

	other, err := store.PoetClaimedAsPrimaryBy(10, 8)
	require.NoError(t, err)
	assert.False(t, other)

	require.NoError(t, store.ClosePrimaryClaim(10, 7))

	_, found, err = store.PendingPrimaryClaimUser(10)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = store.UserPendingPrimaryClaim(7)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHasPendingClaimSeesPrimaryOnlyClaims(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	require.NoError(t, store.OpenPrimaryClaim(10, 7))

	pending, err := store.HasPendingClaim(10)
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestDisableClaims(t *testing.T) {
	db := newTestDB(t)
	store := NewClaimStore(db, config.DefaultMetaKeys())

	disabled, err := store.ClaimsDisabled(7)
	require.NoError(t, err)
	assert.False(t, disabled)

	require.NoError(t, store.DisableClaims(7))

	disabled, err = store.ClaimsDisabled(7)
	require.NoError(t, err)
	assert.True(t, disabled)
}
