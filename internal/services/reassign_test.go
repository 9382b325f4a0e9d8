package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagesToFinish drives ReassignPage the way the stepper does and returns
// the number of calls until it reports finished.
func pagesToFinish(t *testing.T, r *Reassigner, poetID, ownerID uint64) int {
	t.Helper()
	calls := 0
	for page := 1; ; page++ {
		calls++
		finished, err := r.ReassignPage(poetID, ownerID, page)
		require.NoError(t, err)
		if finished {
			return calls
		}
		require.Less(t, calls, 100, "reassignment did not terminate")
	}
}

func TestReassignPageCounts(t *testing.T) {
	cases := []struct {
		name      string
		poems     int
		wantCalls int
	}{
		{"no poems", 0, 1},
		{"one poem", 1, 2},
		{"exactly one page", 10, 2},
		{"one page plus one", 11, 3},
		{"several pages", 25, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			r := NewReassigner(db, 10, testLogger())

			holding := uint64(5)
			owner := uint64(7)
			poet := createPoet(t, db, "Wilfred", holding)
			createLinkedPoems(t, db, poet.PoetID, holding, tc.poems)

			calls := pagesToFinish(t, r, poet.PoetID, owner)
			assert.Equal(t, tc.wantCalls, calls)
			assert.Equal(t, int64(tc.poems), countPoemsOwnedBy(t, db, owner))
			assert.Equal(t, int64(0), countPoemsOwnedBy(t, db, holding))
		})
	}
}

func TestReassignPageRejectsBadPage(t *testing.T) {
	db := newTestDB(t)
	r := NewReassigner(db, 10, testLogger())

	_, err := r.ReassignPage(10, 7, 0)
	assert.Error(t, err)
}

func TestReassignPageLeavesUnlinkedPoemsAlone(t *testing.T) {
	db := newTestDB(t)
	r := NewReassigner(db, 10, testLogger())

	holding := uint64(5)
	owner := uint64(7)
	poet := createPoet(t, db, "Wilfred", holding)
	other := createPoet(t, db, "Siegfried", holding)
	createLinkedPoems(t, db, poet.PoetID, holding, 3)
	createLinkedPoems(t, db, other.PoetID, holding, 2)

	require.NoError(t, r.ReassignAll(poet.PoetID, owner))

	assert.Equal(t, int64(3), countPoemsOwnedBy(t, db, owner))
	assert.Equal(t, int64(2), countPoemsOwnedBy(t, db, holding))
}

func TestReassignAllIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	r := NewReassigner(db, 10, testLogger())

	holding := uint64(5)
	owner := uint64(7)
	poet := createPoet(t, db, "Wilfred", holding)
	createLinkedPoems(t, db, poet.PoetID, holding, 12)

	require.NoError(t, r.ReassignAll(poet.PoetID, owner))
	require.NoError(t, r.ReassignAll(poet.PoetID, owner))

	assert.Equal(t, int64(12), countPoemsOwnedBy(t, db, owner))
}
