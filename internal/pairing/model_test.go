package pairing

import (
	"testing"
	"visit-planner-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCreateCouplesCounts(t *testing.T) {
	persons := []domain.Person{
		{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
	}

	couples := CreateCouples(persons)

	// C(4,2) two-person pairs plus 4 degenerate self-pairs.
	require.Len(t, couples, 10)

	seen := make(map[domain.Couple]struct{}, len(couples))
	selfPairs := 0
	for _, c := range couples {
		_, dup := seen[c]
		require.Falsef(t, dup, "duplicate couple %v", c)
		seen[c] = struct{}{}
		if c.Degenerate() {
			selfPairs++
		}
	}
	require.Equal(t, 4, selfPairs)
}

func TestBuildModelForcesInfeasiblePairsOff(t *testing.T) {
	persons := []domain.Person{
		{Name: "a", Slots: []int{20195130}, Sector: 0b01},
		{Name: "b", Slots: []int{20195130}, Sector: 0b10}, // sector-disjoint from a
		{Name: "c", Slots: []int{20195131}, Sector: 0b01}, // no slot shared with a
	}

	model, err := BuildModel(persons)
	require.NoError(t, err)

	for _, cand := range model.Candidates() {
		if cand.Couple.Degenerate() {
			require.True(t, cand.forcedOff, "self-pair %v must be forced off", cand.Couple)
			continue
		}
		// No pair here has both a common sector and a common slot.
		require.Truef(t, cand.forcedOff, "pair %v should be forced off", cand.Couple)
		require.Zero(t, cand.weight)
	}
}

func TestBuildModelWeights(t *testing.T) {
	persons := []domain.Person{
		{Name: "a", Slots: []int{1, 2, 3}, Sector: 1},
		{Name: "b", Slots: []int{1, 2, 3}, Sector: 1},
		{Name: "c", Slots: []int{3}, Sector: 1},
	}

	model, err := BuildModel(persons)
	require.NoError(t, err)
	require.Equal(t, 3, model.MaxShared())

	weightOf := func(a, b string) int {
		for _, cand := range model.Candidates() {
			if cand.Couple == domain.NewCouple(a, b) {
				return cand.weight
			}
		}
		t.Fatalf("candidate %s/%s not found", a, b)
		return 0
	}

	// maxShared bonus + own shared-slot count.
	require.Equal(t, 3+3, weightOf("a", "b"))
	require.Equal(t, 3+1, weightOf("a", "c"))
	require.Equal(t, 3+1, weightOf("b", "c"))
}

func TestBuildModelRejectsBadInput(t *testing.T) {
	_, err := BuildModel(nil)
	require.Error(t, err)

	_, err = BuildModel([]domain.Person{{Name: "a"}, {Name: "a"}})
	require.Error(t, err)

	_, err = BuildModel([]domain.Person{{Name: ""}})
	require.Error(t, err)
}
