package drives

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/gridbox/f1derive/pkg/model"
)

func TestReconstructSingleTenure(t *testing.T) {
	got := Reconstruct(&Input{
		Year:   2024,
		Rounds: []int{1, 2, 3},
		Entries: []Entry{
			{DriverID: 1, Round: 1, ConstructorID: 5},
			{DriverID: 1, Round: 2, ConstructorID: 5},
			{DriverID: 1, Round: 3, ConstructorID: 5},
		},
	})
	want := []model.Drive{
		{Year: 2024, DriverID: 1, Sequence: 1, ConstructorID: intPtr(5),
			FirstRound: 1, LastRound: 3, FirstOfSeason: true, LastOfSeason: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconstruct() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructTeamSwitch(t *testing.T) {
	got := Reconstruct(&Input{
		Year:   2024,
		Rounds: []int{1, 2, 3, 4},
		Entries: []Entry{
			{DriverID: 1, Round: 1, ConstructorID: 5},
			{DriverID: 1, Round: 2, ConstructorID: 5},
			{DriverID: 1, Round: 3, ConstructorID: 7},
			{DriverID: 1, Round: 4, ConstructorID: 7},
		},
	})
	assert.Len(t, got, 2)
	assert.Equal(t, intPtr(5), got[0].ConstructorID)
	assert.Equal(t, 2, got[0].LastRound)
	assert.True(t, got[0].FirstOfSeason)
	assert.False(t, got[0].LastOfSeason)
	assert.Equal(t, intPtr(7), got[1].ConstructorID)
	assert.Equal(t, 3, got[1].FirstRound)
	assert.Equal(t, 2, got[1].Sequence)
	assert.True(t, got[1].LastOfSeason)
}

func TestReconstructGapSameTeamMerges(t *testing.T) {
	// missing round 3 with the same team on both sides is one tenure
	got := Reconstruct(&Input{
		Year:   2024,
		Rounds: []int{1, 2, 3, 4, 5},
		Entries: []Entry{
			{DriverID: 1, Round: 1, ConstructorID: 5},
			{DriverID: 1, Round: 2, ConstructorID: 5},
			{DriverID: 1, Round: 4, ConstructorID: 5},
			{DriverID: 1, Round: 5, ConstructorID: 5},
		},
	})
	want := []model.Drive{
		{Year: 2024, DriverID: 1, Sequence: 1, ConstructorID: intPtr(5),
			FirstRound: 1, LastRound: 5, FirstOfSeason: true, LastOfSeason: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconstruct() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructGapBetweenTeamsBecomesHiatus(t *testing.T) {
	// a gap bracketed by different teams is its own constructor-less span
	got := Reconstruct(&Input{
		Year:   2024,
		Rounds: []int{1, 2, 3, 4, 5},
		Entries: []Entry{
			{DriverID: 1, Round: 1, ConstructorID: 5},
			{DriverID: 1, Round: 5, ConstructorID: 7},
		},
	})
	assert.Len(t, got, 3)

	assert.Equal(t, intPtr(5), got[0].ConstructorID)
	assert.Equal(t, 1, got[0].LastRound)

	assert.True(t, got[1].Hiatus())
	assert.Equal(t, 2, got[1].FirstRound)
	assert.Equal(t, 4, got[1].LastRound)
	assert.Equal(t, 2, got[1].Sequence)
	assert.False(t, got[1].FirstOfSeason)
	assert.False(t, got[1].LastOfSeason)

	assert.Equal(t, intPtr(7), got[2].ConstructorID)
	assert.Equal(t, 5, got[2].FirstRound)
	assert.True(t, got[2].LastOfSeason)
}

func TestReconstructMultipleDrivers(t *testing.T) {
	got := Reconstruct(&Input{
		Year:   2024,
		Rounds: []int{1, 2},
		Entries: []Entry{
			{DriverID: 2, Round: 1, ConstructorID: 5},
			{DriverID: 1, Round: 1, ConstructorID: 7},
			{DriverID: 2, Round: 2, ConstructorID: 5},
			{DriverID: 1, Round: 2, ConstructorID: 7},
		},
	})
	assert.Len(t, got, 2)
	// output ordered by driver id
	assert.Equal(t, 1, got[0].DriverID)
	assert.Equal(t, 2, got[1].DriverID)
}

func intPtr(v int) *int { return &v }
