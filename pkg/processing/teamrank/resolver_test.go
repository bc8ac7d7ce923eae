package teamrank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridbox/f1derive/pkg/model"
)

func TestResolveRanksByFinalStanding(t *testing.T) {
	got := Resolve(&Input{
		Year: 2024,
		Entries: []Entry{
			{DriverID: 1, ConstructorID: 5},
			{DriverID: 2, ConstructorID: 5},
			{DriverID: 1, ConstructorID: 5}, // duplicates are fine
			{DriverID: 3, ConstructorID: 7},
			{DriverID: 4, ConstructorID: 7},
		},
		FinalPositions: map[int]int{1: 4, 2: 2, 3: 1, 4: 9},
	})
	assert.Equal(t, []model.TeamDriverRank{
		{Year: 2024, ConstructorID: 5, DriverID: 2, Rank: 1},
		{Year: 2024, ConstructorID: 5, DriverID: 1, Rank: 2},
		{Year: 2024, ConstructorID: 7, DriverID: 3, Rank: 1},
		{Year: 2024, ConstructorID: 7, DriverID: 4, Rank: 2},
	}, got)
}

func TestResolveDriversMissingFromStandingsShareRank(t *testing.T) {
	got := Resolve(&Input{
		Year: 2024,
		Entries: []Entry{
			{DriverID: 1, ConstructorID: 5},
			{DriverID: 2, ConstructorID: 5},
			{DriverID: 3, ConstructorID: 5},
		},
		FinalPositions: map[int]int{1: 3},
	})
	assert.Equal(t, []model.TeamDriverRank{
		{Year: 2024, ConstructorID: 5, DriverID: 1, Rank: 1},
		{Year: 2024, ConstructorID: 5, DriverID: 2, Rank: 2},
		{Year: 2024, ConstructorID: 5, DriverID: 3, Rank: 2},
	}, got)
}

func TestResolveOverrideWins(t *testing.T) {
	got := Resolve(&Input{
		Year: 2024,
		Entries: []Entry{
			{DriverID: 1, ConstructorID: 5},
			{DriverID: 2, ConstructorID: 5},
		},
		FinalPositions: map[int]int{1: 1, 2: 2},
		Overrides: map[Key]int{
			{ConstructorID: 5, DriverID: 1}: 2,
			{ConstructorID: 5, DriverID: 2}: 1,
		},
	})
	assert.Equal(t, []model.TeamDriverRank{
		{Year: 2024, ConstructorID: 5, DriverID: 1, Rank: 2},
		{Year: 2024, ConstructorID: 5, DriverID: 2, Rank: 1},
	}, got)
}
