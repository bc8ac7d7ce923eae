package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridbox/f1derive/pkg/model"
)

func threeRaceSeason() *Input {
	return &Input{
		Races: []model.Race{
			{ID: 1, Year: 2024, Round: 1},
			{ID: 2, Year: 2024, Round: 2},
			{ID: 3, Year: 2024, Round: 3},
		},
		ByRace: map[int][]model.DriverStanding{
			1: {
				{RaceID: 1, DriverID: 10, Points: 25, Position: 1},
				{RaceID: 1, DriverID: 20, Points: 20, Position: 2},
				{RaceID: 1, DriverID: 30, Points: 18, Position: 3},
			},
			2: {
				{RaceID: 2, DriverID: 10, Points: 50, Position: 1},
				{RaceID: 2, DriverID: 20, Points: 20, Position: 2},
				{RaceID: 2, DriverID: 30, Points: 18, Position: 3},
			},
			3: {
				{RaceID: 3, DriverID: 10, Points: 75, Position: 1},
				{RaceID: 3, DriverID: 20, Points: 30, Position: 2},
				{RaceID: 3, DriverID: 30, Points: 28, Position: 3},
			},
		},
		MaxRoundPoints: 25,
	}
}

func projectionFor(t *testing.T, items []model.StandingsProjection,
	raceID, driverID int,
) model.StandingsProjection {
	t.Helper()
	for _, item := range items {
		if item.RaceID == raceID && item.DriverID == driverID {
			return item
		}
	}
	t.Fatalf("no projection for race %d driver %d", raceID, driverID)
	return model.StandingsProjection{}
}

func TestProjectEarlySeasonEverythingOpen(t *testing.T) {
	items := Project(threeRaceSeason())
	assert.Len(t, items, 9)

	// after round 1 even P3 can still win the title
	p := projectionFor(t, items, 1, 30)
	assert.Equal(t, 18.0, p.CurrentPoints)
	assert.Equal(t, 43.0, p.MaxPointsNextRace)
	assert.Equal(t, 68.0, p.MaxPointsSeason)
	assert.Equal(t, 1, p.BestNextRace)
	assert.Equal(t, 1, p.BestSeason)
	assert.Equal(t, 3, p.WorstNextRace)
	assert.Equal(t, 3, p.WorstSeason)

	// the leader can be passed by both pursuers
	p = projectionFor(t, items, 1, 10)
	assert.Equal(t, 1, p.BestSeason)
	assert.Equal(t, 3, p.WorstSeason)
}

func TestProjectTitleDecidedEarly(t *testing.T) {
	items := Project(threeRaceSeason())

	// after round 2 the leader holds 50 against a reachable 45: champion
	p := projectionFor(t, items, 2, 10)
	assert.Equal(t, 1, p.BestSeason)
	assert.Equal(t, 1, p.WorstSeason)

	// P2 can no longer reach the leader but can still fall to P3
	p = projectionFor(t, items, 2, 20)
	assert.Equal(t, 45.0, p.MaxPointsSeason)
	assert.Equal(t, 2, p.BestSeason)
	assert.Equal(t, 3, p.WorstSeason)
}

func TestProjectFinalRaceIsFrozen(t *testing.T) {
	items := Project(threeRaceSeason())

	for _, driverID := range []int{10, 20, 30} {
		p := projectionFor(t, items, 3, driverID)
		assert.Equal(t, p.CurrentPoints, p.MaxPointsSeason)
		assert.Equal(t, p.CurrentPosition, p.BestSeason)
		assert.Equal(t, p.CurrentPosition, p.WorstSeason)
	}
}

func TestProjectSkipsRacesWithoutStandings(t *testing.T) {
	in := threeRaceSeason()
	delete(in.ByRace, 2)
	items := Project(in)
	assert.Len(t, items, 6)
}
