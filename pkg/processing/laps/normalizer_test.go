package laps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridbox/f1derive/pkg/model"
)

func intPtr(v int) *int { return &v }

// three starters: pole sitter, a penalized qualifier, a pit-lane
// starter without qualifying data who crashes after one lap
func sampleInput() *Input {
	return &Input{
		Race: model.Race{ID: 1, Year: 2024, Round: 1},
		Results: []model.Result{
			{RaceID: 1, DriverID: 10, Grid: 1, Position: intPtr(1),
				PositionOrder: 1, Laps: 3, Status: "Finished"},
			{RaceID: 1, DriverID: 20, Grid: 3, Position: intPtr(2),
				PositionOrder: 2, Laps: 3, Status: "Finished"},
			{RaceID: 1, DriverID: 30, Grid: 0, PositionOrder: 3,
				Laps: 1, Status: "Accident"},
		},
		LapTimes: []model.LapTime{
			{RaceID: 1, DriverID: 10, Lap: 1, Position: 1, Milliseconds: 90000},
			{RaceID: 1, DriverID: 20, Lap: 1, Position: 2, Milliseconds: 91000},
			{RaceID: 1, DriverID: 30, Lap: 1, Position: 3, Milliseconds: 92000},
			{RaceID: 1, DriverID: 10, Lap: 2, Position: 1, Milliseconds: 90000},
			{RaceID: 1, DriverID: 20, Lap: 2, Position: 2, Milliseconds: 91000},
			{RaceID: 1, DriverID: 10, Lap: 3, Position: 1, Milliseconds: 90000},
			{RaceID: 1, DriverID: 20, Lap: 3, Position: 2, Milliseconds: 91000},
		},
		Qualifying: map[int]model.QualifyingResult{
			10: {RaceID: 1, DriverID: 10, Position: 1},
			20: {RaceID: 1, DriverID: 20, Position: 2},
		},
		Retirements: []model.RetirementEvent{
			{RaceID: 1, DriverID: 30, Lap: 2, Cause: model.CauseDriverError},
		},
	}
}

func TestLadderGridRecords(t *testing.T) {
	ladder := NewNormalizer().Ladder(sampleInput())

	gridRows := make([]model.LapPosition, 0)
	for _, p := range ladder {
		if p.Lap == 0 {
			gridRows = append(gridRows, p)
		}
	}
	assert.Len(t, gridRows, 3)

	// dense re-index: raw grid slots 1 and 3, pit-lane starter behind
	assert.Equal(t, 10, gridRows[0].DriverID)
	assert.Equal(t, 1, gridRows[0].Position)
	assert.Equal(t, model.GridStart(model.GridAsQualified), gridRows[0].LapType)

	assert.Equal(t, 20, gridRows[1].DriverID)
	assert.Equal(t, 2, gridRows[1].Position)
	assert.Equal(t, model.GridStart(model.GridDrop), gridRows[1].LapType)

	assert.Equal(t, 30, gridRows[2].DriverID)
	assert.Equal(t, 3, gridRows[2].Position)
	assert.Equal(t, model.GridStart(model.GridNoQualifyingData), gridRows[2].LapType)
}

func TestLadderRetirementRecord(t *testing.T) {
	ladder := NewNormalizer().Ladder(sampleInput())

	var retRow *model.LapPosition
	for i := range ladder {
		if ladder[i].LapType.Kind == model.KindRetirement {
			retRow = &ladder[i]
		}
	}
	if assert.NotNil(t, retRow) {
		assert.Equal(t, 30, retRow.DriverID)
		assert.Equal(t, 2, retRow.Lap)
		// two cars completed lap 2, the retiree lines up behind them
		assert.Equal(t, 3, retRow.Position)
		assert.Equal(t, model.RetirementLap(model.CauseDriverError), retRow.LapType)
	}
}

func TestLadderIsGapFree(t *testing.T) {
	ladder := NewNormalizer().Ladder(sampleInput())

	// every driver covers laps 0..last without holes
	byDriver := make(map[int][]int)
	for _, p := range ladder {
		byDriver[p.DriverID] = append(byDriver[p.DriverID], p.Lap)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, byDriver[10])
	assert.Equal(t, []int{0, 1, 2, 3}, byDriver[20])
	assert.Equal(t, []int{0, 1, 2}, byDriver[30])

	// every lap is a permutation 1..N
	byLap := make(map[int][]int)
	for _, p := range ladder {
		byLap[p.Lap] = append(byLap[p.Lap], p.Position)
	}
	assert.Equal(t, []int{1, 2, 3}, byLap[0])
	assert.Equal(t, []int{1, 2, 3}, byLap[1])
	assert.Equal(t, []int{1, 2, 3}, byLap[2])
	assert.Equal(t, []int{1, 2}, byLap[3])
}
