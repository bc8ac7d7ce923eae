package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/processing/pipeline"
)

func ladderRow(driverID, lap, position int) model.LapPosition {
	return model.LapPosition{
		RaceID: 1, DriverID: driverID, Lap: lap, Position: position,
		LapType: model.NormalLap(),
	}
}

func TestValidateLadderOk(t *testing.T) {
	err := ValidateLadder(model.Race{ID: 1}, []model.LapPosition{
		ladderRow(10, 0, 1), ladderRow(20, 0, 2),
		ladderRow(10, 1, 1), ladderRow(20, 1, 2),
		ladderRow(20, 2, 1), ladderRow(10, 2, 2),
	})
	assert.NoError(t, err)
}

func TestValidateLadderLapGap(t *testing.T) {
	err := ValidateLadder(model.Race{ID: 1}, []model.LapPosition{
		ladderRow(10, 0, 1),
		ladderRow(10, 2, 1), // lap 1 missing
	})
	var integrity *pipeline.DataIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, 10, integrity.DriverID)
}

func TestValidateLadderBrokenPermutation(t *testing.T) {
	err := ValidateLadder(model.Race{ID: 1}, []model.LapPosition{
		ladderRow(10, 0, 1), ladderRow(20, 0, 1),
	})
	var integrity *pipeline.DataIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, 0, integrity.Lap)
}

func TestValidateLadderEmptyIsOk(t *testing.T) {
	assert.NoError(t, ValidateLadder(model.Race{ID: 1}, nil))
}
