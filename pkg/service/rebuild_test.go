package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/derived"
	base "github.com/gridbox/f1derive/testsupport/basedata"
	"github.com/gridbox/f1derive/testsupport/testdb"
)

func TestRebuildFullPipeline(t *testing.T) {
	pool := testdb.InitTestDb()
	base.InsertSampleSeason(pool)
	ctx := context.Background()

	svc := NewRebuildService(pool)
	require.NoError(t, svc.Rebuild(ctx))

	retirements, err := derived.LoadRetirements(ctx, pool)
	require.NoError(t, err)
	require.Len(t, retirements[base.RaceID1], 1)
	assert.Equal(t, base.DriverD, retirements[base.RaceID1][0].DriverID)
	assert.Equal(t, 3, retirements[base.RaceID1][0].Lap)
	assert.Equal(t, model.CauseDriverError, retirements[base.RaceID1][0].Cause)

	require.Len(t, retirements[base.RaceID3], 1)
	assert.Equal(t, model.CauseMechanicalProblem,
		retirements[base.RaceID3][0].Cause)

	// the persisted ladder satisfies its invariants
	require.NoError(t, svc.CheckDerived(ctx))

	ladders, err := derived.LoadLadder(ctx, pool)
	require.NoError(t, err)
	// grid, recorded laps and the synthetic retirement record
	assert.Len(t, ladders[base.RaceID1], 22)
}

func TestRebuildSingleStagePullsDependencies(t *testing.T) {
	pool := testdb.InitTestDb()
	base.InsertSampleSeason(pool)
	ctx := context.Background()

	svc := NewRebuildService(pool)
	require.NoError(t, svc.Rebuild(ctx, StageOvertakes))

	// retirements and lap positions were rebuilt as dependencies
	retirements, err := derived.LoadRetirements(ctx, pool)
	require.NoError(t, err)
	assert.NotEmpty(t, retirements)
}

func TestRebuildRestrictedToSeason(t *testing.T) {
	pool := testdb.InitTestDb()
	base.InsertSampleSeason(pool)
	ctx := context.Background()

	svc := NewRebuildService(pool, WithSeasons([]int{1999}))
	require.NoError(t, svc.Rebuild(ctx, StageRetirements))

	retirements, err := derived.LoadRetirements(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, retirements)
}
