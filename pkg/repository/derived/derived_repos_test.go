package derived

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/testsupport/testdb"
)

func TestRewriteAndLoadRetirements(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	events := []model.RetirementEvent{
		{RaceID: 1, DriverID: 10, Lap: 12, Cause: model.CauseMechanicalProblem},
		{RaceID: 1, DriverID: 20, Lap: 30, Cause: model.CauseDriverError},
		{RaceID: 2, DriverID: 10, Lap: 1, Cause: model.CauseDisqualification},
	}
	require.NoError(t, RewriteRetirements(ctx, pool, events))

	got, err := LoadRetirements(ctx, pool)
	require.NoError(t, err)
	assert.Len(t, got[1], 2)
	assert.Len(t, got[2], 1)
	assert.Equal(t, events[0], got[1][0])
	assert.Equal(t, events[2], got[2][0])

	// a rewrite replaces the previous content completely
	require.NoError(t, RewriteRetirements(ctx, pool, events[:1]))
	got, err = LoadRetirements(ctx, pool)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRewriteAndLoadLapPositions(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	positions := []model.LapPosition{
		{RaceID: 1, DriverID: 10, Lap: 0, Position: 1,
			LapType: model.GridStart(model.GridAsQualified)},
		{RaceID: 1, DriverID: 10, Lap: 1, Position: 1,
			LapType: model.NormalLap()},
		{RaceID: 1, DriverID: 10, Lap: 2, Position: 1,
			LapType: model.RetirementLap(model.CauseMechanicalProblem)},
	}
	require.NoError(t, RewriteLapPositions(ctx, pool, positions))

	got, err := LoadLadder(ctx, pool)
	require.NoError(t, err)
	require.Len(t, got[1], 3)
	assert.Equal(t, 0, got[1][0].Lap)
	assert.Equal(t, 2, got[1][2].Lap)
}

func TestRebuildLockRoundtrip(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	require.NoError(t, AcquireRebuildLock(ctx, conn))
	require.NoError(t, ReleaseRebuildLock(ctx, conn))
}
