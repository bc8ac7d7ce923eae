package result

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	base "github.com/gridbox/f1derive/testsupport/basedata"
	"github.com/gridbox/f1derive/testsupport/testdb"
)

func TestLoadByRace(t *testing.T) {
	pool := testdb.InitTestDb()
	base.InsertSampleSeason(pool)

	results, err := LoadByRace(context.Background(), pool, base.RaceID1)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// status text is resolved through the join
	byDriver := make(map[int]string)
	for _, r := range results {
		byDriver[r.DriverID] = r.Status
	}
	assert.Equal(t, "Finished", byDriver[base.DriverA])
	assert.Equal(t, "Accident", byDriver[base.DriverD])

	for _, r := range results {
		if r.DriverID == base.DriverD {
			assert.Nil(t, r.Position)
			assert.Equal(t, 2, r.Laps)
		}
	}
}

func TestLoadBySeason(t *testing.T) {
	pool := testdb.InitTestDb()
	base.InsertSampleSeason(pool)

	byRace, err := LoadBySeason(context.Background(), pool, base.SampleYear)
	require.NoError(t, err)
	assert.Len(t, byRace, 3)
	assert.Len(t, byRace[base.RaceID2], 4)

	byRace, err = LoadBySeason(context.Background(), pool, 1999)
	require.NoError(t, err)
	assert.Empty(t, byRace)
}
