package race

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	base "github.com/gridbox/f1derive/testsupport/basedata"
	"github.com/gridbox/f1derive/testsupport/testdb"
)

func TestLoadSeasons(t *testing.T) {
	pool := testdb.InitTestDb()
	base.InsertSampleSeason(pool)

	seasons, err := LoadSeasons(context.Background(), pool)
	require.NoError(t, err)
	assert.Equal(t, []int{base.SampleYear}, seasons)
}

func TestLoadBySeason(t *testing.T) {
	pool := testdb.InitTestDb()
	base.InsertSampleSeason(pool)

	races, err := LoadBySeason(context.Background(), pool, base.SampleYear)
	require.NoError(t, err)
	require.Len(t, races, 3)
	// round order
	assert.Equal(t, 1, races[0].Round)
	assert.Equal(t, base.RaceID1, races[0].ID)
	assert.Equal(t, 3, races[2].Round)
	assert.Equal(t, "Third GP", races[2].Name)
}
