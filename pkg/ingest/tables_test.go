package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	v, err := column{db: "x", kind: kindInt}.convert("42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = column{db: "x", kind: kindFloat}.convert("25.5")
	require.NoError(t, err)
	assert.Equal(t, 25.5, v)

	v, err = column{db: "x", kind: kindDate}.convert("2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), v)

	v, err = column{db: "x", kind: kindSecondsFromMillis}.convert("22345")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("22.345").Equal(v.(decimal.Decimal)))
}

func TestConvertNulls(t *testing.T) {
	v, err := column{db: "x", kind: kindInt, nullable: true}.convert(`\N`)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = column{db: "x", kind: kindText, nullable: true}.convert("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = column{db: "x", kind: kindInt}.convert(`\N`)
	assert.Error(t, err)
}

func TestConvertRejectsGarbage(t *testing.T) {
	_, err := column{db: "x", kind: kindInt}.convert("abc")
	assert.Error(t, err)
	_, err = column{db: "x", kind: kindDate}.convert("03.03.2024")
	assert.Error(t, err)
}

func TestTableSpecsCoverKnownFiles(t *testing.T) {
	seen := make(map[string]bool)
	for _, spec := range tables {
		assert.False(t, seen[spec.table], "duplicate table %s", spec.table)
		seen[spec.table] = true
		assert.NotEmpty(t, spec.columns)
	}
	// referenced tables must load before their dependents
	assert.Less(t, indexOf(t, "status"), indexOf(t, "results"))
	assert.Less(t, indexOf(t, "races"), indexOf(t, "lap_times"))
	assert.Less(t, indexOf(t, "drivers"), indexOf(t, "results"))
}

func indexOf(t *testing.T, table string) int {
	t.Helper()
	for i, spec := range tables {
		if spec.table == table {
			return i
		}
	}
	t.Fatalf("no spec for table %s", table)
	return -1
}
