package ingest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type colKind int

const (
	kindInt colKind = iota
	kindFloat
	kindText
	kindDate
	// numeric seconds computed from an upstream milliseconds field
	kindSecondsFromMillis
)

// column maps one upstream CSV field onto a database column.
type column struct {
	db       string
	csv      string
	kind     colKind
	nullable bool
}

// tableSpec describes one CSV file of the upstream dump. Tables are
// loaded in slice order so foreign keys resolve.
type tableSpec struct {
	file    string
	table   string
	columns []column
}

var tables = []tableSpec{
	{
		file: "status.csv", table: "status",
		columns: []column{
			{db: "status_id", csv: "statusId", kind: kindInt},
			{db: "status", csv: "status", kind: kindText},
		},
	},
	{
		file: "drivers.csv", table: "drivers",
		columns: []column{
			{db: "driver_id", csv: "driverId", kind: kindInt},
			{db: "driver_ref", csv: "driverRef", kind: kindText},
			{db: "number", csv: "number", kind: kindText, nullable: true},
			{db: "code", csv: "code", kind: kindText, nullable: true},
			{db: "forename", csv: "forename", kind: kindText},
			{db: "surname", csv: "surname", kind: kindText},
			{db: "dob", csv: "dob", kind: kindDate, nullable: true},
			{db: "nationality", csv: "nationality", kind: kindText, nullable: true},
			{db: "url", csv: "url", kind: kindText, nullable: true},
		},
	},
	{
		file: "constructors.csv", table: "constructors",
		columns: []column{
			{db: "constructor_id", csv: "constructorId", kind: kindInt},
			{db: "constructor_ref", csv: "constructorRef", kind: kindText},
			{db: "name", csv: "name", kind: kindText},
			{db: "nationality", csv: "nationality", kind: kindText, nullable: true},
			{db: "url", csv: "url", kind: kindText, nullable: true},
		},
	},
	{
		file: "races.csv", table: "races",
		columns: []column{
			{db: "race_id", csv: "raceId", kind: kindInt},
			{db: "year", csv: "year", kind: kindInt},
			{db: "round", csv: "round", kind: kindInt},
			{db: "circuit_id", csv: "circuitId", kind: kindInt},
			{db: "name", csv: "name", kind: kindText},
			{db: "date", csv: "date", kind: kindDate},
			{db: "time", csv: "time", kind: kindText, nullable: true},
			{db: "url", csv: "url", kind: kindText, nullable: true},
		},
	},
	{
		file: "results.csv", table: "results",
		columns: []column{
			{db: "result_id", csv: "resultId", kind: kindInt},
			{db: "race_id", csv: "raceId", kind: kindInt},
			{db: "driver_id", csv: "driverId", kind: kindInt},
			{db: "constructor_id", csv: "constructorId", kind: kindInt},
			{db: "number", csv: "number", kind: kindText, nullable: true},
			{db: "grid", csv: "grid", kind: kindInt},
			{db: "position", csv: "position", kind: kindInt, nullable: true},
			{db: "position_text", csv: "positionText", kind: kindText, nullable: true},
			{db: "position_order", csv: "positionOrder", kind: kindInt},
			{db: "points", csv: "points", kind: kindFloat},
			{db: "laps", csv: "laps", kind: kindInt},
			{db: "time", csv: "time", kind: kindText, nullable: true},
			{db: "milliseconds", csv: "milliseconds", kind: kindInt, nullable: true},
			{db: "fastest_lap", csv: "fastestLap", kind: kindInt, nullable: true},
			{db: "rank", csv: "rank", kind: kindInt, nullable: true},
			{db: "fastest_lap_time", csv: "fastestLapTime", kind: kindText, nullable: true},
			{db: "fastest_lap_speed", csv: "fastestLapSpeed", kind: kindText, nullable: true},
			{db: "status_id", csv: "statusId", kind: kindInt},
		},
	},
	{
		file: "lap_times.csv", table: "lap_times",
		columns: []column{
			{db: "race_id", csv: "raceId", kind: kindInt},
			{db: "driver_id", csv: "driverId", kind: kindInt},
			{db: "lap", csv: "lap", kind: kindInt},
			{db: "position", csv: "position", kind: kindInt},
			{db: "time", csv: "time", kind: kindText, nullable: true},
			{db: "milliseconds", csv: "milliseconds", kind: kindInt},
		},
	},
	{
		file: "pit_stops.csv", table: "pit_stops",
		columns: []column{
			{db: "race_id", csv: "raceId", kind: kindInt},
			{db: "driver_id", csv: "driverId", kind: kindInt},
			{db: "stop", csv: "stop", kind: kindInt},
			{db: "lap", csv: "lap", kind: kindInt},
			{db: "time", csv: "time", kind: kindText, nullable: true},
			{db: "duration_seconds", csv: "milliseconds", kind: kindSecondsFromMillis},
		},
	},
	{
		file: "qualifying.csv", table: "qualifying",
		columns: []column{
			{db: "qualify_id", csv: "qualifyId", kind: kindInt},
			{db: "race_id", csv: "raceId", kind: kindInt},
			{db: "driver_id", csv: "driverId", kind: kindInt},
			{db: "constructor_id", csv: "constructorId", kind: kindInt},
			{db: "number", csv: "number", kind: kindText, nullable: true},
			{db: "position", csv: "position", kind: kindInt, nullable: true},
			{db: "q1", csv: "q1", kind: kindText, nullable: true},
			{db: "q2", csv: "q2", kind: kindText, nullable: true},
			{db: "q3", csv: "q3", kind: kindText, nullable: true},
		},
	},
	{
		file: "driver_standings.csv", table: "driver_standings",
		columns: []column{
			{db: "driver_standings_id", csv: "driverStandingsId", kind: kindInt},
			{db: "race_id", csv: "raceId", kind: kindInt},
			{db: "driver_id", csv: "driverId", kind: kindInt},
			{db: "points", csv: "points", kind: kindFloat},
			{db: "position", csv: "position", kind: kindInt},
			{db: "position_text", csv: "positionText", kind: kindText, nullable: true},
			{db: "wins", csv: "wins", kind: kindInt},
		},
	},
}

// nullMarker is how the upstream dump encodes SQL NULL.
const nullMarker = `\N`

func (c column) convert(raw string) (any, error) {
	if raw == nullMarker || raw == "" {
		if c.nullable {
			return nil, nil
		}
		return nil, fmt.Errorf("column %s: unexpected null", c.db)
	}
	switch c.kind {
	case kindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.db, err)
		}
		return v, nil
	case kindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.db, err)
		}
		return v, nil
	case kindText:
		return raw, nil
	case kindDate:
		v, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.db, err)
		}
		return v, nil
	case kindSecondsFromMillis:
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.db, err)
		}
		return decimal.New(ms, -3), nil
	}
	return nil, fmt.Errorf("column %s: unhandled kind", c.db)
}
