// Package basedata seeds a minimal season into the base tables: two
// teams, four drivers, three rounds with results, lap times, pit stops,
// qualifying and standings. Enough to exercise every repository and
// derivation stage without a real dump.
package basedata

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	SampleYear = 2024

	RaceID1 = 101
	RaceID2 = 102
	RaceID3 = 103

	ConstructorFalcon = 1
	ConstructorMarlin = 2

	DriverA = 11
	DriverB = 12
	DriverC = 13
	DriverD = 14

	StatusFinished     = 1
	StatusPlusOneLap   = 11
	StatusAccident     = 3
	StatusEngine       = 5
	StatusDisqualified = 2
)

func must(pool *pgxpool.Pool, sql string, args ...any) {
	if _, err := pool.Exec(context.Background(), sql, args...); err != nil {
		log.Fatalf("basedata: %v", err)
	}
}

//nolint:funlen // fixture data
func InsertSampleSeason(pool *pgxpool.Pool) {
	must(pool, `insert into status (status_id, status) values
		(1,'Finished'),(2,'Disqualified'),(3,'Accident'),
		(5,'Engine'),(11,'+1 Lap')`)
	must(pool, `insert into constructors (constructor_id, constructor_ref, name) values
		(1,'falcon','Falcon Racing'),(2,'marlin','Marlin GP')`)
	must(pool, `insert into drivers (driver_id, driver_ref, code, forename, surname) values
		(11,'alpha','ALP','Alan','Alpha'),
		(12,'bravo','BRV','Ben','Bravo'),
		(13,'castor','CAS','Carl','Castor'),
		(14,'delta','DEL','Dan','Delta')`)
	must(pool, `insert into races (race_id, year, round, circuit_id, name, date) values
		(101,2024,1,1,'First GP','2024-03-03'),
		(102,2024,2,2,'Second GP','2024-03-17'),
		(103,2024,3,3,'Third GP','2024-04-07')`)

	// round 1: DriverD crashes out on lap 3
	must(pool, `insert into results
		(result_id, race_id, driver_id, constructor_id, grid, position,
		 position_text, position_order, points, laps, status_id) values
		(1001,101,11,1,1,1,'1',1,25,5,1),
		(1002,101,12,2,2,2,'2',2,18,5,1),
		(1003,101,13,2,4,3,'3',3,15,5,1),
		(1004,101,14,1,3,null,'R',4,0,2,3)`)
	must(pool, `insert into lap_times (race_id, driver_id, lap, position, milliseconds) values
		(101,11,1,1,90000),(101,12,1,2,91000),(101,14,1,3,92000),(101,13,1,4,93000),
		(101,11,2,1,90100),(101,12,2,2,91100),(101,14,2,3,92100),(101,13,2,4,93100),
		(101,11,3,1,90200),(101,12,3,2,91200),(101,13,3,3,92200),
		(101,11,4,1,90300),(101,12,4,2,91300),(101,13,4,3,92300),
		(101,11,5,1,90400),(101,12,5,2,91400),(101,13,5,3,92400)`)
	must(pool, `insert into pit_stops
		(race_id, driver_id, stop, lap, duration_seconds) values
		(101,13,1,2,22.345)`)
	must(pool, `insert into qualifying
		(qualify_id, race_id, driver_id, constructor_id, position) values
		(2001,101,11,1,1),(2002,101,12,2,2),(2003,101,14,1,3),(2004,101,13,2,4)`)
	must(pool, `insert into driver_standings
		(driver_standings_id, race_id, driver_id, points, position, wins) values
		(3001,101,11,25,1,1),(3002,101,12,18,2,0),
		(3003,101,13,15,3,0),(3004,101,14,0,4,0)`)

	// round 2: clean race, no lap data needed by every test
	must(pool, `insert into results
		(result_id, race_id, driver_id, constructor_id, grid, position,
		 position_text, position_order, points, laps, status_id) values
		(1011,102,12,2,1,1,'1',1,25,5,1),
		(1012,102,11,1,2,2,'2',2,18,5,1),
		(1013,102,13,2,3,3,'3',3,15,5,1),
		(1014,102,14,1,4,4,'4',4,12,5,1)`)
	must(pool, `insert into driver_standings
		(driver_standings_id, race_id, driver_id, points, position, wins) values
		(3011,102,11,43,1,1),(3012,102,12,43,2,1),
		(3013,102,13,30,3,0),(3014,102,14,12,4,0)`)

	// round 3: DriverD switches teams
	must(pool, `insert into results
		(result_id, race_id, driver_id, constructor_id, grid, position,
		 position_text, position_order, points, laps, status_id) values
		(1021,103,11,1,1,1,'1',1,25,5,1),
		(1022,103,12,2,2,2,'2',2,18,5,1),
		(1023,103,14,2,3,3,'3',3,15,5,1),
		(1024,103,13,2,4,null,'R',4,0,3,5)`)
	must(pool, `insert into driver_standings
		(driver_standings_id, race_id, driver_id, points, position, wins) values
		(3021,103,11,68,1,2),(3022,103,12,61,2,1),
		(3023,103,13,30,3,0),(3024,103,14,27,4,0)`)
}
