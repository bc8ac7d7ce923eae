package pitstop

import (
	"context"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

func LoadByRace(ctx context.Context, conn api.Querier, raceID int) (
	[]model.PitStop, error,
) {
	rows, err := conn.Query(ctx,
		`select race_id, driver_id, stop, lap, duration_seconds
		 from pit_stops where race_id=$1 order by driver_id, stop`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.PitStop, 0)
	for rows.Next() {
		var item model.PitStop
		if err := rows.Scan(&item.RaceID, &item.DriverID, &item.Stop,
			&item.Lap, &item.DurationSeconds); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}
