package lap

import (
	"context"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// LoadByRace returns the recorded race laps ordered by (lap, position).
func LoadByRace(ctx context.Context, conn api.Querier, raceID int) (
	[]model.LapTime, error,
) {
	rows, err := conn.Query(ctx,
		`select race_id, driver_id, lap, position, milliseconds
		 from lap_times where race_id=$1 order by lap, position`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.LapTime, 0)
	for rows.Next() {
		var item model.LapTime
		if err := rows.Scan(&item.RaceID, &item.DriverID, &item.Lap,
			&item.Position, &item.Milliseconds); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}
