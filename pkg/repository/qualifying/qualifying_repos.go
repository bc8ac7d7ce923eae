package qualifying

import (
	"context"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// LoadByRace returns the qualifying classification keyed by driver id.
// Races before qualifying data exists simply yield an empty map.
func LoadByRace(ctx context.Context, conn api.Querier, raceID int) (
	map[int]model.QualifyingResult, error,
) {
	rows, err := conn.Query(ctx,
		`select race_id, driver_id, position from qualifying
		 where race_id=$1 and position is not null`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make(map[int]model.QualifyingResult)
	for rows.Next() {
		var item model.QualifyingResult
		if err := rows.Scan(&item.RaceID, &item.DriverID,
			&item.Position); err != nil {
			return nil, err
		}
		ret[item.DriverID] = item
	}
	return ret, rows.Err()
}
