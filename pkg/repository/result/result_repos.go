package result

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// the free-text status is resolved here; the numeric status_id is not
// treated as stable by any consumer
const selector = `
select r.race_id, r.driver_id, r.constructor_id, r.grid, r.position,
       r.position_order, r.points, r.laps, s.status
from results r
join status s on s.status_id = r.status_id`

func LoadByRace(ctx context.Context, conn api.Querier, raceID int) (
	[]model.Result, error,
) {
	rows, err := conn.Query(ctx,
		selector+` where r.race_id=$1 order by r.position_order`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// LoadBySeason returns all results of a season grouped by race id.
func LoadBySeason(ctx context.Context, conn api.Querier, year int) (
	map[int][]model.Result, error,
) {
	rows, err := conn.Query(ctx, selector+`
		join races ra on ra.race_id = r.race_id
		where ra.year=$1
		order by ra.round, r.position_order`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := collect(rows)
	if err != nil {
		return nil, err
	}
	ret := make(map[int][]model.Result)
	for i := range items {
		ret[items[i].RaceID] = append(ret[items[i].RaceID], items[i])
	}
	return ret, nil
}

func collect(rows pgx.Rows) ([]model.Result, error) {
	ret := make([]model.Result, 0)
	for rows.Next() {
		var item model.Result
		if err := rows.Scan(&item.RaceID, &item.DriverID, &item.ConstructorID,
			&item.Grid, &item.Position, &item.PositionOrder, &item.Points,
			&item.Laps, &item.Status); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}
