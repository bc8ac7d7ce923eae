package standings

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

const selector = `
select ds.race_id, ds.driver_id, ds.points, ds.position, ds.wins
from driver_standings ds`

func LoadByRace(ctx context.Context, conn api.Querier, raceID int) (
	[]model.DriverStanding, error,
) {
	rows, err := conn.Query(ctx,
		selector+` where ds.race_id=$1 order by ds.position`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// LoadBySeason returns the standings of every race of a season,
// grouped by race id, each group ordered by position.
func LoadBySeason(ctx context.Context, conn api.Querier, year int) (
	map[int][]model.DriverStanding, error,
) {
	rows, err := conn.Query(ctx, selector+`
		join races ra on ra.race_id = ds.race_id
		where ra.year=$1
		order by ra.round, ds.position`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := collect(rows)
	if err != nil {
		return nil, err
	}
	ret := make(map[int][]model.DriverStanding)
	for i := range items {
		ret[items[i].RaceID] = append(ret[items[i].RaceID], items[i])
	}
	return ret, nil
}

func collect(rows pgx.Rows) ([]model.DriverStanding, error) {
	ret := make([]model.DriverStanding, 0)
	for rows.Next() {
		var item model.DriverStanding
		if err := rows.Scan(&item.RaceID, &item.DriverID, &item.Points,
			&item.Position, &item.Wins); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}
