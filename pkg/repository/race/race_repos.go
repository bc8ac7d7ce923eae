package race

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

const selector = `select race_id, year, round, circuit_id, name, date from races`

// LoadSeasons returns all season years present in the store, ascending.
func LoadSeasons(ctx context.Context, conn api.Querier) ([]int, error) {
	rows, err := conn.Query(ctx, `select distinct year from races order by year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]int, 0)
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		ret = append(ret, year)
	}
	return ret, rows.Err()
}

// LoadBySeason returns the races of a season in round order.
func LoadBySeason(ctx context.Context, conn api.Querier, year int) (
	[]model.Race, error,
) {
	rows, err := conn.Query(ctx, selector+` where year=$1 order by round`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]model.Race, error) {
	ret := make([]model.Race, 0)
	for rows.Next() {
		var item model.Race
		if err := rows.Scan(&item.ID, &item.Year, &item.Round,
			&item.CircuitID, &item.Name, &item.Date); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}
