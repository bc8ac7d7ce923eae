package override

import (
	"context"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// RankKey identifies a team/driver pairing within a season.
type RankKey struct {
	ConstructorID int
	DriverID      int
}

// LoadTeamRankOverrides returns the manual rank overrides for a season.
func LoadTeamRankOverrides(ctx context.Context, conn api.Querier, year int) (
	map[RankKey]int, error,
) {
	rows, err := conn.Query(ctx,
		`select constructor_id, driver_id, rank from team_rank_overrides
		 where year=$1`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make(map[RankKey]int)
	for rows.Next() {
		var key RankKey
		var rank int
		if err := rows.Scan(&key.ConstructorID, &key.DriverID, &rank); err != nil {
			return nil, err
		}
		ret[key] = rank
	}
	return ret, rows.Err()
}

// ReplaceShortNames rebuilds the constructor short-name table.
func ReplaceShortNames(
	ctx context.Context, conn api.Querier, items map[int]string,
) error {
	if _, err := conn.Exec(ctx, `delete from constructor_overrides`); err != nil {
		return err
	}
	for id, name := range items {
		if _, err := conn.Exec(ctx,
			`insert into constructor_overrides (constructor_id, short_name)
			 values ($1,$2)`, id, name); err != nil {
			return err
		}
	}
	return nil
}

// LiveryRow is a livery entry with the constructor ref already resolved.
type LiveryRow struct {
	ConstructorID int
	Livery        model.Livery
}

func ReplaceLiveries(
	ctx context.Context, conn api.Querier, items []LiveryRow,
) error {
	if _, err := conn.Exec(ctx, `delete from liveries`); err != nil {
		return err
	}
	for i := range items {
		if _, err := conn.Exec(ctx,
			`insert into liveries (constructor_id, first_year, last_year, color)
			 values ($1,$2,$3,$4)`,
			items[i].ConstructorID, items[i].Livery.FirstYear,
			items[i].Livery.LastYear, items[i].Livery.Color); err != nil {
			return err
		}
	}
	return nil
}

// RankRow is a team-rank override with refs already resolved to ids.
type RankRow struct {
	Year          int
	ConstructorID int
	DriverID      int
	Rank          int
}

func ReplaceTeamRanks(
	ctx context.Context, conn api.Querier, items []RankRow,
) error {
	if _, err := conn.Exec(ctx, `delete from team_rank_overrides`); err != nil {
		return err
	}
	for i := range items {
		if _, err := conn.Exec(ctx,
			`insert into team_rank_overrides (year, constructor_id, driver_id, rank)
			 values ($1,$2,$3,$4)`,
			items[i].Year, items[i].ConstructorID,
			items[i].DriverID, items[i].Rank); err != nil {
			return err
		}
	}
	return nil
}
