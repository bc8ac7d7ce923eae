package derived

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// RewriteRetirements rebuilds d_retirements from scratch.
func RewriteRetirements(
	ctx context.Context, conn api.BulkQuerier, events []model.RetirementEvent,
) error {
	err := recreate(ctx, conn, "d_retirements", `
		race_id   integer not null,
		driver_id integer not null,
		lap       integer not null,
		cause     text    not null,
		primary key (race_id, driver_id)`)
	if err != nil {
		return err
	}
	_, err = conn.CopyFrom(ctx,
		pgx.Identifier{"d_retirements"},
		[]string{"race_id", "driver_id", "lap", "cause"},
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			e := events[i]
			return []any{e.RaceID, e.DriverID, e.Lap, string(e.Cause)}, nil
		}))
	return err
}

// LoadRetirements reads d_retirements back, grouped by race.
func LoadRetirements(ctx context.Context, conn api.Querier) (
	map[int][]model.RetirementEvent, error,
) {
	rows, err := conn.Query(ctx,
		`select race_id, driver_id, lap, cause from d_retirements
		 order by race_id, driver_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make(map[int][]model.RetirementEvent)
	for rows.Next() {
		var item model.RetirementEvent
		var cause string
		if err := rows.Scan(&item.RaceID, &item.DriverID, &item.Lap,
			&cause); err != nil {
			return nil, err
		}
		item.Cause = model.RetirementCause(cause)
		ret[item.RaceID] = append(ret[item.RaceID], item)
	}
	return ret, rows.Err()
}
