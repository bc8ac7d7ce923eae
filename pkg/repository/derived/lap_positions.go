package derived

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// RewriteLapPositions rebuilds d_lap_positions from scratch. The lap_type
// column carries the rendered label of the closed variant.
func RewriteLapPositions(
	ctx context.Context, conn api.BulkQuerier, positions []model.LapPosition,
) error {
	err := recreate(ctx, conn, "d_lap_positions", `
		race_id   integer not null,
		driver_id integer not null,
		lap       integer not null,
		position  integer not null,
		lap_type  text    not null,
		primary key (race_id, driver_id, lap)`)
	if err != nil {
		return err
	}
	_, err = conn.CopyFrom(ctx,
		pgx.Identifier{"d_lap_positions"},
		[]string{"race_id", "driver_id", "lap", "position", "lap_type"},
		pgx.CopyFromSlice(len(positions), func(i int) ([]any, error) {
			p := positions[i]
			return []any{p.RaceID, p.DriverID, p.Lap, p.Position,
				p.LapType.Label()}, nil
		}))
	return err
}

// LoadLadder reads d_lap_positions back, grouped by race. The lap_type
// label is not parsed back into its variant; callers validating
// positional integrity ignore it.
func LoadLadder(ctx context.Context, conn api.Querier) (
	map[int][]model.LapPosition, error,
) {
	rows, err := conn.Query(ctx,
		`select race_id, driver_id, lap, position from d_lap_positions
		 order by race_id, lap, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make(map[int][]model.LapPosition)
	for rows.Next() {
		var item model.LapPosition
		if err := rows.Scan(&item.RaceID, &item.DriverID, &item.Lap,
			&item.Position); err != nil {
			return nil, err
		}
		ret[item.RaceID] = append(ret[item.RaceID], item)
	}
	return ret, rows.Err()
}
