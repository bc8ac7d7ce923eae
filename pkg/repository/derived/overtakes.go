package derived

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

func RewriteOvertakes(
	ctx context.Context, conn api.BulkQuerier, events []model.OvertakeEvent,
) error {
	err := recreate(ctx, conn, "d_overtakes", `
		race_id              integer not null,
		lap                  integer not null,
		overtaking_driver_id integer not null,
		overtaken_driver_id  integer not null,
		position_before      integer not null,
		position_after       integer not null,
		cause                text    not null,
		primary key (race_id, lap, overtaking_driver_id, overtaken_driver_id)`)
	if err != nil {
		return err
	}
	_, err = conn.CopyFrom(ctx,
		pgx.Identifier{"d_overtakes"},
		[]string{
			"race_id", "lap", "overtaking_driver_id", "overtaken_driver_id",
			"position_before", "position_after", "cause",
		},
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			e := events[i]
			return []any{e.RaceID, e.Lap, e.OvertakingDriverID,
				e.OvertakenDriverID, e.PositionBefore, e.PositionAfter,
				string(e.Cause)}, nil
		}))
	return err
}
