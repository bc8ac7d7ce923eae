package derived

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

func RewriteProjections(
	ctx context.Context, conn api.BulkQuerier, items []model.StandingsProjection,
) error {
	err := recreate(ctx, conn, "d_standings_projections", `
		race_id              integer not null,
		driver_id            integer not null,
		current_points       double precision not null,
		current_position     integer not null,
		max_points_next_race double precision not null,
		max_points_season    double precision not null,
		best_next_race       integer not null,
		worst_next_race      integer not null,
		best_season          integer not null,
		worst_season         integer not null,
		primary key (race_id, driver_id)`)
	if err != nil {
		return err
	}
	_, err = conn.CopyFrom(ctx,
		pgx.Identifier{"d_standings_projections"},
		[]string{
			"race_id", "driver_id", "current_points", "current_position",
			"max_points_next_race", "max_points_season",
			"best_next_race", "worst_next_race", "best_season", "worst_season",
		},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			p := items[i]
			return []any{p.RaceID, p.DriverID, p.CurrentPoints,
				p.CurrentPosition, p.MaxPointsNextRace, p.MaxPointsSeason,
				p.BestNextRace, p.WorstNextRace, p.BestSeason,
				p.WorstSeason}, nil
		}))
	return err
}
