package derived

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

func RewriteTeamRanks(
	ctx context.Context, conn api.BulkQuerier, ranks []model.TeamDriverRank,
) error {
	err := recreate(ctx, conn, "d_team_driver_ranks", `
		year           integer not null,
		constructor_id integer not null,
		driver_id      integer not null,
		rank           integer not null,
		primary key (year, constructor_id, driver_id)`)
	if err != nil {
		return err
	}
	_, err = conn.CopyFrom(ctx,
		pgx.Identifier{"d_team_driver_ranks"},
		[]string{"year", "constructor_id", "driver_id", "rank"},
		pgx.CopyFromSlice(len(ranks), func(i int) ([]any, error) {
			r := ranks[i]
			return []any{r.Year, r.ConstructorID, r.DriverID, r.Rank}, nil
		}))
	return err
}
