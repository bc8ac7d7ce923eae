package derived

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

func RewriteDrives(
	ctx context.Context, conn api.BulkQuerier, drives []model.Drive,
) error {
	err := recreate(ctx, conn, "d_drives", `
		year            integer not null,
		driver_id       integer not null,
		sequence        integer not null,
		constructor_id  integer,
		first_round     integer not null,
		last_round      integer not null,
		first_of_season boolean not null,
		last_of_season  boolean not null,
		primary key (year, driver_id, sequence)`)
	if err != nil {
		return err
	}
	_, err = conn.CopyFrom(ctx,
		pgx.Identifier{"d_drives"},
		[]string{
			"year", "driver_id", "sequence", "constructor_id",
			"first_round", "last_round", "first_of_season", "last_of_season",
		},
		pgx.CopyFromSlice(len(drives), func(i int) ([]any, error) {
			d := drives[i]
			return []any{d.Year, d.DriverID, d.Sequence, d.ConstructorID,
				d.FirstRound, d.LastRound, d.FirstOfSeason, d.LastOfSeason}, nil
		}))
	return err
}
