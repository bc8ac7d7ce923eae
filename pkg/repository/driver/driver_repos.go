package driver

import (
	"context"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// LoadAll returns every driver keyed by id.
func LoadAll(ctx context.Context, conn api.Querier) (map[int]model.Driver, error) {
	rows, err := conn.Query(ctx,
		`select driver_id, driver_ref, coalesce(code,''), forename, surname
		 from drivers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make(map[int]model.Driver)
	for rows.Next() {
		var item model.Driver
		if err := rows.Scan(&item.ID, &item.Ref, &item.Code,
			&item.Forename, &item.Surname); err != nil {
			return nil, err
		}
		ret[item.ID] = item
	}
	return ret, rows.Err()
}
