package constructor

import (
	"context"

	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/api"
)

// LoadAll returns every constructor keyed by id, with the short display
// name resolved from the override table when present.
func LoadAll(ctx context.Context, conn api.Querier) (
	map[int]model.Constructor, error,
) {
	rows, err := conn.Query(ctx,
		`select c.constructor_id, c.constructor_ref, c.name,
		        coalesce(o.short_name, '')
		 from constructors c
		 left join constructor_overrides o on o.constructor_id = c.constructor_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make(map[int]model.Constructor)
	for rows.Next() {
		var item model.Constructor
		if err := rows.Scan(&item.ID, &item.Ref, &item.Name,
			&item.ShortName); err != nil {
			return nil, err
		}
		ret[item.ID] = item
	}
	return ret, rows.Err()
}
