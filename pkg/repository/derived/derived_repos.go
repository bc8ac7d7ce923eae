// Package derived persists the output tables of the derivation pipeline.
// Every table is dropped and fully rebuilt on each run; there is no
// partial mutation of derived data.
package derived

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/gridbox/f1derive/pkg/repository/api"
)

// all rebuilds share one coarse advisory lock: the derived tables have
// read-after-write dependencies on each other, so locking per table
// would allow readers to observe a half-rebuilt set
const lockName = "f1derive.rebuild"

func lockKey() int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(lockName))
	return int64(h.Sum64())
}

// AcquireRebuildLock blocks until the exclusive rebuild lock is held.
func AcquireRebuildLock(ctx context.Context, conn api.Querier) error {
	_, err := conn.Exec(ctx, `select pg_advisory_lock($1)`, lockKey())
	return err
}

func ReleaseRebuildLock(ctx context.Context, conn api.Querier) error {
	_, err := conn.Exec(ctx, `select pg_advisory_unlock($1)`, lockKey())
	return err
}

// recreate drops and recreates a derived table in one round trip.
func recreate(
	ctx context.Context, conn api.Querier, table, definition string,
) error {
	if _, err := conn.Exec(ctx,
		fmt.Sprintf(`drop table if exists %s`, table)); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := conn.Exec(ctx,
		fmt.Sprintf(`create table %s (%s)`, table, definition)); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}
