//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gridbox/f1derive/pkg/db/migrate"
	database "github.com/gridbox/f1derive/pkg/db/postgres"
)

// SetupTestDb creates a containerized postgres, migrates the schema and
// returns a pool connected to it.
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("f1derive-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbURL := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	if err = migrate.MigrateDb(dbURL); err != nil {
		log.Fatal(err)
	}

	return database.InitWithURL(dbURL)
}

// SetupExternalTestDb connects to the database named by TESTDB_URL
// instead of starting a container.
func SetupExternalTestDb() *pgxpool.Pool {
	dbURL := os.Getenv("TESTDB_URL")
	if err := migrate.MigrateDb(dbURL); err != nil {
		log.Fatal(err)
	}
	return database.InitWithURL(dbURL)
}

func ClearResultTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from driver_standings")
	pool.Exec(context.Background(), "delete from qualifying")
	pool.Exec(context.Background(), "delete from pit_stops")
	pool.Exec(context.Background(), "delete from lap_times")
	pool.Exec(context.Background(), "delete from results")
}

func ClearOverrideTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from team_rank_overrides")
	pool.Exec(context.Background(), "delete from liveries")
	pool.Exec(context.Background(), "delete from constructor_overrides")
}

func ClearEntityTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from races")
	pool.Exec(context.Background(), "delete from drivers")
	pool.Exec(context.Background(), "delete from constructors")
	pool.Exec(context.Background(), "delete from status")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearResultTables(pool)
	ClearOverrideTables(pool)
	ClearEntityTables(pool)
}
