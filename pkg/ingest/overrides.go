package ingest

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/repository/constructor"
	"github.com/gridbox/f1derive/pkg/repository/driver"
	"github.com/gridbox/f1derive/pkg/repository/override"
)

// SeedOverrides replaces the override tables with the content of the
// yaml document at path. Refs are resolved against the already ingested
// base tables; an unknown ref fails the whole seed.
func (ld *Loader) SeedOverrides(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc model.Overrides
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	constructorIDs, driverIDs, err := ld.refIndex(ctx)
	if err != nil {
		return err
	}
	resolveConstructor := func(ref string) (int, error) {
		id, ok := constructorIDs[ref]
		if !ok {
			return 0, fmt.Errorf("unknown constructor ref %q", ref)
		}
		return id, nil
	}

	shortNames := make(map[int]string)
	for _, item := range doc.ShortNames {
		id, err := resolveConstructor(item.ConstructorRef)
		if err != nil {
			return err
		}
		shortNames[id] = item.ShortName
	}
	if err := override.ReplaceShortNames(ctx, ld.pool, shortNames); err != nil {
		return err
	}

	liveries := make([]override.LiveryRow, 0, len(doc.Liveries))
	for _, item := range doc.Liveries {
		id, err := resolveConstructor(item.ConstructorRef)
		if err != nil {
			return err
		}
		liveries = append(liveries, override.LiveryRow{
			ConstructorID: id, Livery: item,
		})
	}
	if err := override.ReplaceLiveries(ctx, ld.pool, liveries); err != nil {
		return err
	}

	ranks := make([]override.RankRow, 0, len(doc.TeamRanks))
	for _, item := range doc.TeamRanks {
		constructorID, err := resolveConstructor(item.ConstructorRef)
		if err != nil {
			return err
		}
		driverID, ok := driverIDs[item.DriverRef]
		if !ok {
			return fmt.Errorf("unknown driver ref %q", item.DriverRef)
		}
		ranks = append(ranks, override.RankRow{
			Year:          item.Year,
			ConstructorID: constructorID,
			DriverID:      driverID,
			Rank:          item.Rank,
		})
	}
	if err := override.ReplaceTeamRanks(ctx, ld.pool, ranks); err != nil {
		return err
	}

	ld.l.Info("overrides seeded",
		log.Int("shortNames", len(shortNames)),
		log.Int("liveries", len(liveries)),
		log.Int("teamRanks", len(ranks)))
	return nil
}

func (ld *Loader) refIndex(ctx context.Context) (
	map[string]int, map[string]int, error,
) {
	constructors, err := constructor.LoadAll(ctx, ld.pool)
	if err != nil {
		return nil, nil, err
	}
	drivers, err := driver.LoadAll(ctx, ld.pool)
	if err != nil {
		return nil, nil, err
	}
	constructorIDs := make(map[string]int, len(constructors))
	for id, c := range constructors {
		constructorIDs[c.Ref] = id
	}
	driverIDs := make(map[string]int, len(drivers))
	for id, d := range drivers {
		driverIDs[d.Ref] = id
	}
	return constructorIDs, driverIDs, nil
}
