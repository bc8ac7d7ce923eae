package service

import (
	"context"
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/processing/pipeline"
	"github.com/gridbox/f1derive/pkg/repository/derived"
)

// ValidateLadder checks the two structural invariants of a race ladder:
// every driver's laps run contiguously from 0 to their last lap, and at
// every lap the positions form a permutation 1..N of that lap's field.
func ValidateLadder(r model.Race, ladder []model.LapPosition) error {
	return validateRows(r.ID, ladder)
}

func validateRows(raceID int, ladder []model.LapPosition) error {
	byDriver := lo.GroupBy(ladder,
		func(p model.LapPosition) int { return p.DriverID })
	for driverID, rows := range byDriver {
		laps := lo.Map(rows,
			func(p model.LapPosition, _ int) int { return p.Lap })
		sort.Ints(laps)
		for i, lapNo := range laps {
			if lapNo != i {
				return &pipeline.DataIntegrityError{
					RaceID:   raceID,
					DriverID: driverID,
					Lap:      lapNo,
					Reason:   "lap sequence has a gap or duplicate",
				}
			}
		}
	}

	byLap := lo.GroupBy(ladder,
		func(p model.LapPosition) int { return p.Lap })
	for lapNo, rows := range byLap {
		positions := lo.Map(rows,
			func(p model.LapPosition, _ int) int { return p.Position })
		sort.Ints(positions)
		for i, pos := range positions {
			if pos != i+1 {
				return &pipeline.DataIntegrityError{
					RaceID: raceID,
					Lap:    lapNo,
					Reason: "positions are not a permutation of the field",
				}
			}
		}
	}
	return nil
}

// CheckDerived validates the persisted lap-position ladder of every
// race and reports all violations instead of stopping at the first.
func (s *RebuildService) CheckDerived(ctx context.Context) error {
	ladders, err := derived.LoadLadder(ctx, s.pool)
	if err != nil {
		return err
	}
	raceIDs := lo.Keys(ladders)
	sort.Ints(raceIDs)

	var errs []error
	for _, raceID := range raceIDs {
		if err := validateRows(raceID, ladders[raceID]); err != nil {
			s.l.Error("ladder invariant violated",
				log.Int("raceId", raceID), log.ErrorField(err))
			errs = append(errs, err)
		}
	}
	s.l.Info("ladder check complete",
		log.Int("races", len(raceIDs)),
		log.Int("violations", len(errs)))
	return errors.Join(errs...)
}
