package service

import (
	"context"
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/processing/drives"
	"github.com/gridbox/f1derive/pkg/processing/laps"
	"github.com/gridbox/f1derive/pkg/processing/overtake"
	"github.com/gridbox/f1derive/pkg/processing/pipeline"
	projector "github.com/gridbox/f1derive/pkg/processing/standings"
	"github.com/gridbox/f1derive/pkg/processing/teamrank"
	"github.com/gridbox/f1derive/pkg/repository/derived"
	"github.com/gridbox/f1derive/pkg/repository/lap"
	"github.com/gridbox/f1derive/pkg/repository/override"
	"github.com/gridbox/f1derive/pkg/repository/pitstop"
	"github.com/gridbox/f1derive/pkg/repository/qualifying"
	"github.com/gridbox/f1derive/pkg/repository/result"
	standingsrepo "github.com/gridbox/f1derive/pkg/repository/standings"
)

func (s *RebuildService) rebuildRetirements(ctx context.Context) error {
	events := make([]model.RetirementEvent, 0)
	for _, year := range s.seasons {
		if err := s.loadSeasonResults(ctx, year); err != nil {
			return err
		}
		for _, r := range s.racesBySeason[year] {
			raceEvents := s.classifier.Classify(s.resultsByRace[r.ID])
			s.retirementsByRace[r.ID] = raceEvents
			events = append(events, raceEvents...)
		}
	}
	return derived.RewriteRetirements(ctx, s.pool, events)
}

func (s *RebuildService) rebuildLapPositions(ctx context.Context) error {
	positions := make([]model.LapPosition, 0)
	for _, year := range s.seasons {
		for _, r := range s.racesBySeason[year] {
			lapTimes, err := lap.LoadByRace(ctx, s.pool, r.ID)
			if err != nil {
				return err
			}
			quali, err := qualifying.LoadByRace(ctx, s.pool, r.ID)
			if err != nil {
				return err
			}
			ladder := s.normalizer.Ladder(&laps.Input{
				Race:        r,
				Results:     s.resultsByRace[r.ID],
				LapTimes:    lapTimes,
				Qualifying:  quali,
				Retirements: s.retirementsByRace[r.ID],
			})
			if err := ValidateLadder(r, ladder); err != nil {
				var integrity *pipeline.DataIntegrityError
				if !errors.As(err, &integrity) {
					return err
				}
				// a race with broken base data is skipped, not fatal
				s.l.Warn("skipping race with inconsistent lap data",
					log.Int("raceId", r.ID),
					log.String("race", r.Name),
					log.ErrorField(err))
				continue
			}
			s.laddersByRace[r.ID] = ladder
			s.lapTimesByRace[r.ID] = lapTimes
			positions = append(positions, ladder...)
		}
	}
	return derived.RewriteLapPositions(ctx, s.pool, positions)
}

func (s *RebuildService) rebuildOvertakes(ctx context.Context) error {
	events := make([]model.OvertakeEvent, 0)
	for _, year := range s.seasons {
		for _, r := range s.racesBySeason[year] {
			ladder, ok := s.laddersByRace[r.ID]
			if !ok {
				// skipped by the lap_positions stage
				continue
			}
			stops, err := pitstop.LoadByRace(ctx, s.pool, r.ID)
			if err != nil {
				return err
			}
			events = append(events, s.detector.Detect(&overtake.Input{
				Race:        r,
				Ladder:      ladder,
				LapTimes:    s.lapTimesByRace[r.ID],
				PitStops:    stops,
				Retirements: s.retirementsByRace[r.ID],
			})...)
		}
	}
	return derived.RewriteOvertakes(ctx, s.pool, events)
}

func (s *RebuildService) rebuildDrives(ctx context.Context) error {
	allDrives := make([]model.Drive, 0)
	for _, year := range s.seasons {
		if err := s.loadSeasonResults(ctx, year); err != nil {
			return err
		}
		races := s.racesBySeason[year]
		rounds := lo.Map(races, func(r model.Race, _ int) int { return r.Round })
		entries := make([]drives.Entry, 0)
		for _, r := range races {
			for _, res := range s.resultsByRace[r.ID] {
				entries = append(entries, drives.Entry{
					DriverID:      res.DriverID,
					Round:         r.Round,
					ConstructorID: res.ConstructorID,
				})
			}
		}
		allDrives = append(allDrives, drives.Reconstruct(&drives.Input{
			Year:    year,
			Rounds:  rounds,
			Entries: entries,
		})...)
	}
	return derived.RewriteDrives(ctx, s.pool, allDrives)
}

func (s *RebuildService) rebuildTeamRanks(ctx context.Context) error {
	ranks := make([]model.TeamDriverRank, 0)
	for _, year := range s.seasons {
		if err := s.loadSeasonResults(ctx, year); err != nil {
			return err
		}
		races := s.racesBySeason[year]
		if len(races) == 0 {
			continue
		}
		entries := make([]teamrank.Entry, 0)
		for _, r := range races {
			for _, res := range s.resultsByRace[r.ID] {
				entries = append(entries, teamrank.Entry{
					DriverID:      res.DriverID,
					ConstructorID: res.ConstructorID,
				})
			}
		}
		finalRace := races[len(races)-1]
		finalStandings, err := standingsrepo.LoadByRace(ctx, s.pool, finalRace.ID)
		if err != nil {
			return err
		}
		overrides, err := override.LoadTeamRankOverrides(ctx, s.pool, year)
		if err != nil {
			return err
		}
		ranks = append(ranks, teamrank.Resolve(&teamrank.Input{
			Year:    year,
			Entries: entries,
			FinalPositions: lo.SliceToMap(finalStandings,
				func(st model.DriverStanding) (int, int) {
					return st.DriverID, st.Position
				}),
			Overrides: lo.MapKeys(overrides,
				func(_ int, k override.RankKey) teamrank.Key {
					return teamrank.Key{
						ConstructorID: k.ConstructorID,
						DriverID:      k.DriverID,
					}
				}),
		})...)
	}
	return derived.RewriteTeamRanks(ctx, s.pool, ranks)
}

func (s *RebuildService) rebuildProjections(ctx context.Context) error {
	items := make([]model.StandingsProjection, 0)
	for _, year := range s.seasons {
		if err := s.loadSeasonResults(ctx, year); err != nil {
			return err
		}
		byRace, err := standingsrepo.LoadBySeason(ctx, s.pool, year)
		if err != nil {
			return err
		}
		items = append(items, projector.Project(&projector.Input{
			Races:          s.racesBySeason[year],
			ByRace:         byRace,
			MaxRoundPoints: s.maxRoundPoints(year),
		})...)
	}
	return derived.RewriteProjections(ctx, s.pool, items)
}

// maxRoundPoints derives the scoring ceiling of a season from its own
// results: the highest single-round score any driver actually took.
// This follows the scoring system of the era without hardcoding it.
func (s *RebuildService) maxRoundPoints(year int) float64 {
	best := 0.0
	for _, r := range s.racesBySeason[year] {
		for _, res := range s.resultsByRace[r.ID] {
			if res.Points > best {
				best = res.Points
			}
		}
	}
	return best
}

// loadSeasonResults fills resultsByRace for a season once per run.
func (s *RebuildService) loadSeasonResults(ctx context.Context, year int) error {
	races := s.racesBySeason[year]
	if len(races) == 0 {
		return nil
	}
	if _, ok := s.resultsByRace[races[0].ID]; ok {
		return nil
	}
	byRace, err := result.LoadBySeason(ctx, s.pool, year)
	if err != nil {
		return err
	}
	for raceID, results := range byRace {
		sort.Slice(results, func(i, j int) bool {
			return results[i].PositionOrder < results[j].PositionOrder
		})
		s.resultsByRace[raceID] = results
	}
	return nil
}
