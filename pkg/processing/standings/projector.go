// Package standings projects, for every driver at every race of a
// season, the best and worst final championship positions still
// mathematically reachable, bounded to the next round only and to the
// rest of the season.
package standings

import (
	"sort"

	"github.com/gridbox/f1derive/pkg/model"
)

type Input struct {
	// the season's races in round order
	Races []model.Race
	// standings recorded after each race, keyed by race id
	ByRace map[int][]model.DriverStanding
	// the maximum points a single driver can take from one round,
	// derived from the season's own results data
	MaxRoundPoints float64
}

// Project computes one StandingsProjection per (race, driver). Output
// ordering is (round, current position): rebuilding from unchanged
// inputs is byte-identical.
func Project(in *Input) []model.StandingsProjection {
	ret := make([]model.StandingsProjection, 0)
	for i := range in.Races {
		rows := in.ByRace[in.Races[i].ID]
		if len(rows) == 0 {
			continue
		}
		remaining := len(in.Races) - 1 - i
		ret = append(ret, projectRace(in, rows, remaining)...)
	}
	return ret
}

func projectRace(
	in *Input, rows []model.DriverStanding, remaining int,
) []model.StandingsProjection {
	sorted := make([]model.DriverStanding, len(rows))
	copy(sorted, rows)
	// equal points keep their recorded position ordering (stable)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	remainingNext := remaining
	if remainingNext > 1 {
		remainingNext = 1
	}

	ret := make([]model.StandingsProjection, 0, len(sorted))
	for i := range sorted {
		s := sorted[i]
		maxNext := s.Points + in.MaxRoundPoints*float64(remainingNext)
		maxSeason := s.Points + in.MaxRoundPoints*float64(remaining)
		ret = append(ret, model.StandingsProjection{
			RaceID:            s.RaceID,
			DriverID:          s.DriverID,
			CurrentPoints:     s.Points,
			CurrentPosition:   s.Position,
			MaxPointsNextRace: maxNext,
			MaxPointsSeason:   maxSeason,
			BestNextRace:      bestPosition(sorted, i, maxNext),
			WorstNextRace:     worstPosition(sorted, i, remainingNext, in.MaxRoundPoints),
			BestSeason:        bestPosition(sorted, i, maxSeason),
			WorstSeason:       worstPosition(sorted, i, remaining, in.MaxRoundPoints),
		})
	}
	return ret
}

// bestPosition is the smallest current position among the drivers this
// one could still equal or beat (current points no greater than this
// driver's maximum reachable points), defaulting to its own position
// when no one is catchable.
func bestPosition(
	rows []model.DriverStanding, self int, maxReachable float64,
) int {
	best := rows[self].Position
	for i := range rows {
		if i == self {
			continue
		}
		if rows[i].Points <= maxReachable && rows[i].Position < best {
			best = rows[i].Position
		}
	}
	return best
}

// worstPosition adds, to the current position, every driver currently
// behind that could still reach this driver's point total; drivers
// already ahead are covered by the current position itself. Capped at
// the field size.
func worstPosition(
	rows []model.DriverStanding, self int, remaining int, maxRoundPoints float64,
) int {
	s := rows[self]
	count := 0
	for i := range rows {
		if i == self {
			continue
		}
		maxReachable := rows[i].Points + maxRoundPoints*float64(remaining)
		if rows[i].Position > s.Position && maxReachable >= s.Points {
			count++
		}
	}
	worst := s.Position + count
	if worst > len(rows) {
		worst = len(rows)
	}
	return worst
}
