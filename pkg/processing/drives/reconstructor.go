// Package drives partitions each driver's season into contiguous
// team-tenure intervals. The materialized result set allows
// look-ahead/look-behind over the full round range instead of a
// streaming accumulator.
package drives

import (
	"sort"

	"github.com/samber/lo"

	"github.com/gridbox/f1derive/pkg/model"
)

// Entry is one classified (driver, round, constructor) appearance.
type Entry struct {
	DriverID      int
	Round         int
	ConstructorID int
}

type Input struct {
	Year    int
	Rounds  []int // the season's rounds, ascending
	Entries []Entry
}

// Reconstruct returns the drives of every driver of the season, each
// driver's drives partitioning [first classified round, last classified
// round] with no gaps and no overlaps.
//
// A new drive begins whenever the constructor differs from the
// immediately preceding classified round. Identical-constructor rounds
// merge into one drive regardless of gaps in between; a gap only
// becomes a separate constructor-less hiatus drive when the teams
// before and after the gap differ.
func Reconstruct(in *Input) []model.Drive {
	byDriver := lo.GroupBy(in.Entries,
		func(e Entry) int { return e.DriverID })
	driverIDs := lo.Keys(byDriver)
	sort.Ints(driverIDs)

	ret := make([]model.Drive, 0)
	for _, driverID := range driverIDs {
		ret = append(ret, driverDrives(in, driverID, byDriver[driverID])...)
	}
	return ret
}

type segment struct {
	constructorID *int
	firstRound    int
	lastRound     int
}

func driverDrives(in *Input, driverID int, entries []Entry) []model.Drive {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Round < entries[j].Round
	})

	// pass 1: merge consecutive identical-constructor rounds
	segments := make([]segment, 0)
	for i := range entries {
		e := entries[i]
		last := len(segments) - 1
		if last >= 0 && *segments[last].constructorID == e.ConstructorID {
			segments[last].lastRound = e.Round
			continue
		}
		cid := e.ConstructorID
		segments = append(segments, segment{
			constructorID: &cid,
			firstRound:    e.Round,
			lastRound:     e.Round,
		})
	}

	// pass 2: a gap between two different-team segments becomes a
	// hiatus drive covering the skipped season rounds
	withHiatus := make([]segment, 0, len(segments))
	for i := range segments {
		if i > 0 {
			gap := skippedRounds(in.Rounds,
				segments[i-1].lastRound, segments[i].firstRound)
			if len(gap) > 0 {
				withHiatus = append(withHiatus, segment{
					constructorID: nil,
					firstRound:    gap[0],
					lastRound:     gap[len(gap)-1],
				})
			}
		}
		withHiatus = append(withHiatus, segments[i])
	}

	ret := make([]model.Drive, 0, len(withHiatus))
	for i := range withHiatus {
		s := withHiatus[i]
		ret = append(ret, model.Drive{
			Year:          in.Year,
			DriverID:      driverID,
			Sequence:      i + 1,
			ConstructorID: s.constructorID,
			FirstRound:    s.firstRound,
			LastRound:     s.lastRound,
			FirstOfSeason: i == 0,
			LastOfSeason:  i == len(withHiatus)-1,
		})
	}
	return ret
}

// skippedRounds returns the season rounds strictly between low and high.
func skippedRounds(rounds []int, low, high int) []int {
	ret := make([]int, 0)
	for _, r := range rounds {
		if r > low && r < high {
			ret = append(ret, r)
		}
	}
	return ret
}
