// Package teamrank orders a constructor's drivers within a season by
// end-of-season standing. Manual overrides take precedence, for cases
// where the data-driven signal disagrees with the intended senior/junior
// labeling (e.g. a mid-season replacement with few points).
package teamrank

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/gridbox/f1derive/pkg/model"
)

// Entry is one (driver, constructor) pairing observed in a season.
type Entry struct {
	DriverID      int
	ConstructorID int
}

// Key identifies a team/driver pairing for overrides.
type Key struct {
	ConstructorID int
	DriverID      int
}

type Input struct {
	Year int
	// one entry per appearance; duplicates are fine and de-duplicated here
	Entries []Entry
	// driver -> standings position at the season's final race; drivers
	// missing from the final standings rank behind everyone present
	FinalPositions map[int]int
	Overrides      map[Key]int
}

// Resolve dense-ranks every constructor's drivers, 1 = best end-of-season
// standing, applying manual overrides where present. Ties (both drivers
// absent from the final standings) share a rank; ordering is otherwise
// deterministic by (position, driver id).
func Resolve(in *Input) []model.TeamDriverRank {
	byConstructor := lo.GroupBy(in.Entries,
		func(e Entry) int { return e.ConstructorID })
	constructorIDs := lo.Keys(byConstructor)
	sort.Ints(constructorIDs)

	ret := make([]model.TeamDriverRank, 0)
	for _, constructorID := range constructorIDs {
		driverIDs := lo.Uniq(lo.Map(byConstructor[constructorID],
			func(e Entry, _ int) int { return e.DriverID }))
		sort.Slice(driverIDs, func(i, j int) bool {
			pi, pj := finalPos(in, driverIDs[i]), finalPos(in, driverIDs[j])
			if pi != pj {
				return pi < pj
			}
			return driverIDs[i] < driverIDs[j]
		})

		rank := 0
		prevPos := -1
		for _, driverID := range driverIDs {
			pos := finalPos(in, driverID)
			if pos != prevPos {
				rank++
				prevPos = pos
			}
			resolved := rank
			if override, ok := in.Overrides[Key{
				ConstructorID: constructorID,
				DriverID:      driverID,
			}]; ok {
				resolved = override
			}
			ret = append(ret, model.TeamDriverRank{
				Year:          in.Year,
				ConstructorID: constructorID,
				DriverID:      driverID,
				Rank:          resolved,
			})
		}
	}
	return ret
}

func finalPos(in *Input, driverID int) int {
	if pos, ok := in.FinalPositions[driverID]; ok {
		return pos
	}
	return math.MaxInt
}
