// Package overtake infers position exchanges from the once-per-lap
// position ladder. An overtake is a net change in the relative order of
// two cars between consecutive laps; simultaneous swaps inside one lap
// are invisible by construction.
package overtake

import (
	"sort"

	"github.com/samber/lo"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
)

type Input struct {
	Race        model.Race
	Ladder      []model.LapPosition
	LapTimes    []model.LapTime
	PitStops    []model.PitStop
	Retirements []model.RetirementEvent
}

type Detector struct {
	l *log.Logger
	// grid-slot window of the lap-1 Start attribution; an acknowledged
	// approximation, do not tune without new evidence
	startWindow int
}

type DetectorOption func(d *Detector)

func WithLogger(l *log.Logger) DetectorOption {
	return func(d *Detector) { d.l = l }
}

func WithStartWindow(window int) DetectorOption {
	return func(d *Detector) { d.startWindow = window }
}

func NewDetector(opts ...DetectorOption) *Detector {
	ret := &Detector{
		l:           log.Default().Named("overtake"),
		startWindow: defaultStartWindow,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Detect emits exactly one OvertakeEvent per (lap, pair) whose relative
// order flipped versus the previous lap, tagged with a cause.
func (d *Detector) Detect(in *Input) []model.OvertakeEvent {
	byLap := make(map[int]map[int]int) // lap -> driver -> position
	maxLap := 0
	for i := range in.Ladder {
		p := in.Ladder[i]
		if byLap[p.Lap] == nil {
			byLap[p.Lap] = make(map[int]int)
		}
		byLap[p.Lap][p.DriverID] = p.Position
		if p.Lap > maxLap {
			maxLap = p.Lap
		}
	}

	cctx := &causeContext{
		grid:        byLap[0],
		cumulative:  cumulativeTimes(in.LapTimes),
		pitsByLap:   pitsByDriverLap(in.PitStops),
		retirements: lo.SliceToMap(in.Retirements,
			func(e model.RetirementEvent) (int, model.RetirementEvent) {
				return e.DriverID, e
			}),
	}

	ret := make([]model.OvertakeEvent, 0)
	for lap := 1; lap <= maxLap; lap++ {
		prev, cur := byLap[lap-1], byLap[lap]
		if prev == nil || cur == nil {
			continue
		}
		for overtaker, curPos := range cur {
			prevPos, ok := prev[overtaker]
			if !ok {
				continue
			}
			for overtaken, otherCur := range cur {
				otherPrev, ok := prev[overtaken]
				if !ok || overtaken == overtaker {
					continue
				}
				// behind last lap, ahead this lap
				if prevPos > otherPrev && curPos < otherCur {
					ret = append(ret, model.OvertakeEvent{
						RaceID:             in.Race.ID,
						Lap:                lap,
						OvertakingDriverID: overtaker,
						OvertakenDriverID:  overtaken,
						PositionBefore:     prevPos,
						PositionAfter:      curPos,
						Cause: d.classify(cctx, lap, overtaker,
							overtaken, prevPos),
					})
				}
			}
		}
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Lap != ret[j].Lap {
			return ret[i].Lap < ret[j].Lap
		}
		if ret[i].PositionAfter != ret[j].PositionAfter {
			return ret[i].PositionAfter < ret[j].PositionAfter
		}
		return ret[i].OvertakenDriverID < ret[j].OvertakenDriverID
	})
	return ret
}

// cumulativeTimes sums lap times per driver: driver -> lap -> total ms.
func cumulativeTimes(lapTimes []model.LapTime) map[int]map[int]int {
	ret := make(map[int]map[int]int)
	perDriver := lo.GroupBy(lapTimes,
		func(lt model.LapTime) int { return lt.DriverID })
	for driverID, entries := range perDriver {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Lap < entries[j].Lap
		})
		sums := make(map[int]int, len(entries))
		total := 0
		for i := range entries {
			total += entries[i].Milliseconds
			sums[entries[i].Lap] = total
		}
		ret[driverID] = sums
	}
	return ret
}

func pitsByDriverLap(stops []model.PitStop) map[int]map[int]model.PitStop {
	ret := make(map[int]map[int]model.PitStop)
	for i := range stops {
		s := stops[i]
		if ret[s.DriverID] == nil {
			ret[s.DriverID] = make(map[int]model.PitStop)
		}
		ret[s.DriverID][s.Lap] = s
	}
	return ret
}
