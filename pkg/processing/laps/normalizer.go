// Package laps builds the canonical per-(race, driver, lap) position
// ladder: lap 0 grid records, every recorded race lap, and one synthetic
// record per retirement. The ladder is the sole time-series the overtake
// detector consumes, so it must be complete and gap-free.
package laps

import (
	"sort"

	"github.com/samber/lo"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
)

type Input struct {
	Race        model.Race
	Results     []model.Result
	LapTimes    []model.LapTime
	Qualifying  map[int]model.QualifyingResult
	Retirements []model.RetirementEvent
}

type Normalizer struct {
	l *log.Logger
}

type NormalizerOption func(n *Normalizer)

func WithLogger(l *log.Logger) NormalizerOption {
	return func(n *Normalizer) { n.l = l }
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	ret := &Normalizer{l: log.Default().Named("laps")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Ladder unions the three position sources into one gap-free ladder,
// sorted by (lap, position).
func (n *Normalizer) Ladder(in *Input) []model.LapPosition {
	ret := make([]model.LapPosition, 0,
		len(in.LapTimes)+len(in.Results)+len(in.Retirements))

	ret = append(ret, n.gridRecords(in)...)
	for i := range in.LapTimes {
		lt := in.LapTimes[i]
		ret = append(ret, model.LapPosition{
			RaceID:   lt.RaceID,
			DriverID: lt.DriverID,
			Lap:      lt.Lap,
			Position: lt.Position,
			LapType:  model.NormalLap(),
		})
	}
	ret = append(ret, n.retirementRecords(in)...)

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Lap != ret[j].Lap {
			return ret[i].Lap < ret[j].Lap
		}
		return ret[i].Position < ret[j].Position
	})
	return ret
}

// gridRecords emits one lap-0 record per starter. Grid slots are
// re-indexed densely so that lap 0 is a permutation of 1..N even when
// the raw grid has holes; pit-lane starters (raw grid 0) line up behind
// the last grid slot in classification order.
func (n *Normalizer) gridRecords(in *Input) []model.LapPosition {
	fromGrid := lo.Filter(in.Results, func(r model.Result, _ int) bool {
		return r.Grid > 0
	})
	fromPitLane := lo.Filter(in.Results, func(r model.Result, _ int) bool {
		return r.Grid == 0
	})
	sort.Slice(fromGrid, func(i, j int) bool {
		return fromGrid[i].Grid < fromGrid[j].Grid
	})
	sort.Slice(fromPitLane, func(i, j int) bool {
		if fromPitLane[i].PositionOrder != fromPitLane[j].PositionOrder {
			return fromPitLane[i].PositionOrder < fromPitLane[j].PositionOrder
		}
		return fromPitLane[i].DriverID < fromPitLane[j].DriverID
	})

	ret := make([]model.LapPosition, 0, len(in.Results))
	pos := 0
	for i := range fromGrid {
		pos++
		ret = append(ret, model.LapPosition{
			RaceID:   fromGrid[i].RaceID,
			DriverID: fromGrid[i].DriverID,
			Lap:      0,
			Position: pos,
			LapType:  model.GridStart(n.gridDetail(fromGrid[i], in.Qualifying)),
		})
	}
	for i := range fromPitLane {
		pos++
		detail := model.GridNoQualifyingData
		if _, ok := in.Qualifying[fromPitLane[i].DriverID]; ok {
			detail = model.GridDrop
		}
		ret = append(ret, model.LapPosition{
			RaceID:   fromPitLane[i].RaceID,
			DriverID: fromPitLane[i].DriverID,
			Lap:      0,
			Position: pos,
			LapType:  model.GridStart(detail),
		})
	}
	return ret
}

func (n *Normalizer) gridDetail(
	r model.Result, qualifying map[int]model.QualifyingResult,
) model.GridStartDetail {
	q, ok := qualifying[r.DriverID]
	if !ok {
		return model.GridNoQualifyingData
	}
	switch {
	case r.Grid > q.Position:
		return model.GridDrop
	case r.Grid < q.Position:
		return model.GridGain
	default:
		return model.GridAsQualified
	}
}

// retirementRecords injects one synthetic record per retirement at
// laps_completed+1, carrying the running classification at withdrawal:
// behind every car still circulating, ordered among same-lap retirees
// by classification order.
func (n *Normalizer) retirementRecords(in *Input) []model.LapPosition {
	if len(in.Retirements) == 0 {
		return nil
	}
	runnersAtLap := lo.CountValuesBy(in.LapTimes,
		func(lt model.LapTime) int { return lt.Lap })
	classification := lo.SliceToMap(in.Results,
		func(r model.Result) (int, int) { return r.DriverID, r.PositionOrder })

	byLap := lo.GroupBy(in.Retirements,
		func(e model.RetirementEvent) int { return e.Lap })
	ret := make([]model.LapPosition, 0, len(in.Retirements))
	for _, lap := range sortedKeys(byLap) {
		events := byLap[lap]
		sort.Slice(events, func(i, j int) bool {
			ci, cj := classification[events[i].DriverID],
				classification[events[j].DriverID]
			if ci != cj {
				return ci < cj
			}
			return events[i].DriverID < events[j].DriverID
		})
		for i := range events {
			ret = append(ret, model.LapPosition{
				RaceID:   events[i].RaceID,
				DriverID: events[i].DriverID,
				Lap:      lap,
				Position: runnersAtLap[lap] + i + 1,
				LapType:  model.RetirementLap(events[i].Cause),
			})
		}
	}
	return ret
}

func sortedKeys[V any](m map[int]V) []int {
	keys := lo.Keys(m)
	sort.Ints(keys)
	return keys
}
