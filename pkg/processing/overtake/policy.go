package overtake

import (
	"github.com/shopspring/decimal"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
)

// The cause of a pass is reconstructed from coincident pit/retirement
// timing, not observed directly. Each rule is an isolated policy
// function; the order is strict priority (a retiring driver who also
// pitted that lap belongs to the retirement, not the pit stop).

const defaultStartWindow = 2

type causeContext struct {
	grid        map[int]int            // driver -> lap-0 position
	cumulative  map[int]map[int]int    // driver -> lap -> total ms
	pitsByLap   map[int]map[int]model.PitStop
	retirements map[int]model.RetirementEvent
}

func (d *Detector) classify(
	cctx *causeContext, lap, overtaker, overtaken, positionBefore int,
) model.OvertakeCause {
	if cause, ok := retirementCause(cctx, lap, overtaken); ok {
		return cause
	}
	if pitEntryCause(cctx, lap, overtaken) {
		return model.OvertakePitEntry
	}
	if d.pitExitCause(cctx, lap, overtaker, overtaken) {
		return model.OvertakePitExit
	}
	if d.startCause(cctx, lap, overtaken, positionBefore) {
		return model.OvertakeStart
	}
	return model.OvertakeTrack
}

// retirementCause attributes the pass to the overtaken car's withdrawal
// when it retired on this very lap.
func retirementCause(
	cctx *causeContext, lap, overtaken int,
) (model.OvertakeCause, bool) {
	if e, ok := cctx.retirements[overtaken]; ok && e.Lap == lap {
		return model.OvertakeCause(e.Cause), true
	}
	return "", false
}

// pitEntryCause: the overtaken car pitted on this lap.
func pitEntryCause(cctx *causeContext, lap, overtaken int) bool {
	_, ok := cctx.pitsByLap[overtaken][lap]
	return ok
}

// pitExitCause: the overtaken car pitted on the previous lap and the
// gap between both cars at that lap was smaller than the stop duration;
// the pass happened while the pitted car rejoined inside its own
// pit-loss window.
func (d *Detector) pitExitCause(
	cctx *causeContext, lap, overtaker, overtaken int,
) bool {
	stop, ok := cctx.pitsByLap[overtaken][lap-1]
	if !ok {
		return false
	}
	gap, ok := gapSeconds(cctx.cumulative, lap-1, overtaker, overtaken)
	if !ok {
		d.l.Debug("no timing data for pit-exit check",
			log.Int("lap", lap),
			log.Int("overtaker", overtaker),
			log.Int("overtaken", overtaken))
		return false
	}
	return gap.LessThan(stop.DurationSeconds)
}

// startCause: first-lap shuffles within a tight grid window are
// attributed to the start rather than a genuine on-track pass.
func (d *Detector) startCause(
	cctx *causeContext, lap, overtaken, positionBefore int,
) bool {
	if lap != 1 {
		return false
	}
	gridSlot, ok := cctx.grid[overtaken]
	if !ok {
		return false
	}
	diff := gridSlot - positionBefore
	if diff < 0 {
		diff = -diff
	}
	return diff <= d.startWindow
}

func gapSeconds(
	cumulative map[int]map[int]int, lap, a, b int,
) (decimal.Decimal, bool) {
	cumA, okA := cumulative[a][lap]
	cumB, okB := cumulative[b][lap]
	if !okA || !okB {
		return decimal.Zero, false
	}
	diff := cumA - cumB
	if diff < 0 {
		diff = -diff
	}
	return decimal.NewFromInt(int64(diff)).
		Div(decimal.NewFromInt(1000)), true
}
