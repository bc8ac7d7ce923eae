// Package retirement derives race-ending withdrawals from result rows.
// The upstream status identifier space is not stable, so classification
// string-matches the free-text status description.
package retirement

import (
	"strings"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
)

// ordered keyword rules; heuristic by design, keep them isolated here
var (
	disqualificationTerms = []string{"disqualif", "excluded"}
	driverErrorTerms      = []string{
		"accident", "collision", "spun off", "damage",
	}
	// statuses recognized as mechanical; anything not matching any list
	// still lands in the mechanical bucket but is logged for review
	mechanicalTerms = []string{
		"engine", "gearbox", "transmission", "clutch", "hydraulics",
		"electrical", "electronics", "suspension", "brakes", "overheating",
		"mechanical", "tyre", "puncture", "wheel", "fuel", "oil leak",
		"water leak", "exhaust", "radiator", "driveshaft", "throttle",
		"steering", "vibrations", "turbo", "cooling system", "power unit",
		"battery", "ers", "retired", "withdrew",
	}
)

type Classifier struct {
	l *log.Logger
}

type ClassifierOption func(c *Classifier)

func WithLogger(l *log.Logger) ClassifierOption {
	return func(c *Classifier) { c.l = l }
}

func NewClassifier(opts ...ClassifierOption) *Classifier {
	ret := &Classifier{l: log.Default().Named("retirement")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// IsRetirement reports whether a status text marks a failure to finish.
// Finished cars and cars classified a number of laps behind ("+N Laps")
// are not retirements.
func IsRetirement(status string) bool {
	if status == "" {
		return false
	}
	if strings.HasPrefix(status, "+") {
		return false
	}
	return !strings.EqualFold(status, "Finished")
}

// Classify derives one RetirementEvent per failure-to-finish. The event
// lap is laps_completed+1, the lap during which the car dropped out of
// classification.
func (c *Classifier) Classify(results []model.Result) []model.RetirementEvent {
	ret := make([]model.RetirementEvent, 0)
	for i := range results {
		r := results[i]
		if !IsRetirement(r.Status) {
			continue
		}
		ret = append(ret, model.RetirementEvent{
			RaceID:   r.RaceID,
			DriverID: r.DriverID,
			Lap:      r.Laps + 1,
			Cause:    c.causeFor(r),
		})
	}
	return ret
}

func (c *Classifier) causeFor(r model.Result) model.RetirementCause {
	status := strings.ToLower(r.Status)
	if matchesAny(status, disqualificationTerms) {
		return model.CauseDisqualification
	}
	if matchesAny(status, driverErrorTerms) {
		return model.CauseDriverError
	}
	if !matchesAny(status, mechanicalTerms) {
		// ambiguous status; the mechanical bucket is the conservative
		// default, surface it for manual review of the keyword rules
		c.l.Warn("status matched no classification rule",
			log.String("status", r.Status),
			log.Int("race", r.RaceID),
			log.Int("driver", r.DriverID))
	}
	return model.CauseMechanicalProblem
}

func matchesAny(status string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(status, term) {
			return true
		}
	}
	return false
}
