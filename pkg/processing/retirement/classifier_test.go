package retirement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridbox/f1derive/pkg/model"
)

func TestIsRetirement(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Finished", false},
		{"finished", false},
		{"+1 Lap", false},
		{"+12 Laps", false},
		{"", false},
		{"Accident", true},
		{"Engine", true},
		{"Disqualified", true},
		{"Withdrew", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetirement(tt.status), "status %q", tt.status)
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()
	results := []model.Result{
		{RaceID: 1, DriverID: 1, Laps: 56, Status: "Finished"},
		{RaceID: 1, DriverID: 2, Laps: 55, Status: "+1 Lap"},
		{RaceID: 1, DriverID: 3, Laps: 30, Status: "Accident"},
		{RaceID: 1, DriverID: 4, Laps: 12, Status: "Engine"},
		{RaceID: 1, DriverID: 5, Laps: 40, Status: "Disqualified"},
	}
	events := c.Classify(results)
	assert.Len(t, events, 3)

	assert.Equal(t, 3, events[0].DriverID)
	assert.Equal(t, 31, events[0].Lap)
	assert.Equal(t, model.CauseDriverError, events[0].Cause)

	assert.Equal(t, 4, events[1].DriverID)
	assert.Equal(t, 13, events[1].Lap)
	assert.Equal(t, model.CauseMechanicalProblem, events[1].Cause)

	assert.Equal(t, 5, events[2].DriverID)
	assert.Equal(t, 41, events[2].Lap)
	assert.Equal(t, model.CauseDisqualification, events[2].Cause)
}

func TestClassifyCauses(t *testing.T) {
	c := NewClassifier()
	tests := []struct {
		status string
		want   model.RetirementCause
	}{
		{"Collision", model.CauseDriverError},
		{"Spun off", model.CauseDriverError},
		{"Collision damage", model.CauseDriverError},
		{"Gearbox", model.CauseMechanicalProblem},
		{"Power Unit", model.CauseMechanicalProblem},
		{"Puncture", model.CauseMechanicalProblem},
		{"Excluded", model.CauseDisqualification},
		// unknown statuses land in the mechanical bucket
		{"Illness", model.CauseMechanicalProblem},
	}
	for _, tt := range tests {
		events := c.Classify([]model.Result{
			{RaceID: 1, DriverID: 1, Laps: 10, Status: tt.status},
		})
		assert.Len(t, events, 1)
		assert.Equal(t, tt.want, events[0].Cause, "status %q", tt.status)
	}
}
