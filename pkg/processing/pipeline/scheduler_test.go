package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context) error { return nil }

func stageNames(stages []*Stage) []string {
	ret := make([]string, 0, len(stages))
	for _, s := range stages {
		ret = append(ret, s.Name)
	}
	return ret
}

func newTestScheduler(t *testing.T, stages ...*Stage) *Scheduler {
	t.Helper()
	s := NewScheduler()
	for _, stage := range stages {
		require.NoError(t, s.Register(stage))
	}
	return s
}

func TestOrderRespectsDependencies(t *testing.T) {
	s := newTestScheduler(t,
		&Stage{Name: "overtakes", DependsOn: []string{"positions", "retirements"}, Run: noop},
		&Stage{Name: "positions", DependsOn: []string{"retirements"}, Run: noop},
		&Stage{Name: "retirements", Run: noop},
		&Stage{Name: "drives", Run: noop},
	)
	order, err := s.Order()
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"drives", "retirements", "positions", "overtakes"},
		stageNames(order))
}

func TestOrderRestrictsToTransitiveDeps(t *testing.T) {
	s := newTestScheduler(t,
		&Stage{Name: "overtakes", DependsOn: []string{"positions"}, Run: noop},
		&Stage{Name: "positions", DependsOn: []string{"retirements"}, Run: noop},
		&Stage{Name: "retirements", Run: noop},
		&Stage{Name: "drives", Run: noop},
	)
	order, err := s.Order("overtakes")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"retirements", "positions", "overtakes"},
		stageNames(order))
}

func TestOrderUnknownDependency(t *testing.T) {
	s := newTestScheduler(t,
		&Stage{Name: "positions", DependsOn: []string{"retirements"}, Run: noop},
	)
	_, err := s.Order()
	var missing *MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "positions", missing.Stage)
	assert.Equal(t, "retirements", missing.Dependency)
}

func TestOrderDetectsCycle(t *testing.T) {
	s := newTestScheduler(t,
		&Stage{Name: "a", DependsOn: []string{"b"}, Run: noop},
		&Stage{Name: "b", DependsOn: []string{"a"}, Run: noop},
	)
	_, err := s.Order()
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"a", "b"}, cycle.Stages)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Register(&Stage{Name: "a", Run: noop}))
	assert.Error(t, s.Register(&Stage{Name: "a", Run: noop}))
}

func TestRunAbortsOnFailure(t *testing.T) {
	executed := make([]string, 0)
	record := func(name string, err error) StageFunc {
		return func(ctx context.Context) error {
			executed = append(executed, name)
			return err
		}
	}
	s := newTestScheduler(t,
		&Stage{Name: "a", Run: record("a", nil)},
		&Stage{Name: "b", DependsOn: []string{"a"},
			Run: record("b", errors.New("boom"))},
		&Stage{Name: "c", DependsOn: []string{"b"}, Run: record("c", nil)},
	)
	err := s.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, executed)
}
