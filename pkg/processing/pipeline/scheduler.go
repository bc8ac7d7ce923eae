// Package pipeline executes the derivation stages as an explicit DAG:
// named stages with declared dependencies, topologically sorted and
// validated for completeness before anything runs. The whole batch
// aborts on the first stage failure, leaving later tables untouched
// (and therefore stale relative to already-rebuilt upstream ones, which
// the next full run repairs).
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/gridbox/f1derive/log"
)

type StageFunc func(ctx context.Context) error

type Stage struct {
	Name      string
	DependsOn []string
	Run       StageFunc
}

type Scheduler struct {
	stages map[string]*Stage
	l      *log.Logger
}

type SchedulerOption func(s *Scheduler)

func WithLogger(l *log.Logger) SchedulerOption {
	return func(s *Scheduler) { s.l = l }
}

func NewScheduler(opts ...SchedulerOption) *Scheduler {
	ret := &Scheduler{
		stages: make(map[string]*Stage),
		l:      log.Default().Named("pipeline"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (s *Scheduler) Register(stage *Stage) error {
	if _, ok := s.stages[stage.Name]; ok {
		return fmt.Errorf("stage %q registered twice", stage.Name)
	}
	s.stages[stage.Name] = stage
	return nil
}

// Order validates the DAG and returns the stages in execution order.
// When only is non-empty, the result is restricted to those stages plus
// their transitive dependencies. Ties are broken by name so the order
// is deterministic.
func (s *Scheduler) Order(only ...string) ([]*Stage, error) {
	for _, stage := range s.stages {
		for _, dep := range stage.DependsOn {
			if _, ok := s.stages[dep]; !ok {
				return nil, &MissingDependencyError{
					Stage:      stage.Name,
					Dependency: dep,
				}
			}
		}
	}

	for _, name := range only {
		if _, ok := s.stages[name]; !ok {
			return nil, fmt.Errorf("unknown stage %q", name)
		}
	}
	wanted := s.transitiveClosure(only)

	inDegree := make(map[string]int)
	for name := range wanted {
		stage := s.stages[name]
		for _, dep := range stage.DependsOn {
			if _, ok := wanted[dep]; ok {
				inDegree[name]++
			}
		}
	}

	ready := lo.Filter(lo.Keys(wanted), func(name string, _ int) bool {
		return inDegree[name] == 0
	})
	sort.Strings(ready)

	ret := make([]*Stage, 0, len(wanted))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		ret = append(ret, s.stages[name])
		released := make([]string, 0)
		for other := range wanted {
			if lo.Contains(s.stages[other].DependsOn, name) {
				inDegree[other]--
				if inDegree[other] == 0 {
					released = append(released, other)
				}
			}
		}
		sort.Strings(released)
		ready = append(ready, released...)
		sort.Strings(ready)
	}

	if len(ret) != len(wanted) {
		remaining := lo.Filter(lo.Keys(wanted), func(name string, _ int) bool {
			return !lo.ContainsBy(ret, func(st *Stage) bool {
				return st.Name == name
			})
		})
		sort.Strings(remaining)
		return nil, &CycleError{Stages: remaining}
	}
	return ret, nil
}

// Run executes the (possibly restricted) stage sequence, aborting the
// remaining stages on the first failure.
func (s *Scheduler) Run(ctx context.Context, only ...string) error {
	order, err := s.Order(only...)
	if err != nil {
		return err
	}
	for _, stage := range order {
		start := time.Now()
		s.l.Info("rebuilding stage", log.String("stage", stage.Name))
		if err := stage.Run(ctx); err != nil {
			s.l.Error("stage failed, aborting remaining pipeline",
				log.String("stage", stage.Name),
				log.ErrorField(err))
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		s.l.Info("stage complete",
			log.String("stage", stage.Name),
			log.Duration("duration", time.Since(start)))
	}
	return nil
}

func (s *Scheduler) transitiveClosure(only []string) map[string]struct{} {
	ret := make(map[string]struct{})
	if len(only) == 0 {
		for name := range s.stages {
			ret[name] = struct{}{}
		}
		return ret
	}
	var visit func(name string)
	visit = func(name string) {
		if _, done := ret[name]; done {
			return
		}
		if stage, ok := s.stages[name]; ok {
			ret[name] = struct{}{}
			for _, dep := range stage.DependsOn {
				visit(dep)
			}
		}
	}
	for _, name := range only {
		visit(name)
	}
	return ret
}
