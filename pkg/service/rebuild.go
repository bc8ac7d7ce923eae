// Package service orchestrates the derivation pipeline: it loads base
// data through the repositories, runs the processors and persists the
// derived tables, stage by stage, under the exclusive rebuild lock.
package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/model"
	"github.com/gridbox/f1derive/pkg/processing/laps"
	"github.com/gridbox/f1derive/pkg/processing/overtake"
	"github.com/gridbox/f1derive/pkg/processing/pipeline"
	"github.com/gridbox/f1derive/pkg/processing/retirement"
	"github.com/gridbox/f1derive/pkg/repository/derived"
	"github.com/gridbox/f1derive/pkg/repository/race"
)

// stage names as registered with the scheduler and accepted by --stage
const (
	StageRetirements  = "retirements"
	StageLapPositions = "lap_positions"
	StageOvertakes    = "overtakes"
	StageDrives       = "drives"
	StageTeamRanks    = "team_driver_ranks"
	StageProjections  = "standings_projections"
)

type RebuildService struct {
	pool    *pgxpool.Pool
	l       *log.Logger
	seasons []int

	classifier *retirement.Classifier
	normalizer *laps.Normalizer
	detector   *overtake.Detector

	// populated by earlier stages, consumed by later ones within a run
	racesBySeason     map[int][]model.Race
	resultsByRace     map[int][]model.Result
	retirementsByRace map[int][]model.RetirementEvent
	laddersByRace     map[int][]model.LapPosition
	lapTimesByRace    map[int][]model.LapTime
}

type RebuildOption func(s *RebuildService)

func WithLogger(l *log.Logger) RebuildOption {
	return func(s *RebuildService) { s.l = l }
}

// WithSeasons restricts the rebuild to the given seasons. Default is
// every season present in the races table.
func WithSeasons(seasons []int) RebuildOption {
	return func(s *RebuildService) { s.seasons = seasons }
}

func NewRebuildService(pool *pgxpool.Pool, opts ...RebuildOption) *RebuildService {
	ret := &RebuildService{
		pool: pool,
		l:    log.Default().Named("rebuild"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.classifier = retirement.NewClassifier(
		retirement.WithLogger(ret.l.Named("retirement")))
	ret.normalizer = laps.NewNormalizer(
		laps.WithLogger(ret.l.Named("laps")))
	ret.detector = overtake.NewDetector(
		overtake.WithLogger(ret.l.Named("overtake")))
	return ret
}

// Rebuild runs the requested stages (all of them when only is empty)
// plus their transitive dependencies, holding the rebuild lock for the
// whole batch.
func (s *RebuildService) Rebuild(ctx context.Context, only ...string) error {
	if err := s.prepare(ctx); err != nil {
		return err
	}
	sched := pipeline.NewScheduler(pipeline.WithLogger(s.l))
	for _, stage := range []*pipeline.Stage{
		{Name: StageRetirements, Run: s.rebuildRetirements},
		{Name: StageLapPositions, DependsOn: []string{StageRetirements},
			Run: s.rebuildLapPositions},
		{Name: StageOvertakes,
			DependsOn: []string{StageLapPositions, StageRetirements},
			Run:       s.rebuildOvertakes},
		{Name: StageDrives, Run: s.rebuildDrives},
		{Name: StageTeamRanks, Run: s.rebuildTeamRanks},
		{Name: StageProjections, Run: s.rebuildProjections},
	} {
		if err := sched.Register(stage); err != nil {
			return err
		}
	}

	// the advisory lock is session scoped, pin one connection for it
	lockConn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer lockConn.Release()
	if err := derived.AcquireRebuildLock(ctx, lockConn); err != nil {
		return err
	}
	defer func() {
		if err := derived.ReleaseRebuildLock(context.Background(), lockConn); err != nil {
			s.l.Warn("could not release rebuild lock", log.ErrorField(err))
		}
	}()
	return sched.Run(ctx, only...)
}

// prepare resolves the season list and resets the per-run caches.
func (s *RebuildService) prepare(ctx context.Context) error {
	if len(s.seasons) == 0 {
		seasons, err := race.LoadSeasons(ctx, s.pool)
		if err != nil {
			return err
		}
		s.seasons = seasons
	}
	s.racesBySeason = make(map[int][]model.Race)
	for _, year := range s.seasons {
		races, err := race.LoadBySeason(ctx, s.pool, year)
		if err != nil {
			return err
		}
		s.racesBySeason[year] = races
	}
	s.resultsByRace = make(map[int][]model.Result)
	s.retirementsByRace = make(map[int][]model.RetirementEvent)
	s.laddersByRace = make(map[int][]model.LapPosition)
	s.lapTimesByRace = make(map[int][]model.LapTime)
	return nil
}
