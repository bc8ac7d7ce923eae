package pipeline

import "fmt"

// MissingDependencyError is fatal: a stage would run before something it
// depends on exists. It aborts the remaining pipeline.
type MissingDependencyError struct {
	Stage      string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("stage %q depends on %q which is not available",
		e.Stage, e.Dependency)
}

// DataIntegrityError is a recoverable validation failure: an invariant of
// the derived data model is violated for one race. The affected race is
// flagged and skipped; the season rebuild continues.
type DataIntegrityError struct {
	RaceID   int
	DriverID int // 0 when the violation is not driver-specific
	Lap      int // -1 when the violation is not lap-specific
	Reason   string
}

func (e *DataIntegrityError) Error() string {
	if e.DriverID != 0 {
		return fmt.Sprintf(
			"data integrity violation (race=%d driver=%d lap=%d): %s",
			e.RaceID, e.DriverID, e.Lap, e.Reason)
	}
	return fmt.Sprintf("data integrity violation (race=%d lap=%d): %s",
		e.RaceID, e.Lap, e.Reason)
}

// CycleError indicates the registered stages do not form a DAG.
type CycleError struct {
	Stages []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("stage dependencies contain a cycle involving %v",
		e.Stages)
}
