package model

// Derived entities. Each derived table is dropped and fully rebuilt on
// every pipeline run; these records are immutable once written.

// LapPosition is one canonical per-(race, driver, lap) position record.
// Lap 0 is the starting grid; a driver's retirement lap is a synthetic
// record at laps_completed+1.
type LapPosition struct {
	RaceID   int
	DriverID int
	Lap      int
	Position int
	LapType  LapType
}

// RetirementEvent marks the lap and cause of a race-ending withdrawal.
type RetirementEvent struct {
	RaceID   int
	DriverID int
	Lap      int // laps completed + 1
	Cause    RetirementCause
}

// OvertakeEvent is one net position exchange between two drivers
// from one lap to the next.
type OvertakeEvent struct {
	RaceID             int
	Lap                int
	OvertakingDriverID int
	OvertakenDriverID  int
	PositionBefore     int // overtaker's position on the previous lap
	PositionAfter      int // overtaker's position on this lap
	Cause              OvertakeCause
}

// Drive is a contiguous span of rounds in one season during which a
// driver represented the same constructor. ConstructorID is nil for a
// hiatus (absent from classification, not continuing with the prior team).
type Drive struct {
	Year          int
	DriverID      int
	Sequence      int
	ConstructorID *int
	FirstRound    int
	LastRound     int
	FirstOfSeason bool
	LastOfSeason  bool
}

func (d Drive) Hiatus() bool { return d.ConstructorID == nil }

// TeamDriverRank orders a constructor's drivers within a season,
// 1 = lead driver.
type TeamDriverRank struct {
	Year          int
	ConstructorID int
	DriverID      int
	Rank          int
}

// StandingsProjection bounds the final championship positions a driver
// can still reach, as of a given race, for the next round only and for
// the rest of the season.
type StandingsProjection struct {
	RaceID            int
	DriverID          int
	CurrentPoints     float64
	CurrentPosition   int
	MaxPointsNextRace float64
	MaxPointsSeason   float64
	BestNextRace      int
	WorstNextRace     int
	BestSeason        int
	WorstSeason       int
}
