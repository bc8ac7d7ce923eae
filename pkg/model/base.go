package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Base entities as loaded from the relational store. These are read-only
// inputs for the derivation layer; ids are the upstream integer identifiers.

type Race struct {
	ID        int
	Year      int
	Round     int // 1-based, orders the season
	Name      string
	CircuitID int
	Date      time.Time
}

type Driver struct {
	ID       int
	Ref      string
	Code     string // may be empty in historic data
	Forename string
	Surname  string
}

// DisplayCode returns the 3-letter code, synthesized from the surname
// when the upstream data carries none.
func (d Driver) DisplayCode() string {
	if d.Code != "" {
		return d.Code
	}
	runes := []rune(strings.ToUpper(d.Surname))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// SortName is used wherever drivers are listed for humans.
func (d Driver) SortName() string {
	return d.Surname + ", " + d.Forename
}

type Constructor struct {
	ID        int
	Ref       string
	Name      string
	ShortName string // operator override, falls back to Name
}

func (c Constructor) DisplayName() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.Name
}

type Result struct {
	RaceID        int
	DriverID      int
	ConstructorID int
	Grid          int  // 0 means pit-lane start
	Position      *int // nil when not classified
	PositionOrder int  // running classification incl. non-finishers
	Points        float64
	Laps          int // laps completed
	Status        string
}

// Classified reports whether the driver finished with an official position.
func (r Result) Classified() bool { return r.Position != nil }

type QualifyingResult struct {
	RaceID   int
	DriverID int
	Position int
}

// LapTime is one recorded race lap. Position is the running order
// at the end of that lap.
type LapTime struct {
	RaceID       int
	DriverID     int
	Lap          int
	Position     int
	Milliseconds int
}

type PitStop struct {
	RaceID          int
	DriverID        int
	Stop            int
	Lap             int
	DurationSeconds decimal.Decimal
}

// DriverStanding is the championship standing recorded after a race.
type DriverStanding struct {
	RaceID   int
	DriverID int
	Points   float64
	Position int
	Wins     int
}
