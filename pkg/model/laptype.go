package model

import "fmt"

// RetirementCause is the closed set of race-ending withdrawal categories.
type RetirementCause string

const (
	CauseDisqualification  RetirementCause = "Disqualification"
	CauseDriverError       RetirementCause = "Driver Error"
	CauseMechanicalProblem RetirementCause = "Mechanical Problem"
)

// OvertakeCause classifies why a position exchange happened.
// Retirement causes double as overtake causes (a position gained
// because the car ahead withdrew).
type OvertakeCause string

const (
	OvertakeTrack    OvertakeCause = "Track"
	OvertakePitEntry OvertakeCause = "Pit entry"
	OvertakePitExit  OvertakeCause = "Pit exit"
	OvertakeStart    OvertakeCause = "Start"
)

// GridStartDetail tags how a driver's lap-0 grid slot relates to
// its qualifying result.
type GridStartDetail string

const (
	GridNoQualifyingData GridStartDetail = "No qualifying data"
	GridDrop             GridStartDetail = "Grid drop"
	GridGain             GridStartDetail = "Grid gain"
	GridAsQualified      GridStartDetail = "As qualified"
)

type LapKind int

const (
	KindNormalLap LapKind = iota
	KindGridStart
	KindRetirement
)

// LapType is a closed tagged variant over {NormalLap, GridStart, Retirement}.
// Consumers switch on Kind exhaustively instead of null-checking; the
// detail fields are only meaningful for their kind.
type LapType struct {
	Kind       LapKind
	GridDetail GridStartDetail // KindGridStart only
	Cause      RetirementCause // KindRetirement only
}

func NormalLap() LapType { return LapType{Kind: KindNormalLap} }

func GridStart(detail GridStartDetail) LapType {
	return LapType{Kind: KindGridStart, GridDetail: detail}
}

func RetirementLap(cause RetirementCause) LapType {
	return LapType{Kind: KindRetirement, Cause: cause}
}

// Label renders the persisted representation of the lap type.
func (t LapType) Label() string {
	switch t.Kind {
	case KindNormalLap:
		return "Normal lap"
	case KindGridStart:
		return string(t.GridDetail)
	case KindRetirement:
		return fmt.Sprintf("Retirement (%s)", t.Cause)
	}
	return "Unknown"
}
