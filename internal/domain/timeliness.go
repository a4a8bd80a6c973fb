package domain

import "math"

// Timeliness is the tri-state on-time flag of a pick-up or drop-off.
// Raw sources encode it as 0, 1, or the sentinel 2.0 ("not applicable");
// the conversion happens once, at decode time.
type Timeliness int8

const (
	TimelinessUnknown Timeliness = iota
	Late
	OnTime
	NotApplicable
)

// Raw value used by the source tables for "not applicable/unknown".
const TimelinessSentinel = 2.0

// ParseTimeliness converts a raw numeric cell. Missing or unexpected values map to TimelinessUnknown.
func ParseTimeliness(raw float64) Timeliness {
	switch {
	case math.IsNaN(raw):
		return TimelinessUnknown
	case raw == 0:
		return Late
	case raw == 1:
		return OnTime
	case raw == TimelinessSentinel:
		return NotApplicable
	default:
		return TimelinessUnknown
	}
}

// Analyzable reports whether the flag takes part in timeliness analysis.
func (t Timeliness) Analyzable() bool { return t == Late || t == OnTime }

func (t Timeliness) String() string {
	switch t {
	case Late:
		return "0"
	case OnTime:
		return "1"
	case NotApplicable:
		return "2"
	default:
		return ""
	}
}
