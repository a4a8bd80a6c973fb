package domain

import (
	"math"
	"strconv"
)

// Optional float value. A NullFloat is never Valid for NaN or ±Inf,
// so non-finite numbers cannot leak into downstream aggregates.
type NullFloat struct {
	Value float64
	Valid bool
}

// Missing is the zero NullFloat.
var Missing = NullFloat{}

// Float wraps v, downgrading non-finite values to Missing.
func Float(v float64) NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return NullFloat{Value: v, Valid: true}
}

// Return the value and whether it is present.
func (f NullFloat) Get() (float64, bool) { return f.Value, f.Valid }

// GreaterThan reports f > v; a missing value never compares greater.
func (f NullFloat) GreaterThan(v float64) bool { return f.Valid && f.Value > v }

func (f NullFloat) String() string {
	if !f.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}
