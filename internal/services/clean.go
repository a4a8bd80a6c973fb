package services

import (
	"freight-eda/internal/domain"
	"math"
)

// Outcome counters of the cost-per-mile derivation.
type CostPerMileStats struct {
	// Missing counts rows whose derived value is undefined.
	Missing int
	// NonFinite counts rows where both operands were present but the ratio was ±Inf or NaN.
	NonFinite int
}

// FilterTimeliness removes loads whose pick or drop flag is the "not applicable" sentinel.
// Pick is filtered first, then drop; the result equals excluding either.
func FilterTimeliness(loads []domain.LoadRecord) []domain.LoadRecord {
	byPick := make([]domain.LoadRecord, 0, len(loads))
	for _, l := range loads {
		if l.OnTimePick != domain.NotApplicable {
			byPick = append(byPick, l)
		}
	}

	out := make([]domain.LoadRecord, 0, len(byPick))
	for _, l := range byPick {
		if l.OnTimeDrop != domain.NotApplicable {
			out = append(out, l)
		}
	}
	return out
}

// DeriveCostPerMile returns a copy of loads with CostPerMile set to
// TOTAL_PAYMENT_AMOUNT / MILEAGE.
//
// The value is missing when either operand is missing or the ratio is not
// finite (zero mileage). Rows are never dropped.
func DeriveCostPerMile(loads []domain.LoadRecord) ([]domain.LoadRecord, CostPerMileStats) {
	out := make([]domain.LoadRecord, len(loads))
	var stats CostPerMileStats

	for i, l := range loads {
		l.CostPerMile = domain.Missing

		payment, okPayment := l.TotalPaymentAmount.Get()
		mileage, okMileage := l.Mileage.Get()
		if okPayment && okMileage {
			ratio := payment / mileage
			if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
				stats.NonFinite++
			} else {
				l.CostPerMile = domain.Float(ratio)
			}
		}

		if !l.CostPerMile.Valid {
			stats.Missing++
		}
		out[i] = l
	}

	return out, stats
}

// FilterDegenerate keeps loads whose contract and paid linehaul both exceed floor.
// Missing linehaul values never pass.
func FilterDegenerate(loads []domain.LoadRecord, floor float64) []domain.LoadRecord {
	out := make([]domain.LoadRecord, 0, len(loads))
	for _, l := range loads {
		if l.ContractLinehaul.GreaterThan(floor) && l.PaidLinehaul.GreaterThan(floor) {
			out = append(out, l)
		}
	}
	return out
}

// FilterAwardTypes keeps loads awarded under one of the given types.
func FilterAwardTypes(loads []domain.LoadRecord, types ...string) []domain.LoadRecord {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	out := make([]domain.LoadRecord, 0)
	for _, l := range loads {
		if _, ok := allowed[l.AwardType]; ok {
			out = append(out, l)
		}
	}
	return out
}
