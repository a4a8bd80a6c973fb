package services

import "freight-eda/internal/domain"

// load builds a LoadRecord with the fields most tests vary.
func load(id, carrier string, payment, mileage float64) domain.LoadRecord {
	return domain.LoadRecord{
		LoadID:             id,
		CarrierKey:         carrier,
		TotalPaymentAmount: domain.Float(payment),
		Mileage:            domain.Float(mileage),
	}
}

func timed(pick, drop float64) domain.LoadRecord {
	return domain.LoadRecord{
		OnTimePick: domain.ParseTimeliness(pick),
		OnTimeDrop: domain.ParseTimeliness(drop),
	}
}

// loadsForCarriers returns n loads per carrier key, all with linehauls above the floor.
func loadsForCarriers(counts map[string]int) []domain.LoadRecord {
	out := make([]domain.LoadRecord, 0)
	for carrier, n := range counts {
		for i := 0; i < n; i++ {
			out = append(out, domain.LoadRecord{
				LoadID:           carrier,
				CarrierKey:       carrier,
				ContractLinehaul: domain.Float(500),
				PaidLinehaul:     domain.Float(550),
			})
		}
	}
	return out
}
