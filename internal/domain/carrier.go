package domain

// Per-carrier summary over a filtered subset of loads.
// Means are Missing when no load of the carrier had a value.
type CarrierAggregate struct {
	CarrierKey  string
	Loads       int
	MeanMileage NullFloat
	MeanPayment NullFloat
}

// Number of loads a carrier delivered.
type CarrierCount struct {
	CarrierKey string
	Loads      int
}

// Mean payment of one carrier under two award types.
type AwardComparison struct {
	CarrierKey     string
	MeanPrimary    float64
	MeanSecondary  float64
	PrimaryLoads   int
	SecondaryLoads int
}
