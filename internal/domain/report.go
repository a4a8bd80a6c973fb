package domain

import "time"

// Carrier-frequency thresholds (25th, 50th and 75th percentiles).
type Quartiles struct {
	Q1 float64
	Q2 float64
	Q3 float64
}

// Bucket is one carrier-frequency segment.
// Rows are the bucket carriers' loads after the degenerate-row filter.
type Bucket struct {
	ID       int
	Carriers []string
	Rows     []LoadRecord
}

// Distribution of the derived cost-per-mile column.
type CostPerMileSummary struct {
	Values []float64
	// Missing counts rows whose cost per mile is undefined.
	Missing int
	// NonFinite counts ratios that evaluated to ±Inf or NaN before downgrade.
	NonFinite      int
	ClipPercentile float64
	Upper          float64
}

// Duplicate and coverage counts of an inner join on LOAD_ID.
// Duplicate counts are rows minus distinct keys.
type JoinDiagnostics struct {
	LeftRows        int
	RightRows       int
	JoinedRows      int
	LeftDuplicates  int
	RightDuplicates int
	JoinDuplicates  int
	LeftOnlyKeys    int
	RightOnlyKeys   int
}

// Inspectable counters gathered across the run.
type Diagnostics struct {
	LoadRows               int
	LoadColumns            int
	ServiceRows            int
	ServiceColumns         int
	DistinctCarriers       int
	DistinctTemperatureReq int
	MissingMileage         int
	MissingPayment         int
	MissingCostPerMile     int
	NonFiniteCostPerMile   int
	TimelinessExcluded     int
	Join                   JoinDiagnostics
}

// Report bundles every analytical view produced by one pipeline run.
// It is built once and never mutated by sinks.
type Report struct {
	RunID       string
	GeneratedAt time.Time

	CarrierZones      *CrossTab
	Timeliness        *CrossTab
	AwardComparison   []AwardComparison
	CarrierAggregates []CarrierAggregate
	Frequencies       []CarrierCount
	// HasQuartiles is false when no carrier has a load.
	HasQuartiles bool
	Quartiles    Quartiles
	Buckets      []Bucket
	CostPerMile  CostPerMileSummary
	Joined       []JoinedLoad
	Diagnostics  Diagnostics
}
