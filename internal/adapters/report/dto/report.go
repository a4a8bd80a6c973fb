// Package dto holds the serialized shape of an analysis report.
package dto

import "time"

type CrossTabResponse struct {
	RowName    string      `json:"row_name"`
	ColName    string      `json:"col_name"`
	RowLabels  []string    `json:"row_labels"`
	ColLabels  []string    `json:"col_labels"`
	Cells      [][]float64 `json:"cells"`
	Total      int         `json:"total"`
	Normalized bool        `json:"normalized"`
}

type CarrierResponse struct {
	CarrierKey  string   `json:"carrier_key"`
	Loads       int      `json:"loads"`
	MeanMileage *float64 `json:"mean_mileage"`
	MeanPayment *float64 `json:"mean_payment"`
}

type AwardComparisonResponse struct {
	CarrierKey     string  `json:"carrier_key"`
	MeanPrimary    float64 `json:"mean_primary"`
	MeanSecondary  float64 `json:"mean_secondary"`
	PrimaryLoads   int     `json:"primary_loads"`
	SecondaryLoads int     `json:"secondary_loads"`
}

type QuartilesResponse struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

type BucketResponse struct {
	ID       int      `json:"id"`
	Carriers []string `json:"carriers"`
	Rows     int      `json:"rows"`
}

type CostPerMileResponse struct {
	Count          int      `json:"count"`
	Missing        int      `json:"missing"`
	NonFinite      int      `json:"non_finite"`
	Mean           *float64 `json:"mean"`
	ClipPercentile float64  `json:"clip_percentile"`
	Upper          float64  `json:"upper"`
}

type JoinResponse struct {
	LeftRows        int `json:"left_rows"`
	RightRows       int `json:"right_rows"`
	JoinedRows      int `json:"joined_rows"`
	LeftDuplicates  int `json:"left_duplicates"`
	RightDuplicates int `json:"right_duplicates"`
	JoinDuplicates  int `json:"join_duplicates"`
	LeftOnlyKeys    int `json:"left_only_keys"`
	RightOnlyKeys   int `json:"right_only_keys"`
}

type DiagnosticsResponse struct {
	LoadRows               int          `json:"load_rows"`
	LoadColumns            int          `json:"load_columns"`
	ServiceRows            int          `json:"service_rows"`
	ServiceColumns         int          `json:"service_columns"`
	DistinctCarriers       int          `json:"distinct_carriers"`
	DistinctTemperatureReq int          `json:"distinct_temperature_req"`
	MissingMileage         int          `json:"missing_mileage"`
	MissingPayment         int          `json:"missing_payment"`
	MissingCostPerMile     int          `json:"missing_cost_per_mile"`
	NonFiniteCostPerMile   int          `json:"non_finite_cost_per_mile"`
	TimelinessExcluded     int          `json:"timeliness_excluded"`
	Join                   JoinResponse `json:"join"`
}

type ReportResponse struct {
	RunID           string                    `json:"run_id"`
	GeneratedAt     time.Time                 `json:"generated_at"`
	CarrierZones    *CrossTabResponse         `json:"carrier_zones"`
	Timeliness      *CrossTabResponse         `json:"timeliness"`
	AwardComparison []AwardComparisonResponse `json:"award_comparison"`
	Carriers        []CarrierResponse         `json:"carriers"`
	Quartiles       *QuartilesResponse        `json:"quartiles"`
	Buckets         []BucketResponse          `json:"buckets"`
	CostPerMile     CostPerMileResponse       `json:"cost_per_mile"`
	Diagnostics     DiagnosticsResponse       `json:"diagnostics"`
}
