package domain

// Represents one freight load (shipment transaction) from the load-level table.
// LoadID is the join key and is not guaranteed unique.
// CostPerMile is the only derived field and stays Missing until the
// derivation stage returns a new slice with it populated.
type LoadRecord struct {
	LoadID             string
	CarrierKey         string
	TemperatureZone    string
	TemperatureReq     string
	OnTimePick         Timeliness
	OnTimeDrop         Timeliness
	AwardType          string
	ContractLinehaul   NullFloat
	PaidLinehaul       NullFloat
	TotalPaymentAmount NullFloat
	Mileage            NullFloat
	CostPerMile        NullFloat
}

// Source column names of the load-level table.
const (
	ColLoadID             = "LOAD_ID"
	ColCarrierKey         = "CARRIER_SKEY"
	ColTemperatureZone    = "TEMPERATURE_ZONE"
	ColTemperatureReq     = "TEMPERATURE_REQ"
	ColOnTimePick         = "ON_TIME_PICK"
	ColOnTimeDrop         = "ON_TIME_DROP"
	ColAwardType          = "AWARD_TYPE"
	ColContractLinehaul   = "CONTRACT_LINEHAUL"
	ColPaidLinehaul       = "PAID_LINEHAUL"
	ColTotalPaymentAmount = "TOTAL_PAYMENT_AMOUNT"
	ColMileage            = "MILEAGE"
	ColCostPerMile        = "Cost Per Mile"
)

// Temperature zones referenced by the carrier scatter view.
const (
	ZoneDry            = "DRY"
	ZoneTempControlled = "TEMP CONTROLLED"
)

// Columns every load-level source must provide.
var LoadLevelColumns = []string{
	ColLoadID,
	ColCarrierKey,
	ColTemperatureZone,
	ColTemperatureReq,
	ColOnTimePick,
	ColOnTimeDrop,
	ColAwardType,
	ColContractLinehaul,
	ColPaidLinehaul,
	ColTotalPaymentAmount,
	ColMileage,
}

// Numeric columns of the load-level table; the rest decode as strings.
var LoadLevelNumericColumns = []string{
	ColOnTimePick,
	ColOnTimeDrop,
	ColContractLinehaul,
	ColPaidLinehaul,
	ColTotalPaymentAmount,
	ColMileage,
}
