package domain

// Attribute is a single named cell carried through from a source table.
type Attribute struct {
	Name  string
	Value string
}

// Represents one load's delivery performance. Only LoadID is interpreted;
// the other columns are kept in source order for downstream consumers.
type ServicePerformanceRecord struct {
	LoadID     string
	Attributes []Attribute
}

// Columns every service-performance source must provide.
var ServicePerformanceColumns = []string{ColLoadID}

// JoinedLoad pairs a load with one matching service-performance row.
type JoinedLoad struct {
	Load    LoadRecord
	Service ServicePerformanceRecord
}
