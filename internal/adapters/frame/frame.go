// Package frame decodes raw tabular records into domain rows.
//
// Both the CSV and the SQL sources hand their records to this package, so
// column typing, missing-value markers and the required-column check are the
// same regardless of where a table came from.
package frame

import (
	"fmt"
	"freight-eda/internal/domain"
	"freight-eda/internal/ports"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Cell values treated as missing.
var NaNValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "<nil>"}

// Table is a header plus trimmed data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable copies records, stripping a UTF-8 BOM from the first header cell
// and surrounding whitespace from every cell.
func NewTable(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, fmt.Errorf("decode table: no header row")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return Table{}, fmt.Errorf("decode table: row %d has %d fields, header has %d", i+1, len(rec), len(header))
		}
		row := make([]string, len(rec))
		for j, v := range rec {
			row[j] = strings.TrimSpace(v)
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}, nil
}

// Require fails with domain.ErrMissingColumn naming every absent column.
func (t Table) Require(columns []string) error {
	have := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		have[h] = struct{}{}
	}

	missing := make([]string, 0)
	for _, c := range columns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// frame loads the table into a DataFrame with the declared numeric columns
// typed as floats and every other column as strings.
func (t Table) frame(numeric []string) (dataframe.DataFrame, error) {
	types := make(map[string]series.Type, len(numeric))
	for _, c := range numeric {
		types[c] = series.Float
	}

	records := make([][]string, 0, 1+len(t.Rows))
	records = append(records, t.Header)
	records = append(records, t.Rows...)

	df := dataframe.LoadRecords(
		records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
		dataframe.NaNValues(NaNValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("decode table: %w", df.Err)
	}
	return df, nil
}

// stringsOf returns a column as strings with missing cells mapped to "".
func stringsOf(df dataframe.DataFrame, name string) []string {
	col := df.Col(name)
	recs := col.Records()
	nan := col.IsNaN()
	for i := range recs {
		if nan[i] {
			recs[i] = ""
		}
	}
	return recs
}

// DecodeLoadLevel converts a load-level table. Malformed numeric cells become missing values.
func DecodeLoadLevel(t Table) (ports.Table[domain.LoadRecord], error) {
	if err := t.Require(domain.LoadLevelColumns); err != nil {
		return ports.Table[domain.LoadRecord]{}, fmt.Errorf("decode load level: %w", err)
	}

	out := ports.Table[domain.LoadRecord]{Rows: []domain.LoadRecord{}, Columns: len(t.Header)}
	if len(t.Rows) == 0 {
		return out, nil
	}

	df, err := t.frame(domain.LoadLevelNumericColumns)
	if err != nil {
		return ports.Table[domain.LoadRecord]{}, fmt.Errorf("decode load level: %w", err)
	}

	loadIDs := stringsOf(df, domain.ColLoadID)
	carriers := stringsOf(df, domain.ColCarrierKey)
	zones := stringsOf(df, domain.ColTemperatureZone)
	reqs := stringsOf(df, domain.ColTemperatureReq)
	awards := stringsOf(df, domain.ColAwardType)
	picks := df.Col(domain.ColOnTimePick).Float()
	drops := df.Col(domain.ColOnTimeDrop).Float()
	contract := df.Col(domain.ColContractLinehaul).Float()
	paid := df.Col(domain.ColPaidLinehaul).Float()
	payment := df.Col(domain.ColTotalPaymentAmount).Float()
	mileage := df.Col(domain.ColMileage).Float()

	out.Rows = make([]domain.LoadRecord, df.Nrow())
	for i := range out.Rows {
		out.Rows[i] = domain.LoadRecord{
			LoadID:             loadIDs[i],
			CarrierKey:         carriers[i],
			TemperatureZone:    zones[i],
			TemperatureReq:     reqs[i],
			OnTimePick:         domain.ParseTimeliness(picks[i]),
			OnTimeDrop:         domain.ParseTimeliness(drops[i]),
			AwardType:          awards[i],
			ContractLinehaul:   domain.Float(contract[i]),
			PaidLinehaul:       domain.Float(paid[i]),
			TotalPaymentAmount: domain.Float(payment[i]),
			Mileage:            domain.Float(mileage[i]),
		}
	}

	return out, nil
}

// DecodeServicePerformance converts a service-performance table,
// keeping non-key columns as attributes in header order.
func DecodeServicePerformance(t Table) (ports.Table[domain.ServicePerformanceRecord], error) {
	if err := t.Require(domain.ServicePerformanceColumns); err != nil {
		return ports.Table[domain.ServicePerformanceRecord]{}, fmt.Errorf("decode service performance: %w", err)
	}

	out := ports.Table[domain.ServicePerformanceRecord]{Rows: []domain.ServicePerformanceRecord{}, Columns: len(t.Header)}
	if len(t.Rows) == 0 {
		return out, nil
	}

	df, err := t.frame(nil)
	if err != nil {
		return ports.Table[domain.ServicePerformanceRecord]{}, fmt.Errorf("decode service performance: %w", err)
	}

	names := df.Names()
	cols := make([][]string, len(names))
	for i, n := range names {
		cols[i] = stringsOf(df, n)
	}

	out.Rows = make([]domain.ServicePerformanceRecord, df.Nrow())
	for r := range out.Rows {
		rec := domain.ServicePerformanceRecord{Attributes: make([]domain.Attribute, 0, len(names)-1)}
		for c, n := range names {
			if n == domain.ColLoadID {
				rec.LoadID = cols[c][r]
				continue
			}
			rec.Attributes = append(rec.Attributes, domain.Attribute{Name: n, Value: cols[c][r]})
		}
		out.Rows[r] = rec
	}

	return out, nil
}
