// Package report holds the report sinks: a console summary, a JSON
// export and an XLSX workbook.
package report

import (
	"context"
	"fmt"
	"freight-eda/internal/domain"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// ConsoleSink prints the figures of a report as aligned text tables.
// Per-carrier tables are capped at TopCarriers rows; zero prints all.
type ConsoleSink struct {
	W           io.Writer
	TopCarriers int
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{W: w, TopCarriers: 20}
}

func (s *ConsoleSink) Write(ctx context.Context, r *domain.Report) error {
	tw := tabwriter.NewWriter(s.W, 0, 0, 2, ' ', 0)
	p := &printer{w: tw}

	d := r.Diagnostics
	p.section("Run")
	p.row("run id", r.RunID)
	p.row("generated at", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	p.row("load_level shape", fmt.Sprintf("(%d, %d)", d.LoadRows, d.LoadColumns))
	p.row("service_performance shape", fmt.Sprintf("(%d, %d)", d.ServiceRows, d.ServiceColumns))
	p.row("distinct carriers", d.DistinctCarriers)
	p.row("distinct temperature requirements", d.DistinctTemperatureReq)
	p.row("missing MILEAGE", d.MissingMileage)
	p.row("missing TOTAL_PAYMENT_AMOUNT", d.MissingPayment)
	p.row("timeliness rows excluded", d.TimelinessExcluded)

	p.section("Loads by carrier and temperature zone")
	p.crossTab(r.CarrierZones, s.TopCarriers)

	p.section("On-time pick x on-time drop (share of loads)")
	p.crossTab(r.Timeliness, 0)

	p.section("Mean payment by award type")
	p.row("CARRIER_SKEY", "primary", "secondary", "primary loads", "secondary loads")
	for i, a := range r.AwardComparison {
		if s.TopCarriers > 0 && i >= s.TopCarriers {
			break
		}
		p.row(a.CarrierKey, ff(a.MeanPrimary), ff(a.MeanSecondary), a.PrimaryLoads, a.SecondaryLoads)
	}

	p.section("Carrier frequency")
	if r.HasQuartiles {
		p.row("Q1", ff(r.Quartiles.Q1))
		p.row("Q2", ff(r.Quartiles.Q2))
		p.row("Q3", ff(r.Quartiles.Q3))
	} else {
		p.row("quartiles", "undefined (no carrier loads)")
	}
	for _, b := range r.Buckets {
		p.row(fmt.Sprintf("bucket %d", b.ID), fmt.Sprintf("%d carriers", len(b.Carriers)), fmt.Sprintf("%d rows", len(b.Rows)))
	}

	cpm := r.CostPerMile
	p.section("Cost per mile")
	p.row("defined values", len(cpm.Values))
	p.row("missing", cpm.Missing)
	p.row("non-finite downgraded", cpm.NonFinite)
	p.row(fmt.Sprintf("p%s clip", ff(cpm.ClipPercentile*100)), ff(cpm.Upper))

	j := d.Join
	p.section("Join on LOAD_ID")
	p.row("length of load_level", j.LeftRows)
	p.row("length of service_performance", j.RightRows)
	p.row("length of join table", j.JoinedRows)
	p.row("duplicated load ids in join table", j.JoinDuplicates)
	p.row("duplicated load ids in load_level", j.LeftDuplicates)
	p.row("duplicated load ids in service_performance", j.RightDuplicates)
	p.row("load ids only in load_level", j.LeftOnlyKeys)
	p.row("load ids only in service_performance", j.RightOnlyKeys)

	if p.err != nil {
		return fmt.Errorf("write console report: %w", p.err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write console report: %w", err)
	}
	return nil
}

// printer keeps the first write error so callers can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s+"\n")
}

func (p *printer) section(title string) {
	p.line("")
	p.line("== " + title)
}

func (p *printer) row(cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	p.line(strings.Join(parts, "\t") + "\t")
}

func (p *printer) crossTab(c *domain.CrossTab, maxRows int) {
	if c == nil {
		p.row("(none)")
		return
	}

	header := append([]any{c.RowName + " \\ " + c.ColName}, toAny(c.ColLabels)...)
	p.row(header...)
	for i, label := range c.RowLabels {
		if maxRows > 0 && i >= maxRows {
			p.row(fmt.Sprintf("... %d more", len(c.RowLabels)-maxRows))
			break
		}
		cells := []any{label}
		for _, v := range c.Cells[i] {
			if c.Normalized {
				cells = append(cells, strconv.FormatFloat(v, 'f', 4, 64))
			} else {
				cells = append(cells, strconv.FormatFloat(v, 'f', 0, 64))
			}
		}
		p.row(cells...)
	}
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
