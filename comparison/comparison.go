// Package comparison lays the selected scope next to its segment-wide and
// company-wide parents.
package comparison

import (
	"github.com/patricioibar/points-dashboard/aggregator"
)

const (
	OrderCountRow        = "Order count"
	AverageOrderValueRow = "Average order value"
	NewClientsRow        = "New clients"
	TotalPointsRow       = "Total points"
	StoreRankRow         = "Store rank"
)

// Inputs are the metrics of the three compared scopes and the best store
// rank of the selection.
type Inputs struct {
	Selected    aggregator.Metrics
	SegmentWide aggregator.Metrics
	Company     aggregator.Metrics
	StoreRank   int
	RankFound   bool
}

// Row holds nil wherever a value does not apply.
type Row struct {
	Label            string   `json:"label" yaml:"label"`
	Selected         *float64 `json:"selected" yaml:"selected"`
	SegmentWide      *float64 `json:"segment_wide" yaml:"segment_wide"`
	Company          *float64 `json:"company" yaml:"company"`
	PercentOfSegment *float64 `json:"percent_of_segment" yaml:"percent_of_segment"`
}

type Table struct {
	Rows []Row `json:"rows" yaml:"rows"`
}

// Build always returns the five rows in the same order.
func Build(in Inputs) Table {
	rows := []Row{
		metricRow(OrderCountRow, float64(in.Selected.UniqueOrders), float64(in.SegmentWide.UniqueOrders), float64(in.Company.UniqueOrders)),
		metricRow(AverageOrderValueRow, in.Selected.AverageOrderValue, in.SegmentWide.AverageOrderValue, in.Company.AverageOrderValue),
		metricRow(NewClientsRow, float64(in.Selected.NewClients), float64(in.SegmentWide.NewClients), float64(in.Company.NewClients)),
		metricRow(TotalPointsRow, in.Selected.TotalPoints, in.SegmentWide.TotalPoints, in.Company.TotalPoints),
		rankRow(in.StoreRank, in.RankFound),
	}
	return Table{Rows: rows}
}

// Percent is selected as a percentage of segment. It reports false when the
// segment value is zero.
func Percent(selected, segment float64) (float64, bool) {
	if segment == 0 {
		return 0, false
	}
	return selected / segment * 100, true
}

func metricRow(label string, selected, segment, company float64) Row {
	row := Row{
		Label:       label,
		Selected:    value(selected),
		SegmentWide: value(segment),
		Company:     value(company),
	}
	if pct, ok := Percent(selected, segment); ok {
		row.PercentOfSegment = value(pct)
	}
	return row
}

func rankRow(rank int, found bool) Row {
	row := Row{Label: StoreRankRow}
	if found && rank > 0 {
		row.Selected = value(float64(rank))
	}
	return row
}

func value(v float64) *float64 {
	return &v
}

// Row returns the row with the given label.
func (t Table) Row(label string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}
