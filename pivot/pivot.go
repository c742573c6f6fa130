// Package pivot cross-tabulates a scope by month label and season label.
package pivot

import (
	"fmt"

	"github.com/patricioibar/points-dashboard/aggregator"
	a "github.com/patricioibar/points-dashboard/aggregator/aggFunctions"
	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/sales"
)

// Kind selects the value a pivot cell holds.
type Kind int

const (
	Points Kind = iota
	AverageOrderValue
	NewClients
)

var kindNames = map[Kind]string{
	Points:            "points",
	AverageOrderValue: "average_order_value",
	NewClients:        "new_clients",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown pivot kind %q", string(text))
}

// ParseKind accepts the names String returns.
func ParseKind(name string) (Kind, error) {
	var k Kind
	err := k.UnmarshalText([]byte(name))
	return k, err
}

const TotalLabel = "Total"

type Row struct {
	Label  string    `json:"label" yaml:"label"`
	Values []float64 `json:"values" yaml:"values"`
	Total  float64   `json:"total" yaml:"total"`
}

// Table has one row per month label in fiscal order and one column per season
// label in season order. Totals holds the column sums of Rows.
type Table struct {
	Kind    Kind     `json:"kind" yaml:"kind"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	Totals  Row      `json:"totals" yaml:"totals"`
}

var cellAggregations = []a.AggConfig{
	{Col: sales.ColPoints, Func: "sum"},
	{Col: sales.ColOrderID, Func: "count_distinct"},
	{Col: sales.ColFirstPurchase, Func: "sum"},
}

type cellKey struct {
	month  string
	season string
}

// Build pivots scope for the given kind. Month labels outside the fiscal
// calendar are left out of the rows and so of the totals. Missing
// combinations are zero.
func Build(scope filter.Scope, kind Kind) Table {
	groups := aggregator.GroupBy(scope, []string{sales.ColMonthLabel, sales.ColSeasonLabel}, cellAggregations)

	cells := make(map[cellKey]float64, len(groups))
	var months, seasons []string
	seenMonth := make(map[string]bool)
	seenSeason := make(map[string]bool)
	for _, g := range groups {
		month, season := g.Key[0], g.Key[1]
		if _, ok := sales.FiscalRank(month); !ok {
			continue
		}
		cells[cellKey{month, season}] = cellValue(g, kind)
		if !seenMonth[month] {
			seenMonth[month] = true
			months = append(months, month)
		}
		if !seenSeason[season] {
			seenSeason[season] = true
			seasons = append(seasons, season)
		}
	}
	months = sales.SortFiscalMonths(months)
	sales.SortSeasonLabels(seasons)

	t := Table{
		Kind:    kind,
		Columns: seasons,
		Rows:    make([]Row, 0, len(months)),
		Totals:  Row{Label: TotalLabel, Values: make([]float64, len(seasons))},
	}
	if t.Columns == nil {
		t.Columns = []string{}
	}
	for _, month := range months {
		row := Row{Label: month, Values: make([]float64, len(seasons))}
		for j, season := range seasons {
			v := cells[cellKey{month, season}]
			row.Values[j] = v
			row.Total += v
			t.Totals.Values[j] += v
		}
		t.Totals.Total += row.Total
		t.Rows = append(t.Rows, row)
	}
	return t
}

func cellValue(g aggregator.GroupedRow, kind Kind) float64 {
	switch kind {
	case AverageOrderValue:
		return aggregator.AverageOrderValue(g.Float(0), g.Int(1))
	case NewClients:
		return g.Float(2)
	}
	return g.Float(0)
}

// Cell returns the value at (month, season) and false when either label is
// not part of the table.
func (t Table) Cell(month, season string) (float64, bool) {
	col := -1
	for j, c := range t.Columns {
		if c == season {
			col = j
			break
		}
	}
	if col < 0 {
		return 0, false
	}
	for _, row := range t.Rows {
		if row.Label == month {
			return row.Values[col], true
		}
	}
	return 0, false
}
