package pivot_test

import (
	"testing"

	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/pivot"
	"github.com/patricioibar/points-dashboard/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(month string, season int, order string, points float64, first bool) sales.SaleRecord {
	return sales.SaleRecord{
		MonthLabel:    month,
		Season:        season,
		SeasonLabel:   sales.SeasonLabel(season),
		OrderID:       order,
		Points:        points,
		FirstPurchase: first,
	}
}

func scope() filter.Scope {
	return filter.Full(filter.HistoryScope, sales.NewTable([]sales.SaleRecord{
		rec("Jan (01)", 10, "NF1", 100, true),
		rec("Jan (01)", 10, "NF1", 50, false),
		rec("Jan (01)", 2, "NF2", 30, false),
		rec("Jul (07)", 2, "NF3", 20, true),
		rec("Jul (07)", 2, "NF4", 40, true),
		rec("XYZ", 2, "NF5", 1000, false),
	}))
}

func TestBuildPoints(t *testing.T) {
	p := pivot.Build(scope(), pivot.Points)

	assert.Equal(t, []string{"Season 2", "Season 10"}, p.Columns)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, pivot.Row{Label: "Jul (07)", Values: []float64{60, 0}, Total: 60}, p.Rows[0])
	assert.Equal(t, pivot.Row{Label: "Jan (01)", Values: []float64{30, 150}, Total: 180}, p.Rows[1])
	assert.Equal(t, pivot.Row{Label: pivot.TotalLabel, Values: []float64{90, 150}, Total: 240}, p.Totals)
}

func TestUnmappedMonthIsLeftOutOfPivotButNotOfScope(t *testing.T) {
	s := scope()
	p := pivot.Build(s, pivot.Points)
	for _, row := range p.Rows {
		assert.NotEqual(t, "XYZ", row.Label)
	}

	var all float64
	s.Each(func(r *sales.SaleRecord) { all += r.Points })
	assert.Equal(t, 1240.0, all)
	assert.Equal(t, 240.0, p.Totals.Total)
}

func TestTotalsAreColumnSums(t *testing.T) {
	for _, kind := range []pivot.Kind{pivot.Points, pivot.AverageOrderValue, pivot.NewClients} {
		t.Run(kind.String(), func(t *testing.T) {
			p := pivot.Build(scope(), kind)
			sums := make([]float64, len(p.Columns))
			for _, row := range p.Rows {
				for j, v := range row.Values {
					sums[j] += v
				}
			}
			assert.InDeltaSlice(t, sums, p.Totals.Values, 1e-9)
		})
	}
}

func TestBuildAverageOrderValueAndNewClients(t *testing.T) {
	aov := pivot.Build(scope(), pivot.AverageOrderValue)
	v, ok := aov.Cell("Jan (01)", "Season 10")
	require.True(t, ok)
	assert.Equal(t, 150.0, v)
	v, _ = aov.Cell("Jul (07)", "Season 2")
	assert.Equal(t, 30.0, v)

	nc := pivot.Build(scope(), pivot.NewClients)
	v, _ = nc.Cell("Jul (07)", "Season 2")
	assert.Equal(t, 2.0, v)
	v, _ = nc.Cell("Jan (01)", "Season 2")
	assert.Equal(t, 0.0, v)

	_, ok = nc.Cell("Mar (03)", "Season 2")
	assert.False(t, ok)
}

func TestBuildEmptyScope(t *testing.T) {
	p := pivot.Build(filter.Full(filter.HistoryScope, sales.NewTable(nil)), pivot.Points)
	assert.Empty(t, p.Rows)
	assert.Empty(t, p.Columns)
	assert.Equal(t, 0.0, p.Totals.Total)
}

func TestParseKind(t *testing.T) {
	for _, kind := range []pivot.Kind{pivot.Points, pivot.AverageOrderValue, pivot.NewClients} {
		parsed, err := pivot.ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	_, err := pivot.ParseKind("median")
	assert.Error(t, err)
}
