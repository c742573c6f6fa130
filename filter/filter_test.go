package filter_test

import (
	"testing"
	"time"

	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(season int, month int, store, segment string, points float64) sales.SaleRecord {
	return sales.SaleRecord{
		SaleDate:    time.Date(2024, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Season:      season,
		SeasonLabel: sales.SeasonLabel(season),
		Month:       month,
		MonthLabel:  sales.MonthLabel(month),
		Store:       store,
		Segment:     segment,
		Points:      points,
	}
}

func fixture() *sales.Table {
	return sales.NewTable([]sales.SaleRecord{
		rec(7, 7, "Loja A", "Marcenaria", 100),
		rec(7, 8, "Loja A", "Arquitetura", 200),
		rec(7, 8, "Loja B", "Marcenaria", 300),
		rec(8, 1, "Loja B", "Decoracao", 400),
		rec(8, 2, "Loja C", "Arquitetura", 500),
		rec(0, 3, "Loja C", "Marcenaria", 600),
	})
}

func points(s filter.Scope) float64 {
	total := 0.0
	s.Each(func(r *sales.SaleRecord) { total += r.Points })
	return total
}

func TestEmptySelectionPassesEverythingThrough(t *testing.T) {
	table := fixture()
	scopes := filter.Apply(table, filter.Selection{})

	for _, s := range []filter.Scope{scopes.History, scopes.Period, scopes.Store, scopes.Final, scopes.SegmentWide} {
		assert.Equal(t, table.Len(), s.Len(), "scope %s", s.Name)
	}
}

func TestCascadingSelection(t *testing.T) {
	scopes := filter.Apply(fixture(), filter.Selection{
		Seasons:  []string{"Season 7"},
		Months:   []string{"Aug (08)"},
		Stores:   []string{"Loja A"},
		Segments: []string{"Marcenaria", "Arquitetura"},
	})

	assert.Equal(t, 2, scopes.Period.Len())
	assert.Equal(t, 1, scopes.Store.Len())
	assert.Equal(t, 1, scopes.Final.Len())
	assert.Equal(t, 2, scopes.SegmentWide.Len())
	assert.Equal(t, 200.0, points(scopes.Final))
	assert.Equal(t, 500.0, points(scopes.SegmentWide))

	assert.Equal(t, filter.PeriodScope, scopes.Period.Name)
	assert.Equal(t, filter.FinalScope, scopes.Final.Name)
	assert.Equal(t, filter.SegmentWideScope, scopes.SegmentWide.Name)
}

func TestScopesNest(t *testing.T) {
	scopes := filter.Apply(fixture(), filter.Selection{
		Seasons:  []string{"Season 7", "Season 8"},
		Stores:   []string{"Loja B"},
		Segments: []string{"Marcenaria"},
	})

	assert.True(t, scopes.Period.IsSubsetOf(scopes.History))
	assert.True(t, scopes.Store.IsSubsetOf(scopes.Period))
	assert.True(t, scopes.Final.IsSubsetOf(scopes.Store))
	assert.True(t, scopes.Final.IsSubsetOf(scopes.SegmentWide))
	assert.True(t, scopes.SegmentWide.IsSubsetOf(scopes.Period))
	assert.GreaterOrEqual(t, points(scopes.SegmentWide), points(scopes.Final))
}

func TestMonthFilterDropsRowsWithoutLabel(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{
		rec(1, 1, "A", "S", 10),
		{Store: "A", Segment: "S", SeasonLabel: "Season 1", MonthLabel: "", Points: 5},
	})

	all := filter.Apply(table, filter.Selection{})
	assert.Equal(t, 2, all.Period.Len())

	byMonth := filter.Apply(table, filter.Selection{Months: []string{"Jan (01)"}})
	assert.Equal(t, 1, byMonth.Period.Len())
}

func TestExplicitSeasonZeroIsNotRejected(t *testing.T) {
	scopes := filter.Apply(fixture(), filter.Selection{Seasons: []string{"Season 0"}})
	require.Equal(t, 1, scopes.Period.Len())
	assert.Equal(t, 600.0, points(scopes.Period))
}

func TestApplyNeverMutatesBase(t *testing.T) {
	table := fixture()
	before := append([]sales.SaleRecord(nil), table.Records...)
	_ = filter.Apply(table, filter.Selection{Seasons: []string{"Season 8"}, Stores: []string{"Loja C"}})
	assert.Equal(t, before, table.Records)
}

func TestAvailableOptions(t *testing.T) {
	table := fixture()

	opts := filter.AvailableOptions(table, filter.Selection{})
	assert.Equal(t, []string{"Season 7", "Season 8"}, opts.Seasons)
	assert.Equal(t, []string{"Jul (07)", "Aug (08)", "Jan (01)", "Feb (02)", "Mar (03)"}, opts.Months)
	assert.Equal(t, []string{"Loja A", "Loja B", "Loja C"}, opts.Stores)
	assert.Equal(t, []string{"Arquitetura", "Decoracao", "Marcenaria"}, opts.Segments)

	opts = filter.AvailableOptions(table, filter.Selection{Stores: []string{"Loja A"}})
	assert.Equal(t, []string{"Arquitetura", "Marcenaria"}, opts.Segments)

	opts = filter.AvailableOptions(table, filter.Selection{Seasons: []string{"Season 8"}})
	assert.Equal(t, []string{"Jan (01)", "Feb (02)"}, opts.Months)
	assert.Equal(t, []string{"Loja B", "Loja C"}, opts.Stores)
}

func TestSeasonOptionsSortNumerically(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{
		rec(10, 1, "A", "S", 1),
		rec(9, 1, "A", "S", 1),
		rec(7, 1, "A", "S", 1),
	})
	opts := filter.AvailableOptions(table, filter.Selection{})
	assert.Equal(t, []string{"Season 7", "Season 9", "Season 10"}, opts.Seasons)
}

func TestDefaultSelectionExcludesSeasonZero(t *testing.T) {
	table := fixture()
	scopes := filter.Apply(table, filter.DefaultSelection(table))
	assert.Equal(t, 5, scopes.Final.Len())
}

func TestScopesByName(t *testing.T) {
	scopes := filter.Apply(fixture(), filter.Selection{})
	s, err := scopes.ByName(filter.SegmentWideScope)
	require.NoError(t, err)
	assert.Equal(t, filter.SegmentWideScope, s.Name)

	_, err = scopes.ByName("nope")
	assert.Error(t, err)
}

func TestEmptyTable(t *testing.T) {
	scopes := filter.Apply(sales.NewTable(nil), filter.Selection{Seasons: []string{"Season 1"}})
	assert.True(t, scopes.Final.IsEmpty())
	assert.Empty(t, scopes.Final.Records())
}
