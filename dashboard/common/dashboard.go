package common

import (
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/patricioibar/points-dashboard/aggregator"
	"github.com/patricioibar/points-dashboard/comparison"
	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/joiner"
	"github.com/patricioibar/points-dashboard/loader"
	"github.com/patricioibar/points-dashboard/normalizer"
	"github.com/patricioibar/points-dashboard/pivot"
	"github.com/patricioibar/points-dashboard/sales"
	"github.com/patricioibar/points-dashboard/tiers"
)

var log = logging.MustGetLogger("log")

// Dashboard holds the enriched base table. It is built once per load and
// only read afterwards, so Compute may run for many selections.
type Dashboard struct {
	table            *sales.Table
	stats            normalizer.Stats
	warnings         []error
	topProfessionals int
}

// New normalizes the sales table and matches it against the registrant
// roster. Problems with the source never fail it; they end up in Warnings.
func New(src loader.Source, config *Config) *Dashboard {
	cols := normalizer.DefaultColumns()
	top := 0
	if config != nil {
		cols = config.Columns.WithDefaults()
		top = config.TopProfessionals
	}

	d := &Dashboard{topProfessionals: top}
	d.warnings = append(d.warnings, src.Warnings...)

	table, stats := normalizer.Normalize(src.Sales, cols)
	d.stats = stats
	for _, col := range stats.MissingColumns {
		d.warnings = append(d.warnings, loader.MissingColumn("sales", col))
	}
	log.Infof("Normalized %d of %d sales rows (%d dropped, %d cells zero-filled, %d invalid seasons)",
		table.Len(), stats.InputRows, stats.DroppedRows, stats.ZeroFilledCells, stats.InvalidSeasons)

	registry, err := joiner.NewRegistryCache(src.Registrants, cols.RegistrantID)
	if err != nil {
		if src.Registrants != nil && len(src.Registrants.ColumnNames) > 0 {
			w := loader.MissingColumn("registrants", cols.RegistrantID)
			log.Warningf("%v", w)
			d.warnings = append(d.warnings, w)
		}
		log.Warningf("Registration matching disabled, nobody counts as a new client: %v", err)
	}
	log.Infof("Registrant roster holds %d identifiers", registry.Len())
	d.table = joiner.Match(table, registry)
	return d
}

func (d *Dashboard) Table() *sales.Table {
	return d.table
}

func (d *Dashboard) Stats() normalizer.Stats {
	return d.stats
}

func (d *Dashboard) Warnings() []error {
	return d.warnings
}

// WarningMessages renders Warnings for display.
func (d *Dashboard) WarningMessages() []string {
	out := make([]string, 0, len(d.warnings))
	for _, w := range d.warnings {
		out = append(out, w.Error())
	}
	return out
}

func (d *Dashboard) Options(sel filter.Selection) filter.Options {
	return filter.AvailableOptions(d.table, sel)
}

func (d *Dashboard) DefaultSelection() filter.Selection {
	return filter.DefaultSelection(d.table)
}

type ScopeMetrics struct {
	Store       aggregator.Metrics `json:"store" yaml:"store"`
	Final       aggregator.Metrics `json:"final" yaml:"final"`
	SegmentWide aggregator.Metrics `json:"segment_wide" yaml:"segment_wide"`
	Company     aggregator.Metrics `json:"company" yaml:"company"`
}

type Pivots struct {
	Points            pivot.Table `json:"points" yaml:"points"`
	AverageOrderValue pivot.Table `json:"average_order_value" yaml:"average_order_value"`
	NewClients        pivot.Table `json:"new_clients" yaml:"new_clients"`
}

// Report is everything the dashboard shows for one selection. Company-wide
// figures come from the period scope.
type Report struct {
	RunID        string                 `json:"run_id" yaml:"run_id"`
	GeneratedAt  time.Time              `json:"generated_at" yaml:"generated_at"`
	Selection    filter.Selection       `json:"selection" yaml:"selection"`
	Options      filter.Options         `json:"options" yaml:"options"`
	ScopeSizes   map[string]int         `json:"scope_sizes" yaml:"scope_sizes"`
	Metrics      ScopeMetrics           `json:"metrics" yaml:"metrics"`
	StoreRanking []aggregator.StoreRank `json:"store_ranking" yaml:"store_ranking"`
	Comparison   comparison.Table       `json:"comparison" yaml:"comparison"`
	Tiers        []tiers.ComparisonRow  `json:"tiers" yaml:"tiers"`
	Performance  []tiers.Professional   `json:"performance" yaml:"performance"`
	Pivots       Pivots                 `json:"pivots" yaml:"pivots"`

	SegmentDistribution []aggregator.SegmentTotal     `json:"segment_distribution" yaml:"segment_distribution"`
	MonthlyTrend        []aggregator.TrendPoint       `json:"monthly_trend" yaml:"monthly_trend"`
	OrdersByMonth       []aggregator.MonthCount       `json:"orders_by_month" yaml:"orders_by_month"`
	NewClientsBySeason  []aggregator.SeasonNewClients `json:"new_clients_by_season" yaml:"new_clients_by_season"`
	NewClients          []aggregator.NewClient        `json:"new_clients" yaml:"new_clients"`
	SeasonAverages      []aggregator.SeasonAverage    `json:"season_averages" yaml:"season_averages"`
}

// Compute runs the filter chain for sel and every aggregation over the
// resulting scopes. It never fails: empty scopes yield zeros.
func (d *Dashboard) Compute(sel filter.Selection) Report {
	scopes := filter.Apply(d.table, sel)

	metrics := ScopeMetrics{
		Store:       aggregator.ComputeMetrics(scopes.Store),
		Final:       aggregator.ComputeMetrics(scopes.Final),
		SegmentWide: aggregator.ComputeMetrics(scopes.SegmentWide),
		Company:     aggregator.ComputeMetrics(scopes.Period),
	}

	ranking := aggregator.RankStores(scopes.Period)
	rank, found := aggregator.SelectedStoreRank(ranking, sel.Stores)

	report := Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Selection:   sel,
		Options:     d.Options(sel),
		ScopeSizes: map[string]int{
			filter.HistoryScope:     scopes.History.Len(),
			filter.PeriodScope:      scopes.Period.Len(),
			filter.StoreScope:       scopes.Store.Len(),
			filter.FinalScope:       scopes.Final.Len(),
			filter.SegmentWideScope: scopes.SegmentWide.Len(),
		},
		Metrics:      metrics,
		StoreRanking: ranking,
		Comparison: comparison.Build(comparison.Inputs{
			Selected:    metrics.Final,
			SegmentWide: metrics.SegmentWide,
			Company:     metrics.Company,
			StoreRank:   rank,
			RankFound:   found,
		}),
		Tiers:       tiers.Compare(scopes.Final, scopes.SegmentWide, scopes.Period),
		Performance: tiers.Performance(scopes.Final, d.topProfessionals),
		Pivots: Pivots{
			Points:            pivot.Build(scopes.Final, pivot.Points),
			AverageOrderValue: pivot.Build(scopes.Final, pivot.AverageOrderValue),
			NewClients:        pivot.Build(scopes.Final, pivot.NewClients),
		},
		SegmentDistribution: aggregator.SegmentDistribution(scopes.Store),
		MonthlyTrend:        aggregator.MonthlyTrend(scopes.Final),
		OrdersByMonth:       aggregator.OrdersByMonth(scopes.Final),
		NewClientsBySeason:  aggregator.NewClientsBySeason(scopes.Final),
		NewClients:          aggregator.NewClientDetails(scopes.Final),
		SeasonAverages:      aggregator.SeasonAverages(scopes.Final),
	}

	log.Debugf("Report %s: final scope has %d rows, %.2f points", report.RunID, scopes.Final.Len(), metrics.Final.TotalPoints)
	return report
}
