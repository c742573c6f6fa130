package filter

import (
	"errors"
	"sort"

	"github.com/op/go-logging"
	"github.com/patricioibar/points-dashboard/sales"
)

var log = logging.MustGetLogger("log")

const (
	HistoryScope     = "history"
	PeriodScope      = "period"
	StoreScope       = "store"
	FinalScope       = "final"
	SegmentWideScope = "segment_wide"
)

// Selection holds the caller's choice at every stage of the chain. An empty
// list means "no filtering" at that stage.
type Selection struct {
	Seasons  []string `json:"seasons" yaml:"seasons"`
	Months   []string `json:"months" yaml:"months"`
	Stores   []string `json:"stores" yaml:"stores"`
	Segments []string `json:"segments" yaml:"segments"`
}

// Scopes are the named views a selection produces. SegmentWide shares the
// period and segment filters with Final but ignores the store selection.
type Scopes struct {
	History     Scope
	Period      Scope
	Store       Scope
	Final       Scope
	SegmentWide Scope
}

// Apply runs the cascading chain season -> month -> store -> segment over
// table.
func Apply(table *sales.Table, sel Selection) Scopes {
	history := Full(HistoryScope, table)
	period := Chain(history, BySeasons(sel.Seasons), ByMonths(sel.Months)).Named(PeriodScope)
	store := ByStores(sel.Stores)(period).Named(StoreScope)
	final := BySegments(sel.Segments)(store).Named(FinalScope)
	segmentWide := BySegments(sel.Segments)(period).Named(SegmentWideScope)

	log.Debugf("Scopes: history=%d period=%d store=%d final=%d segment_wide=%d",
		history.Len(), period.Len(), store.Len(), final.Len(), segmentWide.Len())

	return Scopes{
		History:     history,
		Period:      period,
		Store:       store,
		Final:       final,
		SegmentWide: segmentWide,
	}
}

// ByName returns the scope registered under name.
func (s Scopes) ByName(name string) (Scope, error) {
	switch name {
	case HistoryScope:
		return s.History, nil
	case PeriodScope:
		return s.Period, nil
	case StoreScope:
		return s.Store, nil
	case FinalScope:
		return s.Final, nil
	case SegmentWideScope:
		return s.SegmentWide, nil
	default:
		return Scope{}, errors.New("unknown scope " + name)
	}
}

// Options lists the values each filter offers. Each level is computed from
// the data left by the previous levels, so segments are only offered from the
// stores already selected.
type Options struct {
	Seasons  []string `json:"seasons" yaml:"seasons"`
	Months   []string `json:"months" yaml:"months"`
	Stores   []string `json:"stores" yaml:"stores"`
	Segments []string `json:"segments" yaml:"segments"`
}

func AvailableOptions(table *sales.Table, sel Selection) Options {
	history := Full(HistoryScope, table)

	seasons := nonBlank(history.Distinct(func(rec *sales.SaleRecord) string { return rec.SeasonLabel }))
	seasons = without(seasons, sales.SeasonLabel(0))
	sales.SortSeasonLabels(seasons)

	bySeason := BySeasons(sel.Seasons)(history)
	months := sales.SortFiscalMonths(bySeason.Distinct(func(rec *sales.SaleRecord) string { return rec.MonthLabel }))

	period := ByMonths(sel.Months)(bySeason)
	stores := nonBlank(period.Distinct(func(rec *sales.SaleRecord) string { return rec.Store }))
	sort.Strings(stores)

	store := ByStores(sel.Stores)(period)
	segments := nonBlank(store.Distinct(func(rec *sales.SaleRecord) string { return rec.Segment }))
	sort.Strings(segments)

	return Options{
		Seasons:  seasons,
		Months:   months,
		Stores:   stores,
		Segments: segments,
	}
}

// DefaultSelection selects every option, the way the dashboard opens.
func DefaultSelection(table *sales.Table) Selection {
	opts := AvailableOptions(table, Selection{})
	return Selection{
		Seasons:  opts.Seasons,
		Months:   opts.Months,
		Stores:   opts.Stores,
		Segments: opts.Segments,
	}
}

func nonBlank(values []string) []string {
	return without(values, "")
}

func without(values []string, drop string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
