package filter

import (
	"github.com/patricioibar/points-dashboard/sales"
)

// Step is one stage of the cascading filter chain.
type Step func(Scope) Scope

// Chain runs the steps in order.
func Chain(scope Scope, steps ...Step) Scope {
	for _, step := range steps {
		scope = step(scope)
	}
	return scope
}

// BySeasons keeps rows whose season label is selected. An empty selection
// lets every row through.
func BySeasons(labels []string) Step {
	return byValues(labels, func(rec *sales.SaleRecord) string { return rec.SeasonLabel })
}

// ByMonths keeps rows whose month label is selected. Rows without a month
// label never match a non-empty selection.
func ByMonths(labels []string) Step {
	return byValues(labels, func(rec *sales.SaleRecord) string { return rec.MonthLabel })
}

func ByStores(stores []string) Step {
	return byValues(stores, func(rec *sales.SaleRecord) string { return rec.Store })
}

func BySegments(segments []string) Step {
	return byValues(segments, func(rec *sales.SaleRecord) string { return rec.Segment })
}

func byValues(values []string, field func(rec *sales.SaleRecord) string) Step {
	return func(scope Scope) Scope {
		if len(values) == 0 {
			return scope
		}
		selected := toSet(values)
		return scope.Where(func(rec *sales.SaleRecord) bool {
			v := field(rec)
			if v == "" {
				return false
			}
			_, ok := selected[v]
			return ok
		})
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
