package aggregator

import (
	"sort"
	"strings"
	"time"

	"github.com/op/go-logging"
	a "github.com/patricioibar/points-dashboard/aggregator/aggFunctions"
	"github.com/patricioibar/points-dashboard/filter"
	ic "github.com/patricioibar/points-dashboard/innercommunication"
	"github.com/patricioibar/points-dashboard/sales"
)

var log = logging.MustGetLogger("log")

const KeyPartsSeparator = "|"

// GroupedRow is one group of a GroupBy: the key values in group-by order and
// one result per aggregation.
type GroupedRow struct {
	Key    []string
	Values []interface{}
}

func (g GroupedRow) Float(i int) float64 {
	return toFloat(g.Values[i])
}

func (g GroupedRow) Int(i int) int {
	return toInt(g.Values[i])
}

func (g GroupedRow) Time(i int) time.Time {
	t, _ := g.Values[i].(time.Time)
	return t
}

type group struct {
	key  []string
	aggs []a.Aggregation
}

// GroupBy folds the scope's records into one row per distinct combination of
// the groupBy columns. Rows come back sorted by key.
func GroupBy(scope filter.Scope, groupBy []string, aggregations []a.AggConfig) []GroupedRow {
	groups := make(map[string]*group)

	scope.Each(func(rec *sales.SaleRecord) {
		keyParts := make([]string, len(groupBy))
		for i, col := range groupBy {
			keyParts[i] = ic.ToString(rec.Field(col))
		}
		key := strings.Join(keyParts, KeyPartsSeparator)

		g, exists := groups[key]
		if !exists {
			g = &group{key: keyParts, aggs: make([]a.Aggregation, len(aggregations))}
			for i, agg := range aggregations {
				g.aggs[i] = a.NewAggregation(agg.Func)
				if g.aggs[i] == nil {
					log.Errorf("Unknown aggregation function %q, counting rows instead", agg.Func)
					g.aggs[i] = a.NewCountAggregation()
				}
			}
			groups[key] = g
		}

		for i, agg := range aggregations {
			g.aggs[i] = g.aggs[i].Add(rec.Field(agg.Col))
		}
	})

	return getAggregatedRowsFromGroupedData(groups)
}

// Aggregate folds the whole scope into a single row of results.
func Aggregate(scope filter.Scope, aggregations []a.AggConfig) []interface{} {
	rows := GroupBy(scope, nil, aggregations)
	if len(rows) == 0 {
		out := make([]interface{}, len(aggregations))
		for i, agg := range aggregations {
			out[i] = emptyResult(agg.Func)
		}
		return out
	}
	return rows[0].Values
}

func getAggregatedRowsFromGroupedData(groups map[string]*group) []GroupedRow {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]GroupedRow, 0, len(groups))
	for _, key := range keys {
		g := groups[key]
		values := make([]interface{}, len(g.aggs))
		for i, agg := range g.aggs {
			values[i] = agg.Result()
		}
		result = append(result, GroupedRow{Key: g.key, Values: values})
	}
	return result
}

func emptyResult(funcName string) interface{} {
	agg := a.NewAggregation(funcName)
	if agg == nil {
		return 0
	}
	return agg.Result()
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
