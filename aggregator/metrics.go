package aggregator

import (
	a "github.com/patricioibar/points-dashboard/aggregator/aggFunctions"
	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/sales"
)

// Metrics are the headline figures of a scope.
type Metrics struct {
	TotalPoints       float64 `json:"total_points" yaml:"total_points"`
	UniqueOrders      int     `json:"unique_orders" yaml:"unique_orders"`
	NewClients        int     `json:"new_clients" yaml:"new_clients"`
	UniquePersons     int     `json:"unique_persons" yaml:"unique_persons"`
	AverageOrderValue float64 `json:"average_order_value" yaml:"average_order_value"`
}

var metricAggregations = []a.AggConfig{
	{Col: sales.ColPoints, Func: "sum"},
	{Col: sales.ColOrderID, Func: "count_distinct"},
	{Col: sales.ColBuyerIDClean, Func: "count_distinct"},
}

var newClientAggregations = []a.AggConfig{
	{Col: sales.ColBuyerIDClean, Func: "count_distinct"},
}

// ComputeMetrics never fails: an empty scope yields zeros.
func ComputeMetrics(scope filter.Scope) Metrics {
	totals := Aggregate(scope, metricAggregations)
	newClients := Aggregate(FirstPurchases(scope), newClientAggregations)

	m := Metrics{
		TotalPoints:   toFloat(totals[0]),
		UniqueOrders:  toInt(totals[1]),
		UniquePersons: toInt(totals[2]),
		NewClients:    toInt(newClients[0]),
	}
	m.AverageOrderValue = AverageOrderValue(m.TotalPoints, m.UniqueOrders)
	return m
}

// AverageOrderValue is points per order, or 0 when there are no orders.
func AverageOrderValue(points float64, orders int) float64 {
	if orders <= 0 {
		return 0
	}
	return points / float64(orders)
}

// FirstPurchases narrows a scope to the records flagged as first purchases.
func FirstPurchases(scope filter.Scope) filter.Scope {
	return scope.Where(func(rec *sales.SaleRecord) bool { return rec.FirstPurchase })
}
