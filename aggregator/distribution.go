package aggregator

import (
	"strconv"
	"time"

	a "github.com/patricioibar/points-dashboard/aggregator/aggFunctions"
	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/sales"
)

type SegmentTotal struct {
	Segment      string  `json:"segment" yaml:"segment"`
	Points       float64 `json:"points" yaml:"points"`
	UniqueOrders int     `json:"unique_orders" yaml:"unique_orders"`
}

// SegmentDistribution sums points and counts unique orders per segment.
// Records without a segment are left out.
func SegmentDistribution(scope filter.Scope) []SegmentTotal {
	rows := GroupBy(scope, []string{sales.ColSegment}, []a.AggConfig{
		{Col: sales.ColPoints, Func: "sum"},
		{Col: sales.ColOrderID, Func: "count_distinct"},
	})
	out := make([]SegmentTotal, 0, len(rows))
	for _, row := range rows {
		if row.Key[0] == "" {
			continue
		}
		out = append(out, SegmentTotal{Segment: row.Key[0], Points: row.Float(0), UniqueOrders: row.Int(1)})
	}
	return out
}

type TrendPoint struct {
	Month  time.Time `json:"month" yaml:"month"`
	Points float64   `json:"points" yaml:"points"`
}

// MonthlyTrend sums points per calendar month. Months between the first and
// the last one with sales are present with zero points.
func MonthlyTrend(scope filter.Scope) []TrendPoint {
	rows := GroupBy(scope, []string{sales.ColYear, sales.ColMonth}, []a.AggConfig{{Col: sales.ColPoints, Func: "sum"}})
	if len(rows) == 0 {
		return []TrendPoint{}
	}

	byMonth := make(map[time.Time]float64, len(rows))
	var first, last time.Time
	for _, row := range rows {
		year, errY := strconv.Atoi(row.Key[0])
		month, errM := strconv.Atoi(row.Key[1])
		if errY != nil || errM != nil || month < 1 || month > 12 {
			continue
		}
		m := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		byMonth[m] += row.Float(0)
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || m.After(last) {
			last = m
		}
	}
	if first.IsZero() {
		return []TrendPoint{}
	}

	var out []TrendPoint
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, TrendPoint{Month: m, Points: byMonth[m]})
	}
	return out
}

type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// OrdersByMonth counts unique orders per month label on the fiscal calendar.
// Labels outside the calendar are left out.
func OrdersByMonth(scope filter.Scope) []MonthCount {
	rows := GroupBy(scope, []string{sales.ColMonthLabel}, []a.AggConfig{{Col: sales.ColOrderID, Func: "count_distinct"}})
	counts := make(map[string]int, len(rows))
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		counts[row.Key[0]] = row.Int(0)
		labels = append(labels, row.Key[0])
	}

	out := make([]MonthCount, 0, len(labels))
	for _, label := range sales.SortFiscalMonths(labels) {
		out = append(out, MonthCount{Month: label, Count: counts[label]})
	}
	return out
}

type SeasonNewClients struct {
	Season  string  `json:"season" yaml:"season"`
	Points  float64 `json:"points" yaml:"points"`
	Clients int     `json:"clients" yaml:"clients"`
}

// NewClientsBySeason reports, for every season present in the scope, the
// points and distinct buyers of first-purchase records.
func NewClientsBySeason(scope filter.Scope) []SeasonNewClients {
	seasons := scope.Distinct(func(rec *sales.SaleRecord) string { return rec.SeasonLabel })
	sales.SortSeasonLabels(seasons)

	rows := GroupBy(FirstPurchases(scope), []string{sales.ColSeasonLabel}, []a.AggConfig{
		{Col: sales.ColPoints, Func: "sum"},
		{Col: sales.ColBuyerIDClean, Func: "count_distinct"},
	})
	bySeason := make(map[string]GroupedRow, len(rows))
	for _, row := range rows {
		bySeason[row.Key[0]] = row
	}

	out := make([]SeasonNewClients, 0, len(seasons))
	for _, season := range seasons {
		entry := SeasonNewClients{Season: season}
		if row, ok := bySeason[season]; ok {
			entry.Points = row.Float(0)
			entry.Clients = row.Int(1)
		}
		out = append(out, entry)
	}
	return out
}

type NewClient struct {
	ProfessionalID  string    `json:"professional_id" yaml:"professional_id"`
	BuyerID         string    `json:"buyer_id" yaml:"buyer_id"`
	FirstPurchaseAt time.Time `json:"first_purchase_at" yaml:"first_purchase_at"`
	Season          int       `json:"season" yaml:"season"`
	Points          float64   `json:"points" yaml:"points"`
}

// NewClientDetails lists every (professional, buyer) pair among the
// first-purchase records with the buyer's first purchase date, the season of
// the pair's first record and the pair's points. Pairs without a professional
// are left out.
func NewClientDetails(scope filter.Scope) []NewClient {
	rows := GroupBy(FirstPurchases(scope), []string{sales.ColProfessionalID, sales.ColBuyerIDClean}, []a.AggConfig{
		{Col: sales.ColFirstPurchaseAt, Func: "min"},
		{Col: sales.ColSeason, Func: "first"},
		{Col: sales.ColPoints, Func: "sum"},
	})
	out := make([]NewClient, 0, len(rows))
	for _, row := range rows {
		if row.Key[0] == "" {
			continue
		}
		out = append(out, NewClient{
			ProfessionalID:  row.Key[0],
			BuyerID:         row.Key[1],
			FirstPurchaseAt: row.Time(0),
			Season:          row.Int(1),
			Points:          row.Float(2),
		})
	}
	return out
}

type SeasonAverage struct {
	Season            string  `json:"season" yaml:"season"`
	Points            float64 `json:"points" yaml:"points"`
	UniqueOrders      int     `json:"unique_orders" yaml:"unique_orders"`
	AverageOrderValue float64 `json:"average_order_value" yaml:"average_order_value"`
}

// SeasonAverages computes points per unique order for each season.
func SeasonAverages(scope filter.Scope) []SeasonAverage {
	rows := GroupBy(scope, []string{sales.ColSeasonLabel}, []a.AggConfig{
		{Col: sales.ColPoints, Func: "sum"},
		{Col: sales.ColOrderID, Func: "count_distinct"},
	})
	bySeason := make(map[string]GroupedRow, len(rows))
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		bySeason[row.Key[0]] = row
		labels = append(labels, row.Key[0])
	}
	sales.SortSeasonLabels(labels)

	out := make([]SeasonAverage, 0, len(labels))
	for _, label := range labels {
		row := bySeason[label]
		out = append(out, SeasonAverage{
			Season:            label,
			Points:            row.Float(0),
			UniqueOrders:      row.Int(1),
			AverageOrderValue: AverageOrderValue(row.Float(0), row.Int(1)),
		})
	}
	return out
}
