package tiers

import (
	"github.com/op/go-logging"
	"github.com/patricioibar/points-dashboard/aggregator"
	a "github.com/patricioibar/points-dashboard/aggregator/aggFunctions"
	dr "github.com/patricioibar/points-dashboard/aggregator/dataRetainer"
	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/sales"
)

var log = logging.MustGetLogger("log")

var pointsByProfessional = []a.AggConfig{{Col: sales.ColPoints, Func: "sum"}}

type Professional struct {
	ID     string  `json:"id" yaml:"id"`
	Points float64 `json:"points" yaml:"points"`
	Tier   Tier    `json:"tier" yaml:"tier"`
}

// Bucket is what one tier holds within a scope.
type Bucket struct {
	Professionals int     `json:"professionals" yaml:"professionals"`
	Points        float64 `json:"points" yaml:"points"`
}

type Summary struct {
	Tier Tier `json:"tier" yaml:"tier"`
	Bucket
}

// Professionals sums points per professional within the scope and classifies
// each total. Records without a professional identifier are left out.
func Professionals(scope filter.Scope) []Professional {
	rows := aggregator.GroupBy(scope, []string{sales.ColProfessionalID}, pointsByProfessional)
	out := make([]Professional, 0, len(rows))
	for _, row := range rows {
		if row.Key[0] == "" {
			continue
		}
		points := row.Float(0)
		out = append(out, Professional{ID: row.Key[0], Points: points, Tier: Classify(points)})
	}
	return out
}

// Summarize counts professionals and sums their points per tier. Every tier
// is present, highest first.
func Summarize(scope filter.Scope) []Summary {
	buckets := make(map[Tier]Bucket, len(All))
	for _, p := range Professionals(scope) {
		b := buckets[p.Tier]
		b.Professionals++
		b.Points += p.Points
		buckets[p.Tier] = b
	}

	out := make([]Summary, 0, len(All))
	for _, tier := range All {
		out = append(out, Summary{Tier: tier, Bucket: buckets[tier]})
	}
	log.Debugf("Tier summary for scope %s: %d professionals", scope.Name, total(out).Professionals)
	return out
}

// Performance lists professionals by points, highest first. A positive limit
// keeps only that many.
func Performance(scope filter.Scope, limit int) []Professional {
	professionals := Professionals(scope)
	byID := make(map[string]Professional, len(professionals))

	top := dr.NewTopN[float64](limit, true)
	for _, p := range professionals {
		byID[p.ID] = p
		top.Insert(dr.Entry[float64]{Key: p.ID, Value: p.Points})
	}

	out := make([]Professional, 0, top.Len())
	for _, entry := range top.Values() {
		out = append(out, byID[entry.Key])
	}
	return out
}

const TotalLabel = "Total"

type ComparisonRow struct {
	Label       string `json:"label" yaml:"label"`
	Selected    Bucket `json:"selected" yaml:"selected"`
	SegmentWide Bucket `json:"segment_wide" yaml:"segment_wide"`
	Company     Bucket `json:"company" yaml:"company"`
}

// Compare puts the tier summaries of three scopes side by side, one row per
// tier and a final Total row.
func Compare(selected, segmentWide, company filter.Scope) []ComparisonRow {
	sel := Summarize(selected)
	seg := Summarize(segmentWide)
	com := Summarize(company)

	rows := make([]ComparisonRow, 0, len(All)+1)
	for i, tier := range All {
		rows = append(rows, ComparisonRow{
			Label:       tier.String(),
			Selected:    sel[i].Bucket,
			SegmentWide: seg[i].Bucket,
			Company:     com[i].Bucket,
		})
	}
	rows = append(rows, ComparisonRow{
		Label:       TotalLabel,
		Selected:    total(sel),
		SegmentWide: total(seg),
		Company:     total(com),
	})
	return rows
}

func total(summaries []Summary) Bucket {
	var b Bucket
	for _, s := range summaries {
		b.Professionals += s.Professionals
		b.Points += s.Points
	}
	return b
}
