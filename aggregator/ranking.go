package aggregator

import (
	"sort"

	a "github.com/patricioibar/points-dashboard/aggregator/aggFunctions"
	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/sales"
)

type StoreRank struct {
	Store  string  `json:"store" yaml:"store"`
	Points float64 `json:"points" yaml:"points"`
	Rank   int     `json:"rank" yaml:"rank"`
}

// RankStores ranks stores by total points, highest first. Tied stores share
// the lowest rank of the tie and the next rank skips accordingly (1, 1, 3).
// Records without a store are not ranked.
func RankStores(period filter.Scope) []StoreRank {
	rows := GroupBy(period, []string{sales.ColStore}, []a.AggConfig{{Col: sales.ColPoints, Func: "sum"}})

	ranking := make([]StoreRank, 0, len(rows))
	for _, row := range rows {
		if row.Key[0] == "" {
			continue
		}
		ranking = append(ranking, StoreRank{Store: row.Key[0], Points: row.Float(0)})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Points != ranking[j].Points {
			return ranking[i].Points > ranking[j].Points
		}
		return ranking[i].Store < ranking[j].Store
	})

	for i := range ranking {
		if i > 0 && ranking[i].Points == ranking[i-1].Points {
			ranking[i].Rank = ranking[i-1].Rank
			continue
		}
		ranking[i].Rank = i + 1
	}
	return ranking
}

// SelectedStoreRank returns the best rank among the selected stores. An empty
// selection means every store. It reports false when none of the selected
// stores is ranked.
func SelectedStoreRank(ranking []StoreRank, selected []string) (int, bool) {
	wanted := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		wanted[s] = struct{}{}
	}

	best := 0
	for _, r := range ranking {
		if len(selected) > 0 {
			if _, ok := wanted[r.Store]; !ok {
				continue
			}
		}
		if best == 0 || r.Rank < best {
			best = r.Rank
		}
	}
	if best <= 0 {
		return 0, false
	}
	return best, true
}
