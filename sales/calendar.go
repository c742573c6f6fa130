package sales

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const seasonLabelPrefix = "Season "

// MonthLabels maps a calendar month number to its display label.
var MonthLabels = map[int]string{
	1:  "Jan (01)",
	2:  "Feb (02)",
	3:  "Mar (03)",
	4:  "Apr (04)",
	5:  "May (05)",
	6:  "Jun (06)",
	7:  "Jul (07)",
	8:  "Aug (08)",
	9:  "Sep (09)",
	10: "Oct (10)",
	11: "Nov (11)",
	12: "Dec (12)",
}

// FiscalMonthOrder ranks month labels on the fiscal calendar, July first.
var FiscalMonthOrder = map[string]int{
	"Jul (07)": 1,
	"Aug (08)": 2,
	"Sep (09)": 3,
	"Oct (10)": 4,
	"Nov (11)": 5,
	"Dec (12)": 6,
	"Jan (01)": 7,
	"Feb (02)": 8,
	"Mar (03)": 9,
	"Apr (04)": 10,
	"May (05)": 11,
	"Jun (06)": 12,
}

// MonthLabel returns "" for months outside 1..12.
func MonthLabel(month int) string {
	return MonthLabels[month]
}

// FiscalRank returns the fiscal position of a month label and false when the
// label is not on the fiscal calendar.
func FiscalRank(monthLabel string) (int, bool) {
	rank, ok := FiscalMonthOrder[monthLabel]
	return rank, ok
}

// FiscalYear names the fiscal year by the calendar year in which it ends.
func FiscalYear(year int, month int) int {
	if month >= 7 {
		return year + 1
	}
	return year
}

func SeasonLabel(season int) string {
	return fmt.Sprintf("%s%d", seasonLabelPrefix, season)
}

// SeasonNumber parses a season label back into its number. Labels that do not
// follow the "Season N" form return false.
func SeasonNumber(label string) (int, bool) {
	if !strings.HasPrefix(label, seasonLabelPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(label, seasonLabelPrefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortSeasonLabels orders labels by season number ascending. Labels that do
// not parse go last, lexically.
func SortSeasonLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		ni, oki := SeasonNumber(labels[i])
		nj, okj := SeasonNumber(labels[j])
		switch {
		case oki && okj:
			if ni != nj {
				return ni < nj
			}
			return labels[i] < labels[j]
		case oki:
			return true
		case okj:
			return false
		}
		return labels[i] < labels[j]
	})
}

// SortFiscalMonths orders month labels on the fiscal calendar and drops the
// ones that are not on it.
func SortFiscalMonths(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := FiscalMonthOrder[l]; ok {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return FiscalMonthOrder[out[i]] < FiscalMonthOrder[out[j]]
	})
	return out
}
