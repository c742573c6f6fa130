// Package tiers classifies professionals by the points they accumulate within
// a scope.
package tiers

import (
	"fmt"
	"strings"
)

type Tier int

const (
	Unclassified Tier = iota
	Pro
	Topaz
	Ruby
	Emerald
	Diamond
)

var tierNames = map[Tier]string{
	Unclassified: "Unclassified",
	Pro:          "Pro",
	Topaz:        "Topaz",
	Ruby:         "Ruby",
	Emerald:      "Emerald",
	Diamond:      "Diamond",
}

// All lists the tiers from highest to lowest.
var All = []Tier{Diamond, Emerald, Ruby, Topaz, Pro, Unclassified}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	for tier, name := range tierNames {
		if strings.EqualFold(name, string(text)) {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", string(text))
}

// Threshold is the minimum cumulative points that earns a tier.
type Threshold struct {
	Tier Tier
	Min  float64
}

// Thresholds are evaluated in order and the first one reached wins, so they
// must stay sorted by Min descending.
var Thresholds = []Threshold{
	{Tier: Diamond, Min: 5_000_000},
	{Tier: Emerald, Min: 2_000_000},
	{Tier: Ruby, Min: 500_000},
	{Tier: Topaz, Min: 150_000},
	{Tier: Pro, Min: 1},
}

func Classify(points float64) Tier {
	return ClassifyWith(Thresholds, points)
}

// ClassifyWith returns the tier of the first threshold reached, or
// Unclassified when none is.
func ClassifyWith(thresholds []Threshold, points float64) Tier {
	for _, th := range thresholds {
		if points >= th.Min {
			return th.Tier
		}
	}
	return Unclassified
}
