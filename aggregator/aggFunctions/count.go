package aggfunctions

import (
	ic "github.com/patricioibar/points-dashboard/innercommunication"
)

func NewCountAggregation() *CountAggregation {
	return &CountAggregation{count: 0}
}

// CountAggregation counts rows regardless of the value.
type CountAggregation struct {
	count int
}

func (c *CountAggregation) Add(value interface{}) Aggregation {
	c.count++
	return c
}

func (c *CountAggregation) Result() interface{} {
	return c.count
}

func NewCountDistinctAggregation() *CountDistinctAggregation {
	return &CountDistinctAggregation{seen: make(map[string]struct{})}
}

// CountDistinctAggregation counts distinct non-blank values.
type CountDistinctAggregation struct {
	seen map[string]struct{}
}

func (c *CountDistinctAggregation) Add(value interface{}) Aggregation {
	key := ic.ToString(value)
	if key == "" {
		return c
	}
	c.seen[key] = struct{}{}
	return c
}

func (c *CountDistinctAggregation) Result() interface{} {
	return len(c.seen)
}
