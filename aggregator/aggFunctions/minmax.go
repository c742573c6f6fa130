package aggfunctions

import "time"

func NewMinAggregation() *ExtremeAggregation {
	return &ExtremeAggregation{keepLower: true}
}

func NewMaxAggregation() *ExtremeAggregation {
	return &ExtremeAggregation{keepLower: false}
}

// ExtremeAggregation keeps the earliest or latest time seen. Zero times are
// ignored; the result is the zero time when nothing was added.
type ExtremeAggregation struct {
	value     time.Time
	set       bool
	keepLower bool
}

func (e *ExtremeAggregation) Add(value interface{}) Aggregation {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return e
	}
	if !e.set || (e.keepLower && t.Before(e.value)) || (!e.keepLower && t.After(e.value)) {
		e.value = t
		e.set = true
	}
	return e
}

func (e *ExtremeAggregation) Result() interface{} {
	return e.value
}

func NewFirstAggregation() *FirstAggregation {
	return &FirstAggregation{}
}

// FirstAggregation keeps the first value added.
type FirstAggregation struct {
	value interface{}
	set   bool
}

func (f *FirstAggregation) Add(value interface{}) Aggregation {
	if !f.set {
		f.value = value
		f.set = true
	}
	return f
}

func (f *FirstAggregation) Result() interface{} {
	return f.value
}
