package aggfunctions

func NewAggregation(funcName string) Aggregation {
	switch funcName {
	case "sum":
		return NewSumAggregation()
	case "count":
		return NewCountAggregation()
	case "count_distinct":
		return NewCountDistinctAggregation()
	case "min":
		return NewMinAggregation()
	case "max":
		return NewMaxAggregation()
	case "first":
		return NewFirstAggregation()
	}
	return nil
}
