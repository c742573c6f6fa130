package aggfunctions

import "fmt"

func NewSumAggregation() *SumAggregation {
	return &SumAggregation{sum: 0}
}

type SumAggregation struct {
	sum float64
}

// Add accepts numbers and booleans; true adds one, so summing a flag counts
// the rows where it is set.
func (s *SumAggregation) Add(value interface{}) Aggregation {
	switch v := value.(type) {
	case float64:
		s.sum += v
	case int:
		s.sum += float64(v)
	case bool:
		if v {
			s.sum++
		}
	case nil:
	default:
		var parsed float64
		_, err := fmt.Sscanf(fmt.Sprintf("%v", value), "%f", &parsed)
		if err == nil {
			s.sum += parsed
		}
	}

	return s
}

func (s *SumAggregation) Result() interface{} {
	return s.sum
}
