package aggfunctions

// AggConfig names a record column and the function folded over it.
type AggConfig struct {
	Col  string `json:"col" mapstructure:"col"`
	Func string `json:"func" mapstructure:"func"`
}

type Aggregation interface {
	Add(value interface{}) Aggregation
	Result() interface{}
}
