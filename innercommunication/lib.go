package innercommunication

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RowsBatch is the raw tabular form handed over by the loader: a header and
// untyped rows. Rows shorter than the header read as nil in the missing cells.
type RowsBatch struct {
	ColumnNames []string        `json:"column_names,omitempty"`
	Rows        [][]interface{} `json:"rows,omitempty"`
}

func NewRowsBatch(columnNames []string, rows [][]interface{}) *RowsBatch {
	return &RowsBatch{
		ColumnNames: columnNames,
		Rows:        rows,
	}
}

func RowsBatchFromString(data string) (*RowsBatch, error) {
	var rb RowsBatch
	if err := json.Unmarshal([]byte(data), &rb); err != nil {
		return nil, fmt.Errorf("failed to unmarshal RowsBatch: %v", err)
	}
	return &rb, nil
}

func (rb *RowsBatch) IsEmpty() bool {
	return rb == nil || len(rb.Rows) == 0
}

func (rb *RowsBatch) Len() int {
	if rb == nil {
		return 0
	}
	return len(rb.Rows)
}

// ColumnIndex returns the position of columnName in the header, or -1.
// Header cells are compared after trimming surrounding spaces.
func (rb *RowsBatch) ColumnIndex(columnName string) int {
	if rb == nil {
		return -1
	}
	return FindColumnIndex(columnName, rb.ColumnNames)
}

func (rb *RowsBatch) HasColumn(columnName string) bool {
	return rb.ColumnIndex(columnName) != -1
}

// Value returns the cell at (row, col). Out of range reads are nil.
func (rb *RowsBatch) Value(row int, col int) interface{} {
	if rb == nil || row < 0 || row >= len(rb.Rows) || col < 0 {
		return nil
	}
	if col >= len(rb.Rows[row]) {
		return nil
	}
	return rb.Rows[row][col]
}

func FindColumnIndex(columnName string, columns []string) int {
	for i, col := range columns {
		if strings.TrimSpace(col) == columnName {
			return i
		}
	}
	return -1
}

// ToString renders a raw cell the way it would read in the sheet. Floats
// holding whole numbers lose the trailing ".0" so identifiers stored as
// numbers keep their digits.
func ToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
