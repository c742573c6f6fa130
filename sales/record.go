// Package sales holds the enriched sale record table shared by every stage
// of the dashboard pipeline.
package sales

import (
	"time"
)

// Canonical column names. Aggregation configs refer to record fields by
// these names.
const (
	ColSaleDate        = "sale_date"
	ColPoints          = "points"
	ColTotalValue      = "total_value"
	ColOrderID         = "order_id"
	ColBuyerID         = "buyer_id"
	ColBuyerIDClean    = "buyer_id_clean"
	ColProfessionalID  = "professional_id"
	ColStore           = "store"
	ColSegment         = "segment"
	ColSeason          = "season"
	ColSeasonLabel     = "season_label"
	ColYear            = "year"
	ColFiscalYear      = "fiscal_year"
	ColMonth           = "month"
	ColMonthLabel      = "month_label"
	ColInRegistry      = "in_registry"
	ColFirstPurchaseAt = "first_purchase_at"
	ColFirstPurchase   = "first_purchase"
)

// SaleRecord is one transaction line after normalization and registration
// matching. Records are never mutated once the base table is built.
type SaleRecord struct {
	SaleDate       time.Time `json:"sale_date"`
	Points         float64   `json:"points"`
	TotalValue     float64   `json:"total_value"`
	OrderID        string    `json:"order_id"`
	BuyerID        string    `json:"buyer_id"`
	BuyerIDClean   string    `json:"buyer_id_clean"`
	ProfessionalID string    `json:"professional_id"`
	Store          string    `json:"store"`
	Segment        string    `json:"segment"`
	Season         int       `json:"season"`
	SeasonLabel    string    `json:"season_label"`
	Year           int       `json:"year"`
	FiscalYear     int       `json:"fiscal_year"`
	Month          int       `json:"month"`
	MonthLabel     string    `json:"month_label,omitempty"`

	InRegistry      bool      `json:"in_registry"`
	FirstPurchaseAt time.Time `json:"first_purchase_at"`
	FirstPurchase   bool      `json:"first_purchase"`
}

// Field returns the value stored under a canonical column name, or nil if the
// column is unknown.
func (r *SaleRecord) Field(col string) interface{} {
	switch col {
	case ColSaleDate:
		return r.SaleDate
	case ColPoints:
		return r.Points
	case ColTotalValue:
		return r.TotalValue
	case ColOrderID:
		return r.OrderID
	case ColBuyerID:
		return r.BuyerID
	case ColBuyerIDClean:
		return r.BuyerIDClean
	case ColProfessionalID:
		return r.ProfessionalID
	case ColStore:
		return r.Store
	case ColSegment:
		return r.Segment
	case ColSeason:
		return r.Season
	case ColSeasonLabel:
		return r.SeasonLabel
	case ColYear:
		return r.Year
	case ColFiscalYear:
		return r.FiscalYear
	case ColMonth:
		return r.Month
	case ColMonthLabel:
		return r.MonthLabel
	case ColInRegistry:
		return r.InRegistry
	case ColFirstPurchaseAt:
		return r.FirstPurchaseAt
	case ColFirstPurchase:
		return r.FirstPurchase
	}
	return nil
}

// Table is the base record set. It is shared read-only between every scope
// derived from it.
type Table struct {
	Records []SaleRecord
}

func NewTable(records []SaleRecord) *Table {
	if records == nil {
		records = make([]SaleRecord, 0)
	}
	return &Table{Records: records}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// At returns a pointer into the table. Callers must not modify the record.
func (t *Table) At(i int) *SaleRecord {
	return &t.Records[i]
}
