package normalizer

import (
	"strings"

	"github.com/op/go-logging"
	ic "github.com/patricioibar/points-dashboard/innercommunication"
	"github.com/patricioibar/points-dashboard/sales"
)

var log = logging.MustGetLogger("log")

// Stats counts what the normalizer recovered from. Parse failures are never
// reported per row.
type Stats struct {
	InputRows       int      `json:"input_rows"`
	DroppedRows     int      `json:"dropped_rows"`
	ZeroFilledCells int      `json:"zero_filled_cells"`
	InvalidSeasons  int      `json:"invalid_seasons"`
	MissingColumns  []string `json:"missing_columns,omitempty"`
}

type columnIndexes struct {
	saleDate, points, totalValue, orderID, buyerID int
	professionalID, store, segment, season         int
}

// Normalize turns the raw sales sheet into typed records. Rows without a
// parseable sale date are dropped; every other failure falls back to a zero
// value. Row order is preserved.
func Normalize(batch *ic.RowsBatch, cols Columns) (*sales.Table, Stats) {
	cols = cols.WithDefaults()
	stats := Stats{InputRows: batch.Len()}
	if batch.IsEmpty() {
		return sales.NewTable(nil), stats
	}

	idx := columnIndexes{
		saleDate:       batch.ColumnIndex(cols.SaleDate),
		points:         batch.ColumnIndex(cols.Points),
		totalValue:     batch.ColumnIndex(cols.TotalValue),
		orderID:        batch.ColumnIndex(cols.OrderID),
		buyerID:        batch.ColumnIndex(cols.BuyerID),
		professionalID: batch.ColumnIndex(cols.ProfessionalID),
		store:          batch.ColumnIndex(cols.Store),
		segment:        batch.ColumnIndex(cols.Segment),
		season:         batch.ColumnIndex(cols.Season),
	}
	stats.MissingColumns = missingColumns(batch, cols)
	if len(stats.MissingColumns) > 0 {
		log.Warningf("Sales sheet is missing columns: %s", strings.Join(stats.MissingColumns, ", "))
	}
	if idx.saleDate == -1 {
		stats.DroppedRows = batch.Len()
		return sales.NewTable(nil), stats
	}

	records := make([]sales.SaleRecord, 0, batch.Len())
	for i := range batch.Rows {
		saleDate, ok := ParseDate(batch.Value(i, idx.saleDate))
		if !ok {
			stats.DroppedRows++
			continue
		}

		rec := sales.SaleRecord{
			SaleDate:       saleDate,
			OrderID:        textCell(batch, i, idx.orderID),
			BuyerID:        textCell(batch, i, idx.buyerID),
			ProfessionalID: textCell(batch, i, idx.professionalID),
			Store:          textCell(batch, i, idx.store),
			Segment:        textCell(batch, i, idx.segment),
			Year:           saleDate.Year(),
			Month:          int(saleDate.Month()),
		}
		rec.Points = numberCell(batch, i, idx.points, &stats)
		rec.TotalValue = numberCell(batch, i, idx.totalValue, &stats)
		rec.FiscalYear = sales.FiscalYear(rec.Year, rec.Month)
		rec.MonthLabel = sales.MonthLabel(rec.Month)
		rec.BuyerIDClean = CleanIdentifier(rec.BuyerID)

		season, ok := ParseSeason(batch.Value(i, idx.season))
		if !ok {
			stats.InvalidSeasons++
		}
		rec.Season = season
		rec.SeasonLabel = sales.SeasonLabel(season)

		records = append(records, rec)
	}

	log.Debugf("Normalized %d rows, dropped %d, zero-filled %d numeric cells",
		len(records), stats.DroppedRows, stats.ZeroFilledCells)
	return sales.NewTable(records), stats
}

func missingColumns(batch *ic.RowsBatch, cols Columns) []string {
	var missing []string
	for _, name := range []string{
		cols.SaleDate, cols.Points, cols.TotalValue, cols.OrderID, cols.BuyerID,
		cols.ProfessionalID, cols.Store, cols.Segment, cols.Season,
	} {
		if !batch.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func textCell(batch *ic.RowsBatch, row, col int) string {
	if col == -1 {
		return ""
	}
	return strings.TrimSpace(ic.ToString(batch.Value(row, col)))
}

func numberCell(batch *ic.RowsBatch, row, col int, stats *Stats) float64 {
	if col == -1 {
		return 0
	}
	v, ok := ParseNumber(batch.Value(row, col))
	if !ok {
		stats.ZeroFilledCells++
	}
	return v
}
