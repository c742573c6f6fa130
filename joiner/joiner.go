package joiner

import (
	"time"

	"github.com/op/go-logging"
	"github.com/patricioibar/points-dashboard/sales"
)

var log = logging.MustGetLogger("log")

// Match flags registry membership and first purchases on a copy of table.
//
// The first historical purchase of a buyer is the minimum sale date among all
// of that buyer's records. A record is a first purchase when its buyer is in
// the registry and its own sale date equals that minimum exactly, so several
// records sharing the earliest timestamp are all flagged. A nil registry means
// nobody is new.
func Match(table *sales.Table, registry *RegistryCache) *sales.Table {
	if table.IsEmpty() {
		return sales.NewTable(nil)
	}
	if registry == nil {
		log.Warning("No registrant roster available, no record will be flagged as a first purchase")
	}

	firstPurchases := FirstPurchaseDates(table)

	records := make([]sales.SaleRecord, table.Len())
	copy(records, table.Records)

	flagged := 0
	for i := range records {
		rec := &records[i]
		rec.FirstPurchaseAt = firstPurchases[rec.BuyerIDClean]
		rec.InRegistry = registry.Contains(rec.BuyerIDClean)
		rec.FirstPurchase = rec.InRegistry && rec.SaleDate.Equal(rec.FirstPurchaseAt)
		if rec.FirstPurchase {
			flagged++
		}
	}

	log.Debugf("Registry matching flagged %d first purchases out of %d records (%d registrants)",
		flagged, len(records), registry.Len())
	return sales.NewTable(records)
}

// FirstPurchaseDates returns the earliest sale date per cleaned buyer id.
func FirstPurchaseDates(table *sales.Table) map[string]time.Time {
	first := make(map[string]time.Time)
	for i := 0; i < table.Len(); i++ {
		rec := table.At(i)
		current, seen := first[rec.BuyerIDClean]
		if !seen || rec.SaleDate.Before(current) {
			first[rec.BuyerIDClean] = rec.SaleDate
		}
	}
	return first
}
