package joiner_test

import (
	"testing"
	"time"

	ic "github.com/patricioibar/points-dashboard/innercommunication"
	"github.com/patricioibar/points-dashboard/joiner"
	"github.com/patricioibar/points-dashboard/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(buyer string, when time.Time, points float64) sales.SaleRecord {
	return sales.SaleRecord{BuyerID: buyer, BuyerIDClean: buyer, SaleDate: when, Points: points}
}

func roster(t *testing.T, ids ...interface{}) *joiner.RegistryCache {
	rows := make([][]interface{}, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []interface{}{id})
	}
	rc, err := joiner.NewRegistryCache(ic.NewRowsBatch([]string{"CPF"}, rows), "CPF")
	require.NoError(t, err)
	return rc
}

func TestMatchFlagsOnlyEarliestPurchaseOfRegisteredBuyer(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{
		record("123", date(2024, 3, 5), 200),
		record("123", date(2024, 1, 10), 100),
		record("999", date(2024, 1, 1), 50),
	})

	matched := joiner.Match(table, roster(t, "123"))

	require.Equal(t, 3, matched.Len())
	assert.False(t, matched.At(0).FirstPurchase)
	assert.True(t, matched.At(1).FirstPurchase)
	assert.False(t, matched.At(2).FirstPurchase, "buyer not in the roster is never new")
	assert.True(t, matched.At(0).InRegistry)
	assert.False(t, matched.At(2).InRegistry)
	assert.True(t, matched.At(0).FirstPurchaseAt.Equal(date(2024, 1, 10)))
	assert.True(t, matched.At(2).FirstPurchaseAt.Equal(date(2024, 1, 1)))

	total := 0.0
	for _, r := range matched.Records {
		if r.BuyerIDClean == "123" {
			total += r.Points
		}
	}
	assert.Equal(t, 300.0, total)
}

func TestMatchFlagsEveryRecordSharingTheEarliestDate(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{
		record("555", date(2024, 2, 1), 10),
		record("555", date(2024, 2, 1), 20),
		record("555", date(2024, 2, 9), 30),
	})

	matched := joiner.Match(table, roster(t, "555"))

	assert.True(t, matched.At(0).FirstPurchase)
	assert.True(t, matched.At(1).FirstPurchase)
	assert.False(t, matched.At(2).FirstPurchase)
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{record("1", date(2024, 1, 1), 1)})
	_ = joiner.Match(table, roster(t, "1"))
	assert.False(t, table.At(0).FirstPurchase)
	assert.True(t, table.At(0).FirstPurchaseAt.IsZero())
}

func TestMatchWithoutRegistryMarksNobody(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{
		record("1", date(2024, 1, 1), 1),
		record("2", date(2024, 1, 2), 1),
	})
	matched := joiner.Match(table, nil)
	for _, r := range matched.Records {
		assert.False(t, r.FirstPurchase)
		assert.False(t, r.InRegistry)
		assert.False(t, r.FirstPurchaseAt.IsZero())
	}
}

func TestMatchIsIdempotent(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{
		record("7", date(2024, 5, 1), 1),
		record("7", date(2024, 4, 1), 1),
		record("8", date(2024, 6, 1), 1),
	})
	rc := roster(t, "7", "8")
	once := joiner.Match(table, rc)
	twice := joiner.Match(once, rc)
	assert.Equal(t, once.Records, twice.Records)
}

func TestFirstPurchaseDatesIsMinimumPerBuyer(t *testing.T) {
	table := sales.NewTable([]sales.SaleRecord{
		record("a", date(2024, 5, 1), 1),
		record("b", date(2023, 1, 1), 1),
		record("a", date(2024, 2, 1), 1),
		record("a", date(2024, 9, 1), 1),
	})
	first := joiner.FirstPurchaseDates(table)
	assert.True(t, first["a"].Equal(date(2024, 2, 1)))
	assert.True(t, first["b"].Equal(date(2023, 1, 1)))
}

func TestRegistryCache(t *testing.T) {
	rc := roster(t, "123.456.789-01", "12345678901", 98765.0, nil, "")
	assert.Equal(t, 2, rc.Len())
	assert.True(t, rc.Contains("12345678901"))
	assert.True(t, rc.Contains("98765"))
	assert.False(t, rc.Contains(""))

	_, err := joiner.NewRegistryCache(ic.NewRowsBatch([]string{"Nome"}, nil), "CPF")
	assert.Error(t, err)

	_, err = joiner.NewRegistryCache(nil, "CPF")
	assert.Error(t, err)

	var missing *joiner.RegistryCache
	assert.False(t, missing.Contains("1"))
	assert.Equal(t, 0, missing.Len())
}
