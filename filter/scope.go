package filter

import (
	roaring "github.com/RoaringBitmap/roaring/roaring64"
	"github.com/patricioibar/points-dashboard/sales"
)

// Scope is a named view over the base table: the set of row positions that
// survived the filters applied so far. Bitmaps are never modified once a
// scope is built, so scopes can share them freely.
type Scope struct {
	Name  string
	table *sales.Table
	rows  *roaring.Bitmap
}

// Full returns a scope holding every row of table.
func Full(name string, table *sales.Table) Scope {
	rows := roaring.New()
	if n := table.Len(); n > 0 {
		rows.AddRange(0, uint64(n))
	}
	return Scope{Name: name, table: table, rows: rows}
}

func (s Scope) Named(name string) Scope {
	s.Name = name
	return s
}

func (s Scope) Table() *sales.Table {
	return s.table
}

func (s Scope) Len() int {
	if s.rows == nil {
		return 0
	}
	return int(s.rows.GetCardinality())
}

func (s Scope) IsEmpty() bool {
	return s.Len() == 0
}

// Contains reports whether the row at position i of the base table is in the
// scope.
func (s Scope) Contains(i int) bool {
	return s.rows != nil && i >= 0 && s.rows.Contains(uint64(i))
}

// Each visits the scope's records in base table order.
func (s Scope) Each(fn func(rec *sales.SaleRecord)) {
	if s.rows == nil {
		return
	}
	it := s.rows.Iterator()
	for it.HasNext() {
		fn(s.table.At(int(it.Next())))
	}
}

// Records copies the scope's records out in base table order.
func (s Scope) Records() []sales.SaleRecord {
	out := make([]sales.SaleRecord, 0, s.Len())
	s.Each(func(rec *sales.SaleRecord) {
		out = append(out, *rec)
	})
	return out
}

// Where keeps the rows for which keep returns true.
func (s Scope) Where(keep func(rec *sales.SaleRecord) bool) Scope {
	rows := roaring.New()
	if s.rows != nil {
		it := s.rows.Iterator()
		for it.HasNext() {
			i := it.Next()
			if keep(s.table.At(int(i))) {
				rows.Add(i)
			}
		}
	}
	return Scope{Name: s.Name, table: s.table, rows: rows}
}

// IsSubsetOf reports whether every row of s is also in other.
func (s Scope) IsSubsetOf(other Scope) bool {
	if s.IsEmpty() {
		return true
	}
	if other.rows == nil {
		return false
	}
	return s.rows.AndCardinality(other.rows) == s.rows.GetCardinality()
}

// Distinct returns the distinct values of a text field inside the scope, in
// first-seen order.
func (s Scope) Distinct(field func(rec *sales.SaleRecord) string) []string {
	seen := make(map[string]struct{})
	var out []string
	s.Each(func(rec *sales.SaleRecord) {
		v := field(rec)
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	})
	return out
}
