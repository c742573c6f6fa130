package joiner

import (
	"fmt"

	ic "github.com/patricioibar/points-dashboard/innercommunication"
	"github.com/patricioibar/points-dashboard/normalizer"
)

// RegistryCache is the set of cleaned identifiers from the new-registrant
// roster. Duplicates collapse; blank identifiers are not kept.
type RegistryCache struct {
	Column string
	ids    map[string]struct{}
}

// NewRegistryCache builds the roster set from the registrant sheet. It fails
// when the sheet is absent or lacks the identifier column.
func NewRegistryCache(batch *ic.RowsBatch, column string) (*RegistryCache, error) {
	if batch == nil {
		return nil, fmt.Errorf("registrant table is missing")
	}
	idx := batch.ColumnIndex(column)
	if idx == -1 {
		return nil, fmt.Errorf("registrant column %q not found in %v", column, batch.ColumnNames)
	}

	rc := &RegistryCache{
		Column: column,
		ids:    make(map[string]struct{}, batch.Len()),
	}
	for i := range batch.Rows {
		rc.Add(batch.Value(i, idx))
	}
	return rc, nil
}

func (rc *RegistryCache) Add(rawID interface{}) {
	id := normalizer.CleanIdentifier(rawID)
	if id == "" {
		return
	}
	rc.ids[id] = struct{}{}
}

func (rc *RegistryCache) Contains(cleanID string) bool {
	if rc == nil || cleanID == "" {
		return false
	}
	_, ok := rc.ids[cleanID]
	return ok
}

func (rc *RegistryCache) Len() int {
	if rc == nil {
		return 0
	}
	return len(rc.ids)
}
