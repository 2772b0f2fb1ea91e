// internal/selection/index.go
package selection

import (
	"fmt"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/util"
)

// Index maps the 1-based serial numbers shown in one listing to transaction
// IDs. It is built per listing and must not outlive it.
type Index struct {
	ids []int64 // ids[serial-1]
}

// Build numbers transactions in the order given, starting at 1.
func Build(transactions []domain.Transaction) *Index {
	ids := make([]int64, len(transactions))
	for i, t := range transactions {
		ids[i] = t.ID
	}
	return &Index{ids: ids}
}

// Resolve returns the ID shown at serial, or util.ErrInvalidSelection when
// serial is outside 1..Len().
func (x *Index) Resolve(serial int) (int64, error) {
	if x == nil || serial < 1 || serial > len(x.ids) {
		return 0, fmt.Errorf("%w: %d", util.ErrInvalidSelection, serial)
	}
	return x.ids[serial-1], nil
}

// Len is the highest valid serial.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.ids)
}
