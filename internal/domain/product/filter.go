package product

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const filterFPR = 0.001

// ExistenceFilter answers "might this product id exist?" without a catalog
// lookup. A negative answer is definitive, so handlers can reject unknown
// ids before touching the database; a positive answer still requires the
// real lookup. The filter is read-only after construction and therefore
// safe for concurrent use.
type ExistenceFilter struct {
	filter *bloom.BloomFilter
}

// NewExistenceFilter seeds a filter from the given catalog ids.
func NewExistenceFilter(ids []string) *ExistenceFilter {
	n := uint(len(ids))
	if n == 0 {
		n = 1
	}
	f := bloom.NewWithEstimates(n, filterFPR)
	for _, id := range ids {
		f.AddString(id)
	}
	return &ExistenceFilter{filter: f}
}

// MightContain reports whether the id could be in the catalog.
func (f *ExistenceFilter) MightContain(id string) bool {
	if f == nil {
		return true
	}
	return f.filter.TestString(id)
}
