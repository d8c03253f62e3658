package query

import "math"

// Page selects one 1-based page of Size records.
type Page struct {
	Number int
	Size   int
}

// Offset returns how many records precede the page. It saturates at
// math.MaxInt when the product does not fit, so far pages stay past the end.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// TotalPages returns ceil(total/Size), or 0 when there are no records.
func (p Page) TotalPages(total int64) int64 {
	if total <= 0 || p.Size <= 0 {
		return 0
	}
	size := int64(p.Size)
	return (total-1)/size + 1
}
