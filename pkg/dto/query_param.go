package dto

import "math"

// Filter selects a page of the catalog. Paging applies only when both Page
// (zero-based) and Size are set.
type Filter struct {
	Page *int `query:"page"`
	Size *int `query:"size"`
}

func (f Filter) IsPaged() bool {
	return f.Page != nil && f.Size != nil
}

func (f Filter) Limit() int {
	if f.Size == nil {
		return 0
	}
	return *f.Size
}

// OffsetOverflows reports whether Page*Size does not fit in an int. Such a
// page lies past any catalog and must be served as empty.
func (f Filter) OffsetOverflows() bool {
	if !f.IsPaged() || *f.Page <= 0 || *f.Size <= 0 {
		return false
	}
	return *f.Page > math.MaxInt / *f.Size
}

func (f Filter) Offset() int {
	if !f.IsPaged() || f.OffsetOverflows() {
		return 0
	}
	return *f.Page * *f.Size
}
