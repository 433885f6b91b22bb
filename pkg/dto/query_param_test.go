package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestFilterOffset(t *testing.T) {
	testCases := []struct {
		name      string
		filter    Filter
		offset    int
		overflows bool
	}{
		{name: "unpaged", filter: Filter{}, offset: 0},
		{name: "page only", filter: Filter{Page: intPtr(3)}, offset: 0},
		{name: "first page", filter: Filter{Page: intPtr(0), Size: intPtr(10)}, offset: 0},
		{name: "third page", filter: Filter{Page: intPtr(2), Size: intPtr(5)}, offset: 10},
		{name: "largest exact offset", filter: Filter{Page: intPtr(math.MaxInt / 4), Size: intPtr(4)}, offset: (math.MaxInt / 4) * 4},
		{name: "wraps to zero", filter: Filter{Page: intPtr(1 << 62), Size: intPtr(4)}, overflows: true},
		{name: "wraps negative", filter: Filter{Page: intPtr(1 << 62), Size: intPtr(3)}, overflows: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overflows, tc.filter.OffsetOverflows())
			assert.Equal(t, tc.offset, tc.filter.Offset())
		})
	}
}
