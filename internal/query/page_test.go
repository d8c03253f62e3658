package query

import (
	"math"
	"testing"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page Page
		want int
	}{
		{Page{Number: 1, Size: 10}, 0},
		{Page{Number: 2, Size: 10}, 10},
		{Page{Number: 5, Size: 3}, 12},
		{Page{Number: 0, Size: 10}, 0},
		{Page{Number: 1 << 60, Size: 16}, math.MaxInt},
		{Page{Number: math.MaxInt, Size: math.MaxInt}, math.MaxInt},
		{Page{Number: 2, Size: math.MaxInt}, math.MaxInt},
	}

	for _, tt := range tests {
		if got := tt.page.Offset(); got != tt.want {
			t.Errorf("%+v.Offset() = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestPageTotalPages(t *testing.T) {
	tests := []struct {
		size  int
		total int64
		want  int64
	}{
		{10, 0, 0},
		{10, 1, 1},
		{10, 10, 1},
		{10, 11, 2},
		{3, 10, 4},
		{1, 7, 7},
		{0, 7, 0},
		{math.MaxInt, 7, 1},
	}

	for _, tt := range tests {
		p := Page{Number: 1, Size: tt.size}
		if got := p.TotalPages(tt.total); got != tt.want {
			t.Errorf("TotalPages(%d) with size %d = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
