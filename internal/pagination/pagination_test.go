package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func TestSliceFourteenItems(t *testing.T) {
	items := seq(14)

	p1 := Slice(items, 10, 1)
	assert.Len(t, p1.Items, 10)
	assert.Equal(t, 2, p1.NumPages)
	assert.True(t, p1.HasNext())
	assert.False(t, p1.HasPrevious())

	p2 := Slice(items, 10, 2)
	assert.Equal(t, []int{11, 12, 13, 14}, p2.Items)
	assert.False(t, p2.HasNext())
	assert.True(t, p2.HasPrevious())
	assert.Equal(t, 1, p2.PreviousPageNumber())
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		total  int64
		number int
		want   int
	}{
		{"zero", 14, 0, 2},
		{"negative", 14, -3, 2},
		{"past end", 14, 99, 2},
		{"exact last", 20, 2, 2},
		{"empty sequence", 0, 5, 1},
		{"empty sequence negative", 0, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Paginate(tt.total, 10, tt.number)
			assert.Equal(t, tt.want, w.Number)
		})
	}
}

func TestEmptySequenceHasOnePage(t *testing.T) {
	p := Slice([]string{}, 10, 1)
	assert.Equal(t, 1, p.NumPages)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
	assert.False(t, p.HasOtherPages())
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 3, ParseNumber("3"))
	assert.Equal(t, 1, ParseNumber(""))
	assert.Equal(t, 1, ParseNumber("last"))
	// 负数原样返回，由 Paginate 收敛到最后一页
	assert.Equal(t, -2, ParseNumber("-2"))
}

func TestPageRange(t *testing.T) {
	p := Slice(seq(25), 10, 1)
	assert.Equal(t, []int{1, 2, 3}, p.PageRange())
}

func TestSliceNonPositivePageIsLast(t *testing.T) {
	p := Slice(seq(14), 10, 0)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, []int{11, 12, 13, 14}, p.Items)
}
