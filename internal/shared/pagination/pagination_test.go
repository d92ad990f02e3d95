package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_ThirteenItems(t *testing.T) {
	first := Resolve("", 13, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, 0, first.Offset())
	assert.Equal(t, 10, first.Limit())
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second := Resolve("2", 13, 10)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 10, second.Offset())
	assert.False(t, second.HasNext())
	assert.True(t, second.HasPrevious())
	assert.Equal(t, 1, second.PreviousNumber())
}

func TestResolve_Clamps(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-4", 1},
		{"1.5", 1},
		{" 2 ", 2},
		{"3", 3},
		{"4", 3},
		{"999999", 3},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.raw, 25, 10).Number)
		})
	}
}

func TestResolve_EmptyListingHasOnePage(t *testing.T) {
	w := Resolve("5", 0, 10)
	assert.Equal(t, 1, w.Number)
	assert.Equal(t, 1, w.TotalPages)
	assert.Equal(t, 0, w.Offset())
	assert.False(t, w.HasOtherPages())
	assert.Equal(t, []int{1}, w.PageRange())
}

func TestResolve_ExactMultiple(t *testing.T) {
	w := Resolve("3", 20, 10)
	assert.Equal(t, 2, w.Number)
	assert.Equal(t, 2, w.TotalPages)
}

func TestResolve_DefaultsPerPage(t *testing.T) {
	w := Resolve("1", 11, 0)
	assert.Equal(t, DefaultPerPage, w.PerPage)
	assert.Equal(t, 2, w.TotalPages)
}

func TestNewPage(t *testing.T) {
	p := NewPage[string](nil, Resolve("1", 0, 10))
	assert.NotNil(t, p.Items)
	assert.Equal(t, 0, p.Len())

	p = NewPage([]string{"a", "b", "c"}, Resolve("2", 13, 10))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, []int{1, 2}, p.PageRange())
	assert.Equal(t, 2, p.NextNumber())
}
