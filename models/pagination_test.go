package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewPropertyPagination(t *testing.T) {
	p := NewPropertyPagination(2, 10, 25)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalProperties)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	// Past the last page there is nothing further.
	p = NewPropertyPagination(5, 10, 25)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPropertyPagination(1, 10, 5)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewUserPagination(t *testing.T) {
	p := NewUserPagination(1, 10, 21)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(21), p.TotalUsers)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}
