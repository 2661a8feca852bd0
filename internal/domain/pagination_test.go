package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationValidate(t *testing.T) {
	tests := []struct {
		name string
		in   PaginationParams
		want PaginationParams
	}{
		{name: "defaults", in: PaginationParams{}, want: PaginationParams{Page: 1, PageSize: 20}},
		{name: "capped", in: PaginationParams{Page: 3, PageSize: 500}, want: PaginationParams{Page: 3, PageSize: 100}},
		{name: "kept", in: PaginationParams{Page: 2, PageSize: 10}, want: PaginationParams{Page: 2, PageSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse[Comment](nil, 2, 20, 41)

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
	assert.Equal(t, 20, (&PaginationParams{Page: 2, PageSize: 20}).Offset())
}
