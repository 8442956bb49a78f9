package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	filter := SearchFilter{}
	filter.Normalize()

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, "created_at", filter.SortBy)
	assert.Equal(t, "DESC", filter.SortOrder)
}

func TestNormalizeClampsLimit(t *testing.T) {
	filter := SearchFilter{Page: -3, Limit: 500}
	filter.Normalize()

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestNormalizeRejectsUnknownSortColumn(t *testing.T) {
	filter := SearchFilter{SortBy: "password_hash; DROP TABLE users", SortOrder: "asc"}
	filter.Normalize()

	assert.Equal(t, "created_at", filter.SortBy)
	assert.Equal(t, "created_at", filter.SortColumn())
	assert.Equal(t, "ASC", filter.SortOrder)
}

func TestNormalizeKeepsAllowedSortColumn(t *testing.T) {
	filter := SearchFilter{SortBy: "company_name", SortOrder: "desc"}
	filter.Normalize()

	assert.Equal(t, "company_name", filter.SortColumn())
	assert.Equal(t, "DESC", filter.SortOrder)
}

func TestOffset(t *testing.T) {
	filter := SearchFilter{Page: 3, Limit: 10}
	filter.Normalize()

	assert.Equal(t, 20, filter.Offset())
}

func TestNewMetaPaginationMath(t *testing.T) {
	// 25 rows at limit 10 span 3 pages
	meta := NewMeta(1, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.TotalItems)
	assert.True(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)

	meta = NewMeta(3, 10, 25)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)

	meta = NewMeta(4, 10, 25)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)
}

func TestNewMetaEmptyResult(t *testing.T) {
	meta := NewMeta(1, 10, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}
