package profile

import "strings"

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// sortColumns is the allow-list of sortable columns. Caller-supplied sort keys
// never reach SQL text directly; they are mapped through this table.
var sortColumns = map[string]string{
	"company_name": "company_name",
	"city":         "city",
	"state":        "state",
	"country":      "country",
	"industry":     "industry",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

// SearchFilter carries the optional substring filters and pagination
// parameters for a company search.
type SearchFilter struct {
	Search   *string
	Industry *string
	City     *string
	State    *string
	Country  *string

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps pagination and falls back to defaults for invalid sort
// parameters instead of erroring.
func (f *SearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "created_at"
	}
	if strings.ToUpper(f.SortOrder) == "ASC" {
		f.SortOrder = "ASC"
	} else {
		f.SortOrder = "DESC"
	}
}

// SortColumn returns the SQL column for the validated SortBy value.
func (f *SearchFilter) SortColumn() string {
	if col, ok := sortColumns[f.SortBy]; ok {
		return col
	}
	return "created_at"
}

// Offset returns the row offset for the current page.
func (f *SearchFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Meta describes the pagination state of a search result page.
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

func NewMeta(page, limit int, total int64) Meta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Meta{
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
