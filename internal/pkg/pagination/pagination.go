// internal/pkg/pagination/pagination.go
package pagination

// DefaultPageSize is the number of rows returned per list page.
const DefaultPageSize = 20

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Normalize clamps a page number to a sane value.
func Normalize(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Offset returns the row offset for a page.
func Offset(page int) int {
	return (Normalize(page) - 1) * DefaultPageSize
}

// Build calculates pagination info for a page of a result set.
func Build(page int, total int64) Pagination {
	page = Normalize(page)
	totalPages := int((total + int64(DefaultPageSize) - 1) / int64(DefaultPageSize))

	return Pagination{
		Page:       page,
		Limit:      DefaultPageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
