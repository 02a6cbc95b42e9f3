package validation

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePagination coerces page to >=1 and clamps pageSize to
// [1, MaxPageSize].
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Skip returns the number of documents to skip for the given page.
func Skip(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
