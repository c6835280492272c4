package repository

// MaxPageSize caps the page size accepted by list queries
const MaxPageSize = 200

// DefaultPageSize is used when the caller does not specify one
const DefaultPageSize = 20

// SortConfig describes ordering for list queries
type SortConfig struct {
	Field     string
	Direction string // "asc" or "desc"
}

// DefaultSortConfig returns newest-first ordering
func DefaultSortConfig() SortConfig {
	return SortConfig{Field: "created_at", Direction: "desc"}
}

// OrderClause builds the ORDER BY clause from a whitelist of sortable
// columns; unknown fields fall back to the default ordering
func (s SortConfig) OrderClause(sortable map[string]string) string {
	column, ok := sortable[s.Field]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if s.Direction == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// normalizePage clamps pagination parameters to sane bounds
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
