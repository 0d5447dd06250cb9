package service

// Pagination bounds shared by every listing operation.
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 30
	MaxPageSize       = 30
)

// Page is the envelope returned by all paged listings.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// ValidatePage rejects out-of-bounds pagination parameters before any store
// query runs.
func ValidatePage(page, size int) error {
	if page < 0 {
		return invalid("page", "Page number cannot be less than zero.")
	}
	if size < 0 {
		return invalid("size", "Size number cannot be less than zero.")
	}
	if size == 0 {
		return invalid("size", "Page size must be greater than zero.")
	}
	if size > MaxPageSize {
		return invalid("size", "Page size must not be greater than 30.")
	}
	return nil
}

func newPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
