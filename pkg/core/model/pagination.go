package model

// Pagination describes the page window of a listing response.
type Pagination struct {
	Total       int64
	TotalPages  int
	CurrentPage int
	Limit       int
}

// NewPagination computes the pagination block for a listing of total
// rows windowed by page and limit.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}
