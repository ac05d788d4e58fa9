package response

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
	HasMore    bool  `json:"hasMore"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination derives the page window for a 1-based page of size limit.
func NewPagination(page, limit int, total int64) *Pagination {
	if limit <= 0 {
		limit = 1
	}
	if page <= 0 {
		page = 1
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	p := &Pagination{
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}
	start := int64((page - 1) * limit)
	if start < total {
		p.From = int(start) + 1
		p.To = int(min(start+int64(limit), total))
	}
	return p
}
