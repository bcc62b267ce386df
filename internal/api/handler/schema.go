package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// paginationResponse matches the dashboard's list envelope contract.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// envelope wraps every successful /api response body.
type envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

func ok(data any) envelope {
	return envelope{Success: true, Data: data}
}

func okPage(data any, total int64, page, limit, totalPages int) envelope {
	return envelope{
		Success: true,
		Data:    data,
		Pagination: &paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}
