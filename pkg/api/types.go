package api

import (
	"time"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
)

// SearchResponse is one page of matches. Page is 1-based like the page
// query parameter.
type SearchResponse struct {
	Rows      []funeralhomes.Record `json:"rows"`
	Total     int                   `json:"total"`
	Page      int                   `json:"page"`
	PageSize  int                   `json:"page_size"`
	PageCount int                   `json:"page_count"`
	HasPrev   bool                  `json:"has_prev"`
	HasNext   bool                  `json:"has_next"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
