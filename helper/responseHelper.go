package helper

import (
	"encoding/json"
	"net/http"
)

// WriteSuccess writes the standard success envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := map[string]interface{}{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	json.NewEncoder(w).Encode(body)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// Pagination describes the page window of a list response.
type Pagination struct {
	CurrentPage    int   `json:"current_page"`
	RecordsPerPage int   `json:"records_per_page"`
	TotalRecords   int64 `json:"total_records"`
	TotalPages     int64 `json:"total_pages"`
}

// NewPagination computes the page summary for a list of totalRecords records.
func NewPagination(page, recordPerPage int, totalRecords int64) Pagination {
	return Pagination{
		CurrentPage:    page,
		RecordsPerPage: recordPerPage,
		TotalRecords:   totalRecords,
		TotalPages:     (totalRecords + int64(recordPerPage) - 1) / int64(recordPerPage),
	}
}
