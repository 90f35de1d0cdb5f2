package dto

import "time"

// APIResponse is the envelope of every successful response
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in the standard envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a mutation acknowledgement, mirroring the
// dashboard's {success: true} contract. StudentID names the student whose
// page changed, when there is one.
type SuccessResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message,omitempty"`
	StudentID string `json:"studentId,omitempty"`
}

// PaginationInfo describes one page of a listing
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}

// UploadResponse is returned by the upload endpoints
type UploadResponse struct {
	URL      string `json:"url" example:"http://localhost:8080/uploads/gallery/4b1c.jpg"`
	MimeType string `json:"mimeType" example:"image/jpeg"`
	Resized  bool   `json:"resized"`
}
