package task

import "strings"

// CreateTaskRequest is the POST /tasks body. Description is always sent,
// as null when absent.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// NewCreateTaskRequest trims both fields and turns a blank description into
// an absent one. The title is not checked; the server owns that rule.
func NewCreateTaskRequest(title string, description string) CreateTaskRequest {
	req := CreateTaskRequest{Title: strings.TrimSpace(title)}
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		req.Description = &trimmed
	}
	return req
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
