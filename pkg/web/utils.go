package web

import (
	"errors"
	"net/http"

	"taskboard/pkg/board"
	"taskboard/pkg/task"
	"taskboard/pkg/taskapi"
	"taskboard/pkg/view"
)

// Define a common response structure
type ApiResponse struct {
	Success bool        `json:"success"`
	Body    interface{} `json:"body"`
	Error   interface{} `json:"error"`
}

func defaultErrorResponse(errorMsg interface{}) ApiResponse {
	return ApiResponse{Success: false, Body: nil, Error: errorMsg}
}

func defaultSuccessResponse(body interface{}) ApiResponse {
	return ApiResponse{Success: true, Body: body, Error: nil}
}

// boardPage without a View kind shows only the form, e.g. after a failed
// create where no refresh happened.
type boardPage struct {
	View   view.View
	Form   board.CreateForm
	Query  string
	Banner string
	APIURL string
}

type confirmPage struct {
	ID     task.ID
	Prompt string
	APIURL string
}

type errorPage struct {
	Action  string
	Message string
	APIURL  string
}

// statusForError maps a failed mutation to the status of the error page.
// Task API client errors pass through; everything else is a bad gateway.
func statusForError(err error) int {
	var reqErr *taskapi.RequestError
	switch {
	case task.IsInvalidStatusError(err):
		return http.StatusBadRequest
	case errors.As(err, &reqErr) && reqErr.StatusCode >= 400 && reqErr.StatusCode < 500:
		return reqErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}
