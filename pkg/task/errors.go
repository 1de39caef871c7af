package task

import (
	"errors"
	"strconv"
)

type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return "invalid status " + strconv.Quote(e.Value) + ", expected one of TODO, DOING, DONE"
}

// IsInvalidStatusError checks if an error is an InvalidStatusError
func IsInvalidStatusError(err error) bool {
	var target *InvalidStatusError
	return errors.As(err, &target)
}

type InvalidTaskError struct {
	ID  ID
	Err error
}

func (e *InvalidTaskError) Error() string {
	return "invalid task " + strconv.Quote(string(e.ID)) + ": " + e.Err.Error()
}

func (e *InvalidTaskError) Unwrap() error {
	return e.Err
}
