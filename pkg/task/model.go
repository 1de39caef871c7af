package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/relvacode/iso8601"
)

type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

func (s Status) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", &InvalidStatusError{Value: raw}
	}
	return status, nil
}

// ID is the server-assigned task identifier. The wire form may be a JSON
// string or number; either way it is kept as opaque text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*id = ID(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("task id must be a string or a number, got %s", data)
	}
	*id = ID(number.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Timestamp reads ISO 8601 values with or without a zone offset. Values
// without an offset are taken as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if text == "" {
		return errors.New("timestamp is empty")
	}
	parsed, err := iso8601.ParseString(text)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", text, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

type Task struct {
	ID          ID        `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description"`
	Status      Status    `json:"status" validate:"oneof=TODO DOING DONE"`
	CreatedAt   Timestamp `json:"created_at"`
}

var validate = validator.New()

// Validate checks the fields the client relies on when rendering.
func (t Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		return &InvalidTaskError{ID: t.ID, Err: err}
	}
	if t.CreatedAt.IsZero() {
		return &InvalidTaskError{ID: t.ID, Err: errors.New("created_at is missing")}
	}
	return nil
}

// ValidateAll stops at the first invalid task.
func ValidateAll(tasks []Task) error {
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task #%d: %w", i, err)
		}
	}
	return nil
}
