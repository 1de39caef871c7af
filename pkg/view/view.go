// Package view turns task API results into a description of what the user
// sees. Render is pure: it never performs I/O, so the same description feeds
// the HTML pages, the JSON endpoint and the CLI text output.
package view

import (
	"fmt"
	"time"

	"taskboard/pkg/task"
)

type Kind string

const (
	KindEmpty Kind = "empty"
	KindList  Kind = "list"
	KindError Kind = "error"
)

const (
	EmptyPlaceholder  = "No tasks yet."
	NoDescription     = "No description"
	ErrorHint         = "Check that the API is running at"
	DefaultTimeLayout = "2006-01-02 15:04:05"
)

type Options struct {
	APIURL     string
	TimeLayout string
	// Location defaults to time.Local.
	Location *time.Location
}

type View struct {
	Kind        Kind       `json:"kind"`
	Placeholder string     `json:"placeholder,omitempty"`
	Cards       []Card     `json:"cards"`
	Error       *ErrorView `json:"error,omitempty"`
	APIURL      string     `json:"apiUrl"`
}

type Card struct {
	ID             task.ID        `json:"id"`
	Title          string         `json:"title"`
	Status         task.Status    `json:"status"`
	Description    string         `json:"description"`
	HasDescription bool           `json:"hasDescription"`
	CreatedAt      string         `json:"createdAt"`
	Meta           string         `json:"meta"`
	StatusOptions  []StatusOption `json:"statusOptions"`
}

type StatusOption struct {
	Value    task.Status `json:"value"`
	Selected bool        `json:"selected"`
}

type ErrorView struct {
	Message string `json:"message"`
	Hint    string `json:"hint"`
	APIURL  string `json:"apiUrl"`
}

// Render builds the view for one render cycle. A non-nil err wins over
// tasks: no partial list is ever shown next to an error.
func Render(tasks []task.Task, err error, opts Options) View {
	v := View{Cards: []Card{}, APIURL: opts.APIURL}
	switch {
	case err != nil:
		v.Kind = KindError
		v.Error = &ErrorView{Message: err.Error(), Hint: ErrorHint, APIURL: opts.APIURL}
	case len(tasks) == 0:
		v.Kind = KindEmpty
		v.Placeholder = EmptyPlaceholder
	default:
		v.Kind = KindList
		v.Cards = make([]Card, 0, len(tasks))
		for _, t := range tasks {
			v.Cards = append(v.Cards, NewCard(t, opts))
		}
	}
	return v
}

func NewCard(t task.Task, opts Options) Card {
	card := Card{
		ID:          t.ID,
		Title:       t.Title,
		Status:      t.Status,
		Description: NoDescription,
		CreatedAt:   formatTime(t.CreatedAt.Time, opts),
	}
	if t.Description != nil {
		card.Description = *t.Description
		card.HasDescription = true
	}
	card.Meta = fmt.Sprintf("id=%s • created=%s", t.ID, card.CreatedAt)

	card.StatusOptions = make([]StatusOption, 0, len(task.Statuses))
	for _, status := range task.Statuses {
		card.StatusOptions = append(card.StatusOptions, StatusOption{Value: status, Selected: status == t.Status})
	}
	return card
}

func formatTime(t time.Time, opts Options) string {
	layout := opts.TimeLayout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}
