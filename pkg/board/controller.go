package board

import (
	"context"

	"taskboard/pkg/task"
	"taskboard/pkg/view"

	"github.com/rs/zerolog/log"
)

const DeletePrompt = "Delete this task?"

// API is the subset of the task API the board drives.
type API interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	SearchTasks(ctx context.Context, q string) ([]task.Task, error)
	CreateTask(ctx context.Context, req task.CreateTaskRequest) (*task.Task, error)
	UpdateStatus(ctx context.Context, id task.ID, status task.Status) error
	DeleteTask(ctx context.Context, id task.ID) error
}

// Confirmer gates destructive actions behind an explicit user answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// CreateForm holds the raw creation form inputs.
type CreateForm struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

// Controller keeps the rendered board in sync with the server. Every
// successful mutation is followed by exactly one full refresh; nothing is
// cached between cycles, so a Controller is safe for concurrent use.
type Controller struct {
	api  API
	opts view.Options
}

func NewController(api API, opts view.Options) *Controller {
	return &Controller{api: api, opts: opts}
}

func (c *Controller) APIURL() string {
	return c.opts.APIURL
}

// Refresh fetches the whole collection and renders it. A failed fetch is
// rendered as the error view, never returned.
func (c *Controller) Refresh(ctx context.Context) view.View {
	tasks, err := c.api.ListTasks(ctx)
	return c.render(tasks, err)
}

// RefreshSearch is Refresh narrowed through the server-side search; an
// empty q is a plain Refresh.
func (c *Controller) RefreshSearch(ctx context.Context, q string) view.View {
	if q == "" {
		return c.Refresh(ctx)
	}
	tasks, err := c.api.SearchTasks(ctx, q)
	return c.render(tasks, err)
}

func (c *Controller) render(tasks []task.Task, err error) view.View {
	if err != nil {
		log.Warn().Err(err).Str("apiUrl", c.opts.APIURL).Msg("Failed to fetch tasks")
	}
	return view.Render(tasks, err, c.opts)
}

// UpdateStatus sends the selected status and refreshes, even when the
// status did not change. On error no refresh happens.
func (c *Controller) UpdateStatus(ctx context.Context, id task.ID, rawStatus string) (view.View, error) {
	status, err := task.ParseStatus(rawStatus)
	if err != nil {
		return view.View{}, err
	}
	if err := c.api.UpdateStatus(ctx, id, status); err != nil {
		return view.View{}, err
	}
	return c.Refresh(ctx), nil
}

// Delete asks confirmer first; a declined prompt sends nothing and reports
// deleted=false with a nil error.
func (c *Controller) Delete(ctx context.Context, id task.ID, confirmer Confirmer) (view.View, bool, error) {
	if !confirmer.Confirm(ctx, DeletePrompt) {
		return view.View{}, false, nil
	}
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return view.View{}, false, err
	}
	return c.Refresh(ctx), true, nil
}

// Create submits the form and refreshes. The returned form is cleared on
// success and handed back unchanged on error.
func (c *Controller) Create(ctx context.Context, form CreateForm) (view.View, CreateForm, error) {
	req := task.NewCreateTaskRequest(form.Title, form.Description)
	if _, err := c.api.CreateTask(ctx, req); err != nil {
		return view.View{}, form, err
	}
	return c.Refresh(ctx), CreateForm{}, nil
}
