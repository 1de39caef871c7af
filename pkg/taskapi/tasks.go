package taskapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"taskboard/pkg/task"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

func taskPath(id task.ID) string {
	return "/tasks/" + url.PathEscape(string(id))
}

// ListTasks fetches the full collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	return c.fetchTasks(ctx, "/tasks")
}

// SearchTasks asks the server to filter the collection by q.
func (c *Client) SearchTasks(ctx context.Context, q string) ([]task.Task, error) {
	return c.fetchTasks(ctx, "/tasks/search", WithQuery(url.Values{"q": []string{q}}))
}

func (c *Client) fetchTasks(ctx context.Context, path string, opts ...RequestOption) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.Do(ctx, http.MethodGet, path, nil, &tasks, opts...); err != nil {
		return nil, err
	}
	if err := task.ValidateAll(tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id task.ID) (task.Task, error) {
	var t task.Task
	if err := c.Do(ctx, http.MethodGet, taskPath(id), nil, &t); err != nil {
		return task.Task{}, err
	}
	if err := t.Validate(); err != nil {
		return task.Task{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return t, nil
}

// CreateTask treats every 2xx reply as a created task. The body is decoded
// when it holds a complete task; otherwise the result is nil.
func (c *Client) CreateTask(ctx context.Context, req task.CreateTaskRequest) (*task.Task, error) {
	payload, err := c.send(ctx, http.MethodPost, "/tasks", req)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}

	var created task.Task
	if err := json.Unmarshal(payload, &created); err != nil {
		log.Warn().Err(err).Msg("Created task body could not be decoded")
		return nil, nil
	}
	if err := created.Validate(); err != nil {
		log.Warn().Err(err).Msg("Created task body is incomplete")
		return nil, nil
	}
	return &created, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id task.ID, status task.Status) error {
	return c.Do(ctx, http.MethodPut, taskPath(id), task.UpdateStatusRequest{Status: status}, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id task.ID) error {
	return c.Do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func (c *Client) Health(ctx context.Context) (task.HealthResponse, error) {
	var health task.HealthResponse
	err := c.Do(ctx, http.MethodGet, "/health", nil, &health)
	return health, err
}
