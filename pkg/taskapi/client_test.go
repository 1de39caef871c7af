package taskapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"taskboard/pkg/task"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method    string
	Path      string
	RawQuery  string
	Body      string
	Header    http.Header
	RequestID string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.reqs...)
}

// newBackend serves every request with handler and records what it saw.
func newBackend(t *testing.T, handler http.HandlerFunc) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.EscapedPath(),
			RawQuery:  r.URL.RawQuery,
			Body:      string(body),
			Header:    r.Header.Clone(),
			RequestID: r.Header.Get(RequestIDHeader),
		})
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL + "/"), rec
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

const twoTasks = `[
	{"id": 1, "title": "Plan", "description": "sprint", "status": "TODO", "created_at": "2024-05-01T08:00:00"},
	{"id": "b", "title": "Build", "description": null, "status": "DOING", "created_at": "2024-05-02T08:00:00Z"}
]`

func TestListTasks(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, twoTasks)
	})

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, task.ID("1"), tasks[0].ID)
	assert.Equal(t, task.ID("b"), tasks[1].ID)

	seen := rec.all()
	require.Len(t, seen, 1)
	req := seen[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/tasks", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.NotEmpty(t, req.RequestID)
}

func TestListTasksEmptyCollection(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestListTasksRejectsMalformedElements(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id": 1, "title": "", "status": "TODO", "created_at": "2024-05-01T08:00:00"}]`)
	})

	tasks, err := client.ListTasks(context.Background())
	require.Error(t, err)
	assert.Nil(t, tasks)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestListTasksRejectsNonJSON(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>oops</html>`)
	})

	_, err := client.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSearchTasksSendsQuery(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})

	_, err := client.SearchTasks(context.Background(), "milk & eggs")
	require.NoError(t, err)
	seen := rec.all()
	require.Len(t, seen, 1)
	assert.Equal(t, "/tasks/search", seen[0].Path)
	assert.Equal(t, "q=milk+%26+eggs", seen[0].RawQuery)
}

func TestCreateTaskSendsNullDescription(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id": 7, "title": "Buy milk", "description": null, "status": "TODO", "created_at": "2024-05-01T08:00:00"}`)
	})

	created, err := client.CreateTask(context.Background(), task.NewCreateTaskRequest("Buy milk", ""))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, task.ID("7"), created.ID)

	seen := rec.all()
	require.Len(t, seen, 1)
	assert.Equal(t, http.MethodPost, seen[0].Method)
	assert.Equal(t, "/tasks", seen[0].Path)
	assert.JSONEq(t, `{"title": "Buy milk", "description": null}`, seen[0].Body)
}

func TestCreateTaskNoContent(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	created, err := client.CreateTask(context.Background(), task.NewCreateTaskRequest("x", ""))
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestUpdateStatusEscapesID(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.UpdateStatus(context.Background(), "a/b c", task.StatusDone))
	seen := rec.all()
	require.Len(t, seen, 1)
	assert.Equal(t, http.MethodPut, seen[0].Method)
	assert.Equal(t, "/tasks/a%2Fb%20c", seen[0].Path)

	var body task.UpdateStatusRequest
	require.NoError(t, json.Unmarshal([]byte(seen[0].Body), &body))
	assert.Equal(t, task.StatusDone, body.Status)
}

func TestDeleteTask(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"ok": true}`)
	})

	require.NoError(t, client.DeleteTask(context.Background(), "9"))
	seen := rec.all()
	require.Len(t, seen, 1)
	assert.Equal(t, http.MethodDelete, seen[0].Method)
	assert.Equal(t, "/tasks/9", seen[0].Path)
	assert.Empty(t, seen[0].Body)
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"string detail", http.StatusNotFound, `{"detail": "Task not found"}`, "Task not found"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail": [{"msg": "field required"}, {"msg": "too short"}]}`, "field required; too short"},
		{"no detail", http.StatusInternalServerError, `{"error": "boom"}`, "HTTP 500"},
		{"not json", http.StatusBadGateway, `bad gateway`, "HTTP 502"},
		{"empty", http.StatusServiceUnavailable, ``, "HTTP 503"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			})

			tasks, err := client.ListTasks(context.Background())
			require.Error(t, err)
			assert.Nil(t, tasks)
			assert.Equal(t, tc.message, err.Error())
			assert.True(t, IsRequestError(err, tc.status))
		})
	}
}

func TestCallerHeadersWin(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status": "ok"}`)
	})

	var out task.HealthResponse
	err := client.Do(context.Background(), http.MethodGet, "/health", nil, &out,
		WithHeader(RequestIDHeader, "fixed-id"),
		WithHeader("Accept", "text/plain"),
	)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
	seen := rec.all()
	assert.Equal(t, "fixed-id", seen[0].RequestID)
	assert.Equal(t, "text/plain", seen[0].Header.Get("Accept"))
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewClient(baseURL, WithTimeout(time.Second))
	_, err := client.ListTasks(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.Equal(t, baseURL+"/tasks", netErr.URL)
	assert.Contains(t, err.Error(), "network error")
}

func TestHealth(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status": "ok"}`)
	})

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	seen := rec.all()
	assert.Equal(t, "/health", seen[0].Path)
}

func TestBaseURLTrimmed(t *testing.T) {
	assert.Equal(t, "http://example.test", NewClient("http://example.test//").BaseURL())
}

func TestCreateTaskIncompleteBodyIsSuccess(t *testing.T) {
	bodies := []string{
		`{"id": 1, "title": "x"}`,
		`{"id": 1, "title": "x", "status": "TODO", "created_at": "2024-05-01 08:00:00"}`,
		`created`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusCreated, body)
			})

			created, err := client.CreateTask(context.Background(), task.NewCreateTaskRequest("x", ""))
			require.NoError(t, err)
			assert.Nil(t, created)
			assert.Len(t, rec.all(), 1)
		})
	}
}

func TestGetTask(t *testing.T) {
	client, rec := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tasks/404" {
			writeJSON(w, http.StatusNotFound, `{"detail": "Task not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id": 5, "title": "Review", "description": "PR 12", "status": "DONE", "created_at": "2024-05-01T08:00:00"}`)
	})

	got, err := client.GetTask(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, task.ID("5"), got.ID)
	assert.Equal(t, task.StatusDone, got.Status)
	require.NotNil(t, got.Description)
	assert.Equal(t, "PR 12", *got.Description)

	_, err = client.GetTask(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, IsRequestError(err, http.StatusNotFound))
	assert.Equal(t, "Task not found", err.Error())

	seen := rec.all()
	require.Len(t, seen, 2)
	assert.Equal(t, "/tasks/5", seen[0].Path)
	assert.Equal(t, http.MethodGet, seen[0].Method)
}

func TestWithTimeoutLeavesCallerClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	client := NewClient("http://api.test", WithHTTPClient(shared), WithTimeout(3*time.Second))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
	assert.NotSame(t, shared, client.httpClient)

	client = NewClient("http://api.test", WithTimeout(time.Second), WithHTTPClient(nil))
	require.NotNil(t, client.httpClient)
	assert.Equal(t, time.Second, client.httpClient.Timeout)

	assert.Equal(t, defaultTimeout, NewClient("http://api.test").httpClient.Timeout)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
func (brokenBody) Close() error             { return nil }

func brokenBodyClient(status int) *Client {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       brokenBody{},
			Request:    req,
		}, nil
	})
	return NewClient("http://api.test", WithHTTPClient(&http.Client{Transport: transport}))
}

func TestUnreadableErrorBodyKeepsStatus(t *testing.T) {
	_, err := brokenBodyClient(http.StatusInternalServerError).ListTasks(context.Background())
	require.Error(t, err)
	assert.True(t, IsRequestError(err, http.StatusInternalServerError))
	assert.Equal(t, "HTTP 500", err.Error())
}

func TestUnreadableSuccessBodyIsNetworkError(t *testing.T) {
	_, err := brokenBodyClient(http.StatusOK).ListTasks(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
