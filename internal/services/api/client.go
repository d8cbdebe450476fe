// Package api is the remote task collaborator: a thin HTTP client over the
// task service's contracted endpoints. Transport concerns (retries,
// timeouts) stay with the injected Doer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/trellisboard/trellis/internal/domain"
)

// Doer executes HTTP requests; *http.Client satisfies it
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the task service
type Client struct {
	doer    Doer
	baseURL string
	token   string
	logger  *slog.Logger
}

// NewClient creates a new API client with dependency injection
func NewClient(doer Doer, baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		doer:    doer,
		baseURL: baseURL,
		token:   token,
		logger:  logger,
	}
}

// FetchTasks fetches one page of tasks for a workspace
func (c *Client) FetchTasks(ctx context.Context, workspaceID int64, filters domain.TaskFilters, cursor string) (domain.TaskPage, error) {
	q := filters.Query(workspaceID)
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	c.logger.Debug("fetching tasks", "workspace", workspaceID, "cursor", cursor)

	var page domain.TaskPage
	if err := c.call(ctx, http.MethodGet, "/v1/tasks?"+q.Encode(), nil, nil, &page); err != nil {
		return domain.TaskPage{}, wrap(err, "fetch", 0)
	}

	c.logger.Debug("fetched tasks", "count", len(page.Tasks), "hasMore", page.HasMore)
	return page, nil
}

// CreateTask creates a task; the server assigns the id and the initial
// position. The request carries an idempotency key so a transport retry
// cannot create duplicates.
func (c *Client) CreateTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	c.logger.Debug("creating task", "title", draft.Title, "category", draft.CategoryID)

	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var task domain.Task
	if err := c.call(ctx, http.MethodPost, "/v1/tasks", headers, draft, &task); err != nil {
		return domain.Task{}, wrap(err, "create", 0)
	}

	c.logger.Debug("task created", "id", task.ID)
	return task, nil
}

// UpdateTask applies a partial update and returns the full updated entity
func (c *Client) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (domain.Task, error) {
	c.logger.Debug("updating task", "id", id)

	var task domain.Task
	if err := c.call(ctx, http.MethodPatch, "/v1/tasks/"+strconv.FormatInt(id, 10), nil, patch, &task); err != nil {
		return domain.Task{}, wrap(err, "update", id)
	}
	return task, nil
}

// UpdatePosition repositions a task. The server renumbers siblings; callers
// must refetch to observe the final positions.
func (c *Client) UpdatePosition(ctx context.Context, id int64, update domain.PositionUpdate) error {
	c.logger.Debug("repositioning task", "id", id, "category", update.CategoryID, "position", update.Position)

	path := fmt.Sprintf("/v1/tasks/%d/position", id)
	if err := c.call(ctx, http.MethodPut, path, nil, update, nil); err != nil {
		return wrap(err, "reposition", id)
	}
	return nil
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	c.logger.Debug("deleting task", "id", id)

	if err := c.call(ctx, http.MethodDelete, "/v1/tasks/"+strconv.FormatInt(id, 10), nil, nil, nil); err != nil {
		return wrap(err, "delete", id)
	}
	return nil
}

// Categories fetches the workspace's category directory
func (c *Client) Categories(ctx context.Context, workspaceID int64) ([]domain.Category, error) {
	q := url.Values{}
	q.Set("workspaceId", strconv.FormatInt(workspaceID, 10))

	var categories []domain.Category
	if err := c.call(ctx, http.MethodGet, "/v1/categories?"+q.Encode(), nil, nil, &categories); err != nil {
		return nil, wrap(err, "categories", 0)
	}
	return categories, nil
}

// Users fetches the workspace's member directory
func (c *Client) Users(ctx context.Context, workspaceID int64) ([]domain.UserRef, error) {
	q := url.Values{}
	q.Set("workspaceId", strconv.FormatInt(workspaceID, 10))

	var users []domain.UserRef
	if err := c.call(ctx, http.MethodGet, "/v1/users?"+q.Encode(), nil, nil, &users); err != nil {
		return nil, wrap(err, "users", 0)
	}
	return users, nil
}

// call runs one request/response cycle. Non-2xx responses become statusError
// so wrap can surface the code in the domain error.
func (c *Client) call(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return statusError(resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type statusError int

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", int(e))
}

func wrap(err error, op string, taskID int64) error {
	apiErr := &domain.APIError{Op: op, TaskID: taskID, Err: err}
	var se statusError
	if errors.As(err, &se) {
		apiErr.StatusCode = int(se)
	}
	return apiErr
}
