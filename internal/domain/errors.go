package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound    = errors.New("not found")
	ErrNoWorkspace = errors.New("no workspace selected")
	ErrOffline     = errors.New("offline")
)

// APIError represents an error from the task service
type APIError struct {
	Op         string // Operation: "fetch", "create", "update", etc.
	TaskID     int64  // Optional: specific task ID
	StatusCode int    // Optional: HTTP status from the server
	Message    string // Human-readable context
	Err        error  // Underlying error
}

func (e *APIError) Error() string {
	if e.TaskID != 0 {
		if e.StatusCode != 0 {
			return fmt.Sprintf("api %s [task %d]: status %d", e.Op, e.TaskID, e.StatusCode)
		}
		return fmt.Sprintf("api %s [task %d]: %v", e.Op, e.TaskID, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("api %s: status %d", e.Op, e.StatusCode)
	}
	if e.Message != "" {
		return fmt.Sprintf("api %s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("api %s failed", e.Op)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
