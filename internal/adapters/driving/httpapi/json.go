package httpapi

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type taskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toTaskResponse(t domain.Task) taskResponse {
	resp := taskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: domain.FormatTimestamp(t.CreatedAt),
		UpdatedAt: domain.FormatTimestamp(t.UpdatedAt),
	}
	if t.Description != "" {
		resp.Description = &t.Description
	}
	return resp
}

func toTaskResponses(tasks []domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (req createTaskRequest) toNewTask() domain.NewTask {
	input := domain.NewTask{Title: req.Title}
	if req.Description != nil {
		input.Description = *req.Description
	}
	return input
}

// field records whether a JSON member was present and whether it was null,
// which a plain pointer cannot tell apart.
type field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

type updateTaskRequest struct {
	Title       field[string] `json:"title"`
	Description field[string] `json:"description"`
	Completed   field[bool]   `json:"completed"`
}

var errNullCompleted = fmt.Errorf("completed must be true or false: %w", domain.ErrInvalidInput)

// toPatch converts the request. A null description clears it; a null title
// is a blank title.
func (req updateTaskRequest) toPatch() (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if req.Title.Set {
		if req.Title.Null {
			return domain.TaskPatch{}, domain.ErrEmptyTitle
		}
		patch.Title = domain.Ptr(req.Title.Value)
	}
	if req.Description.Set {
		patch.Description = domain.Ptr(req.Description.Value)
	}
	if req.Completed.Set {
		if req.Completed.Null {
			return domain.TaskPatch{}, errNullCompleted
		}
		patch.Completed = domain.Ptr(req.Completed.Value)
	}
	return patch, nil
}
