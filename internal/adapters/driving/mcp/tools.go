package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

// TaskOutput is the JSON form of a task returned by tools and resources.
type TaskOutput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toTaskOutput(t *domain.Task) TaskOutput {
	return TaskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   domain.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   domain.FormatTimestamp(t.UpdatedAt),
	}
}

// ListTasksInput is the input schema for the list_tasks tool.
type ListTasksInput struct {
	Completed *bool `json:"completed,omitempty" jsonschema:"only return tasks with this completion state"`
}

// ListTasksOutput is the output schema for the list_tasks tool.
type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
	Count int          `json:"count"`
}

// TaskIDInput identifies a single task.
type TaskIDInput struct {
	ID int64 `json:"id" jsonschema:"the task id"`
}

// CreateTaskInput is the input schema for the create_task tool.
type CreateTaskInput struct {
	Title       string `json:"title" jsonschema:"the task title, must not be blank"`
	Description string `json:"description,omitempty" jsonschema:"optional free text"`
}

// UpdateTaskInput is the input schema for the update_task tool.
// Omitted fields are left untouched.
type UpdateTaskInput struct {
	ID          int64   `json:"id" jsonschema:"the task id"`
	Title       *string `json:"title,omitempty" jsonschema:"new title"`
	Description *string `json:"description,omitempty" jsonschema:"new description, empty string clears it"`
	Completed   *bool   `json:"completed,omitempty" jsonschema:"new completion state"`
}

// DeleteTaskOutput is the output schema for the delete_task tool.
type DeleteTaskOutput struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, newest first, optionally filtered by completion",
	}, s.handleListTasks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_task",
		Description: "Fetch a single task by id",
	}, s.handleGetTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a new task",
	}, s.handleCreateTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_task",
		Description: "Change the title, description or completion of a task",
	}, s.handleUpdateTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by id",
	}, s.handleDeleteTask)
}

func (s *Server) handleListTasks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTasksInput,
) (*mcp.CallToolResult, ListTasksOutput, error) {
	tasks, err := s.ports.Tasks.List(ctx, domain.TaskFilter{Completed: input.Completed})
	if err != nil {
		return nil, ListTasksOutput{}, err
	}

	output := ListTasksOutput{
		Tasks: make([]TaskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i := range tasks {
		output.Tasks[i] = toTaskOutput(&tasks[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskIDInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	task, err := s.ports.Tasks.Get(ctx, input.ID)
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, toTaskOutput(task), nil
}

func (s *Server) handleCreateTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateTaskInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	task, err := s.ports.Tasks.Create(ctx, domain.NewTask{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, toTaskOutput(task), nil
}

func (s *Server) handleUpdateTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateTaskInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	task, err := s.ports.Tasks.Update(ctx, input.ID, domain.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, toTaskOutput(task), nil
}

func (s *Server) handleDeleteTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskIDInput,
) (*mcp.CallToolResult, DeleteTaskOutput, error) {
	if err := s.ports.Tasks.Delete(ctx, input.ID); err != nil {
		return nil, DeleteTaskOutput{}, err
	}
	return nil, DeleteTaskOutput{ID: input.ID, Deleted: true}, nil
}
