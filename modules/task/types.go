package task

import (
	"context"

	domain "github.com/example/todo-list-demo/domain/task"
)

// ListTasksRequest is the request for reading all tasks.
type ListTasksRequest struct{}

// CreateTaskRequest is the request for creating a task. Status is accepted
// for wire compatibility but always stored as Pending.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID int64 `json:"id"`
}

// SetStatusRequest is the request for overwriting a task status.
type SetStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// EditTaskRequest is the request for a partial edit.
type EditTaskRequest struct {
	ID int64 `json:"id"`
	domain.Patch
}

// SnapshotResponse carries the full task list after an operation. On
// failure ErrorKind and Error are set and Tasks is empty.
type SnapshotResponse struct {
	Tasks     []domain.Task    `json:"tasks"`
	ErrorKind domain.ErrorKind `json:"error_kind,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// TaskPort defines the task operations used by driving adapters.
// Every method returns the authoritative post-operation snapshot.
type TaskPort interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, req *CreateTaskRequest) ([]domain.Task, error)
	DeleteTask(ctx context.Context, id int64) ([]domain.Task, error)
	SetStatus(ctx context.Context, id int64, status string) ([]domain.Task, error)
	EditTask(ctx context.Context, req *EditTaskRequest) ([]domain.Task, error)
}
