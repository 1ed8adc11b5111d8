package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-list-demo/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter implements TaskPort over the task module's service container.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a TaskPort backed by the task module services.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// ListTasks reads all tasks via the list service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return a.call(ctx, "list", &ListTasksRequest{})
}

// CreateTask creates a task via the create service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) ([]domain.Task, error) {
	return a.call(ctx, "create", req)
}

// DeleteTask deletes a task via the delete service.
func (a *taskAdapter) DeleteTask(ctx context.Context, id int64) ([]domain.Task, error) {
	return a.call(ctx, "delete", &DeleteTaskRequest{ID: id})
}

// SetStatus overwrites a task status via the set-status service.
func (a *taskAdapter) SetStatus(ctx context.Context, id int64, status string) ([]domain.Task, error) {
	return a.call(ctx, "set-status", &SetStatusRequest{ID: id, Status: status})
}

// EditTask applies a partial edit via the edit service.
func (a *taskAdapter) EditTask(ctx context.Context, req *EditTaskRequest) ([]domain.Task, error) {
	return a.call(ctx, "edit", req)
}

func (a *taskAdapter) call(ctx context.Context, service string, req any) ([]domain.Task, error) {
	var resp SnapshotResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", service, err)
	}
	return resp.Result()
}

// Result converts the response into the snapshot or a *domain.Error.
func (r SnapshotResponse) Result() ([]domain.Task, error) {
	if r.ErrorKind != "" {
		return nil, domain.NewError(r.ErrorKind, r.Error)
	}
	if r.Tasks == nil {
		return []domain.Task{}, nil
	}
	return r.Tasks, nil
}
