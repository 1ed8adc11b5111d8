package task

import (
	"context"
	"errors"
	"log"
	"time"

	domain "github.com/example/todo-list-demo/domain/task"
	"github.com/example/todo-list-demo/events"
	"github.com/go-monolith/mono"
)

// listTasks handles the list service request.
// Concurrent list requests share one read; writes never go through here.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (SnapshotResponse, error) {
	v, err, _ := m.reads.Do("list", func() (any, error) {
		return m.repo.FindAll(ctx)
	})
	if err != nil {
		return failure(domain.StorageError(err)), nil
	}
	return SnapshotResponse{Tasks: v.([]domain.Task)}, nil
}

// createTask handles the create service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (SnapshotResponse, error) {
	if req.Title == "" || req.DueDate == "" {
		return failure(domain.NewError(domain.KindMissingField, domain.MsgMissingTitleOrDue)), nil
	}
	if err := m.checkDueDate(req.DueDate); err != nil {
		return failure(err), nil
	}

	newTask := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.StatusPending,
	}

	return m.mutate(ctx, func() error {
		return m.repo.Create(ctx, newTask)
	}, func() {
		m.publishCreated(newTask)
	}), nil
}

// deleteTask handles the delete service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (SnapshotResponse, error) {
	if req.ID == 0 {
		return failure(domain.NewError(domain.KindMissingID, domain.MsgMissingID)), nil
	}

	return m.mutate(ctx, func() error {
		return m.repo.Delete(ctx, req.ID)
	}, func() {
		m.publish(func(bus mono.EventBus) error {
			return events.TaskDeletedV1.Publish(bus, events.TaskDeletedEvent{
				TaskID:    req.ID,
				DeletedAt: time.Now(),
			}, nil)
		}, "TaskDeleted", req.ID)
	}), nil
}

// setStatus handles the set-status service request. The value is written as
// given; only its presence is checked.
func (m *TaskModule) setStatus(ctx context.Context, req SetStatusRequest, _ *mono.Msg) (SnapshotResponse, error) {
	if req.ID == 0 || req.Status == "" {
		return failure(domain.NewError(domain.KindMissingField, domain.MsgMissingIDOrStatus)), nil
	}

	return m.mutate(ctx, func() error {
		return m.repo.UpdateStatus(ctx, req.ID, req.Status)
	}, func() {
		m.publish(func(bus mono.EventBus) error {
			return events.TaskStatusChangedV1.Publish(bus, events.TaskStatusChangedEvent{
				TaskID:    req.ID,
				Status:    req.Status,
				ChangedAt: time.Now(),
			}, nil)
		}, "TaskStatusChanged", req.ID)
	}), nil
}

// editTask handles the edit service request.
func (m *TaskModule) editTask(ctx context.Context, req EditTaskRequest, _ *mono.Msg) (SnapshotResponse, error) {
	if req.ID == 0 {
		return failure(domain.NewError(domain.KindMissingID, domain.MsgMissingID)), nil
	}
	if req.Patch.IsEmpty() {
		return failure(domain.NewError(domain.KindNoFieldsProvided, domain.MsgNoFieldsToUpdate)), nil
	}
	if req.DueDate != nil {
		if err := m.checkDueDate(*req.DueDate); err != nil {
			return failure(err), nil
		}
	}

	return m.mutate(ctx, func() error {
		return m.repo.ApplyPatch(ctx, req.ID, req.Patch)
	}, func() {
		m.publish(func(bus mono.EventBus) error {
			return events.TaskEditedV1.Publish(bus, events.TaskEditedEvent{
				TaskID:   req.ID,
				Fields:   req.Patch.Fields(),
				EditedAt: time.Now(),
			}, nil)
		}, "TaskEdited", req.ID)
	}), nil
}

// mutate runs exactly one write followed by exactly one full read. The
// write is never retried; onWritten runs only after a successful write.
func (m *TaskModule) mutate(ctx context.Context, write func() error, onWritten func()) SnapshotResponse {
	if err := write(); err != nil {
		var taskErr *domain.Error
		if errors.As(err, &taskErr) {
			return failure(taskErr)
		}
		return failure(domain.StorageError(err))
	}
	onWritten()

	tasks, err := m.repo.FindAll(ctx)
	if err != nil {
		return failure(domain.StorageError(err))
	}
	return SnapshotResponse{Tasks: tasks}
}

// checkDueDate applies the server-side due date policy: shape and calendar
// existence always, past dates only in strict mode.
func (m *TaskModule) checkDueDate(dueDate string) *domain.Error {
	var err error
	if m.strictDueDates {
		err = domain.ValidateDueDate(dueDate, m.now())
	} else {
		_, err = domain.ParseDueDate(dueDate)
	}
	if err != nil {
		return domain.NewError(domain.KindInvalidDueDate, err.Error())
	}
	return nil
}

func (m *TaskModule) publishCreated(t *domain.Task) {
	m.publish(func(bus mono.EventBus) error {
		return events.TaskCreatedV1.Publish(bus, events.TaskCreatedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			DueDate:   t.DueDate,
			CreatedAt: time.Now(),
		}, nil)
	}, "TaskCreated", t.ID)
}

// publish emits an event best-effort; failures are logged, never returned.
func (m *TaskModule) publish(emit func(mono.EventBus) error, name string, taskID int64) {
	if m.eventBus == nil {
		return
	}
	if err := emit(m.eventBus); err != nil {
		log.Printf("[task] Warning: failed to publish %s event for task %d: %v", name, taskID, err)
	}
}

func failure(err *domain.Error) SnapshotResponse {
	return SnapshotResponse{
		Tasks:     []domain.Task{},
		ErrorKind: err.Kind,
		Error:     err.Message,
	}
}
