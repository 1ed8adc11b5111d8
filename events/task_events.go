package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is stored.
type TaskCreatedEvent struct {
	TaskID    int64     `json:"task_id"`
	Title     string    `json:"title"`
	DueDate   string    `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskStatusChangedEvent is emitted when a task status is overwritten.
type TaskStatusChangedEvent struct {
	TaskID    int64     `json:"task_id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// TaskStatusChangedV1 is the typed event definition for status updates.
// Subject: events.task.v1.task-status-changed
var TaskStatusChangedV1 = helper.EventDefinition[TaskStatusChangedEvent](
	"task", "TaskStatusChanged", "v1",
)

// TaskEditedEvent is emitted after a partial edit.
type TaskEditedEvent struct {
	TaskID   int64     `json:"task_id"`
	Fields   []string  `json:"fields"`
	EditedAt time.Time `json:"edited_at"`
}

// TaskEditedV1 is the typed event definition for partial edits.
// Subject: events.task.v1.task-edited
var TaskEditedV1 = helper.EventDefinition[TaskEditedEvent](
	"task", "TaskEdited", "v1",
)

// TaskDeletedEvent is emitted when a delete statement ran.
type TaskDeletedEvent struct {
	TaskID    int64     `json:"task_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)
