// Package view holds the client-side task list. It owns the last snapshot
// returned by the server and replaces it wholesale after every successful
// round trip. Sorting and filtering are projections over that snapshot.
package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/example/todo-list-demo/client"
	domain "github.com/example/todo-list-demo/domain/task"
)

// EmptyStateMessage is shown while the list is unset or empty.
const EmptyStateMessage = "No tasks yet. Add one to get started."

// TaskService is the request surface the view drives. *client.Client
// implements it.
type TaskService interface {
	Fetch() (*client.Response, error)
	Add(title, description, dueDate string) (*client.Response, error)
	Delete(id int64) (*client.Response, error)
	SetStatus(id int64, status string) (*client.Response, error)
	Edit(id int64, fields client.EditFields) (*client.Response, error)
}

var _ TaskService = (*client.Client)(nil)

// TaskList is the view state of one session. It is not safe for concurrent
// use.
type TaskList struct {
	service TaskService
	now     func() time.Time

	tasks  []domain.Task
	loaded bool

	form    FormState
	editing *EditBuffer
	order   SortOrder
	filter  Filter
	message string
}

// New creates an unmounted TaskList.
func New(service TaskService) *TaskList {
	return &TaskList{
		service: service,
		now:     time.Now,
	}
}

// Mount loads the initial list. On failure the list stays unset.
func (l *TaskList) Mount() bool {
	resp, err := l.service.Fetch()
	return l.reconcile(resp, err, "Failed to load tasks")
}

// Add submits the new-task form. Submission is refused while the form has a
// validation error or a blank title or due date.
func (l *TaskList) Add() bool {
	if !l.form.CanSubmit() {
		l.message = l.form.blockedReason()
		return false
	}

	resp, err := l.service.Add(l.form.Title, l.form.Description, l.form.DueDate)
	if !l.reconcile(resp, err, "Failed to add task") {
		return false
	}
	l.form = FormState{}
	return true
}

// Delete removes the task with id.
func (l *TaskList) Delete(id int64) bool {
	resp, err := l.service.Delete(id)
	return l.reconcile(resp, err, "Failed to delete task")
}

// ToggleStatus flips the task with id between Pending and Completed.
func (l *TaskList) ToggleStatus(id int64) bool {
	t, ok := l.find(id)
	if !ok {
		l.message = fmt.Sprintf("Task %d not found", id)
		return false
	}

	resp, err := l.service.SetStatus(id, string(t.Status.Toggle()))
	return l.reconcile(resp, err, "Failed to update status")
}

// BeginEdit puts the row with id into editing, leaving any other row.
func (l *TaskList) BeginEdit(id int64) bool {
	t, ok := l.find(id)
	if !ok {
		l.message = fmt.Sprintf("Task %d not found", id)
		return false
	}
	l.editing = newEditBuffer(t)
	return true
}

// CancelEdit discards the edit buffer.
func (l *TaskList) CancelEdit() {
	l.editing = nil
}

// SaveEdit sends the changed fields of the edit buffer. The row stays in
// editing if the save fails.
func (l *TaskList) SaveEdit() bool {
	if l.editing == nil {
		l.message = "No task is being edited"
		return false
	}
	if !l.editing.CanSave() {
		l.message = l.editing.blockedReason()
		return false
	}

	resp, err := l.service.Edit(l.editing.TaskID, l.editing.Fields())
	if !l.reconcile(resp, err, "Failed to save changes") {
		return false
	}
	l.editing = nil
	return true
}

// ToggleSort flips the due-date sort direction.
func (l *TaskList) ToggleSort() SortOrder {
	l.order = l.order.next()
	return l.order
}

// SetSort sets the due-date sort direction.
func (l *TaskList) SetSort(order SortOrder) {
	l.order = order
}

// CycleFilter advances the status filter.
func (l *TaskList) CycleFilter() Filter {
	l.filter = l.filter.next()
	return l.filter
}

// SetFilter sets the status filter.
func (l *TaskList) SetFilter(filter Filter) {
	l.filter = filter
}

// Visible returns the sorted, filtered rows to render.
func (l *TaskList) Visible() []domain.Task {
	return project(l.tasks, l.order, l.filter)
}

// Tasks returns a copy of the snapshot in server order and whether a
// snapshot has been loaded.
func (l *TaskList) Tasks() ([]domain.Task, bool) {
	if !l.loaded {
		return nil, false
	}
	return append([]domain.Task{}, l.tasks...), true
}

// EmptyState returns the call-to-action while there is nothing to show,
// and "" once the list has rows.
func (l *TaskList) EmptyState() string {
	if !l.loaded || len(l.tasks) == 0 {
		return EmptyStateMessage
	}
	return ""
}

// Message returns the last status message.
func (l *TaskList) Message() string { return l.message }

func (l *TaskList) Sort() SortOrder { return l.order }
func (l *TaskList) Filter() Filter { return l.filter }
func (l *TaskList) Form() FormState { return l.form }

// Editing returns the active edit buffer, if any.
func (l *TaskList) Editing() (EditBuffer, bool) {
	if l.editing == nil {
		return EditBuffer{}, false
	}
	return *l.editing, true
}

// SetTitle updates the new-task title.
func (l *TaskList) SetTitle(s string) { l.form.Title = s }

// SetDescription updates the new-task description.
func (l *TaskList) SetDescription(s string) { l.form.Description = s }

// SetDueDate updates and validates the new-task due date.
func (l *TaskList) SetDueDate(s string) { l.form.setDueDate(s, l.now()) }

// SetEditTitle updates the title of the row being edited.
func (l *TaskList) SetEditTitle(s string) {
	if l.editing != nil {
		l.editing.Title = s
		l.editing.dirty |= editTitle
	}
}

// SetEditDescription updates the description of the row being edited.
func (l *TaskList) SetEditDescription(s string) {
	if l.editing != nil {
		l.editing.Description = s
		l.editing.dirty |= editDescription
	}
}

// SetEditDueDate updates and validates the due date of the row being edited.
func (l *TaskList) SetEditDueDate(s string) {
	if l.editing != nil {
		l.editing.DueDate = s
		l.editing.DueDateErr = domain.ValidateDueDate(s, l.now())
		l.editing.dirty |= editDueDate
	}
}

func (l *TaskList) find(id int64) (domain.Task, bool) {
	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// reconcile applies a server response. A 200 carrying a JSON array replaces
// the snapshot; anything else leaves it untouched and sets the message.
func (l *TaskList) reconcile(resp *client.Response, err error, failure string) bool {
	if err != nil {
		l.message = fmt.Sprintf("%s: %v", failure, err)
		return false
	}

	if !resp.OK() {
		l.message = fmt.Sprintf("%s: %s", failure, errorMessage(resp))
		return false
	}

	body := bytes.TrimSpace(resp.Body)
	var tasks []domain.Task
	if !bytes.HasPrefix(body, []byte("[")) || json.Unmarshal(body, &tasks) != nil {
		log.Printf("[view] Unexpected payload (status %d): %.200s", resp.StatusCode, body)
		l.message = fmt.Sprintf("%s: unexpected response from server", failure)
		return false
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	l.tasks = tasks
	l.loaded = true
	l.message = ""

	if l.editing != nil {
		if _, ok := l.find(l.editing.TaskID); !ok {
			l.editing = nil
		}
	}
	return true
}

// errorMessage extracts {error} from a failed response.
func errorMessage(resp *client.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
