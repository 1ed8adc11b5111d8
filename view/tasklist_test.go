package view

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/example/todo-list-demo/client"
	domain "github.com/example/todo-list-demo/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService keeps tasks in memory and answers like the server would.
// override, when set, is returned by the next call instead.
type fakeService struct {
	tasks  []domain.Task
	nextID int64

	override    *client.Response
	overrideErr error

	calls    []string
	lastEdit client.EditFields
}

func newFakeService(tasks ...domain.Task) *fakeService {
	f := &fakeService{tasks: tasks}
	for _, t := range tasks {
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeService) respond(call string) (*client.Response, error) {
	f.calls = append(f.calls, call)
	if f.overrideErr != nil || f.override != nil {
		resp, err := f.override, f.overrideErr
		f.override, f.overrideErr = nil, nil
		return resp, err
	}
	tasks := f.tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	body, _ := json.Marshal(tasks)
	return &client.Response{StatusCode: http.StatusOK, Body: body}, nil
}

func (f *fakeService) fail(status int, message string) {
	body, _ := json.Marshal(map[string]string{"error": message})
	f.override = &client.Response{StatusCode: status, Body: body}
}

func (f *fakeService) Fetch() (*client.Response, error) {
	return f.respond("fetch")
}

func (f *fakeService) Add(title, description, dueDate string) (*client.Response, error) {
	if f.override == nil && f.overrideErr == nil {
		f.nextID++
		f.tasks = append(f.tasks, domain.Task{ID: f.nextID, Title: title, Description: description, DueDate: dueDate, Status: domain.StatusPending})
	}
	return f.respond("add")
}

func (f *fakeService) Delete(id int64) (*client.Response, error) {
	if f.override == nil && f.overrideErr == nil {
		for i, t := range f.tasks {
			if t.ID == id {
				f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
				break
			}
		}
	}
	return f.respond("delete")
}

func (f *fakeService) SetStatus(id int64, status string) (*client.Response, error) {
	if f.override == nil && f.overrideErr == nil {
		for i := range f.tasks {
			if f.tasks[i].ID == id {
				f.tasks[i].Status = domain.Status(status)
			}
		}
	}
	return f.respond("set-status:" + status)
}

func (f *fakeService) Edit(id int64, fields client.EditFields) (*client.Response, error) {
	f.lastEdit = fields
	if f.override == nil && f.overrideErr == nil {
		for i := range f.tasks {
			if f.tasks[i].ID != id {
				continue
			}
			if fields.Title != nil {
				f.tasks[i].Title = *fields.Title
			}
			if fields.Description != nil {
				f.tasks[i].Description = *fields.Description
			}
			if fields.DueDate != nil {
				f.tasks[i].DueDate = *fields.DueDate
			}
		}
	}
	return f.respond("edit")
}

var fixedNow = time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Pay rent", DueDate: "01/07/2025", Status: domain.StatusPending},
		{ID: 2, Title: "Grocery run", DueDate: "19/06/2025", Status: domain.StatusCompleted},
		{ID: 3, Title: "Visit dentist", DueDate: "28/03/2026", Status: domain.StatusPending},
	}
}

func newMountedList(t *testing.T, tasks ...domain.Task) (*TaskList, *fakeService) {
	t.Helper()
	svc := newFakeService(tasks...)
	l := New(svc)
	l.now = func() time.Time { return fixedNow }
	require.True(t, l.Mount())
	return l, svc
}

func ids(tasks []domain.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestMount(t *testing.T) {
	l, _ := newMountedList(t, sampleTasks()...)

	tasks, loaded := l.Tasks()
	assert.True(t, loaded)
	assert.Equal(t, sampleTasks(), tasks)
	assert.Empty(t, l.Message())
	assert.Empty(t, l.EmptyState())
}

func TestMount_FailureLeavesListUnset(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fakeService)
		message string
	}{
		{
			name:    "transport error",
			setup:   func(f *fakeService) { f.overrideErr = errors.New("connection refused") },
			message: "Failed to load tasks: connection refused",
		},
		{
			name:    "server error",
			setup:   func(f *fakeService) { f.fail(http.StatusInternalServerError, "no such table: data") },
			message: "Failed to load tasks: no such table: data",
		},
		{
			name: "non-array payload",
			setup: func(f *fakeService) {
				f.override = &client.Response{StatusCode: http.StatusOK, Body: []byte(`{"tasks":[]}`)}
			},
			message: "Failed to load tasks: unexpected response from server",
		},
		{
			name: "null payload",
			setup: func(f *fakeService) {
				f.override = &client.Response{StatusCode: http.StatusOK, Body: []byte(`null`)}
			},
			message: "Failed to load tasks: unexpected response from server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(sampleTasks()...)
			tt.setup(svc)
			l := New(svc)

			assert.False(t, l.Mount())
			_, loaded := l.Tasks()
			assert.False(t, loaded)
			assert.Equal(t, tt.message, l.Message())
			assert.Equal(t, EmptyStateMessage, l.EmptyState())
		})
	}
}

func TestAdd_ReplacesSnapshotAndResetsForm(t *testing.T) {
	l, svc := newMountedList(t)
	assert.Equal(t, EmptyStateMessage, l.EmptyState())

	l.SetTitle("Grocery run")
	l.SetDescription("milk")
	l.SetDueDate("19/06/2025")
	require.True(t, l.Form().CanSubmit())

	require.True(t, l.Add())

	tasks, _ := l.Tasks()
	assert.Equal(t, svc.tasks, tasks)
	assert.Equal(t, domain.StatusPending, tasks[0].Status)
	assert.Equal(t, FormState{}, l.Form())
	assert.Empty(t, l.EmptyState())
}

func TestAdd_BlockedByForm(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		dueDate string
		message string
	}{
		{"blank title", "   ", "19/06/2025", domain.MsgMissingTitleOrDue},
		{"malformed date", "Pay rent", "2025-06-19", "Due date must be in dd/mm/yyyy format"},
		{"nonexistent date", "Pay rent", "31/02/2026", "Due date 31/02/2026 is not a real calendar date"},
		{"past date", "Pay rent", "09/06/2025", "Due date cannot be in the past"},
		{"empty date", "Pay rent", "", "Due date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, svc := newMountedList(t)
			l.SetTitle(tt.title)
			l.SetDueDate(tt.dueDate)

			assert.False(t, l.Add())
			assert.Equal(t, tt.message, l.Message())
			assert.Equal(t, []string{"fetch"}, svc.calls)
		})
	}
}

func TestKeystrokeValidationClearsError(t *testing.T) {
	l, _ := newMountedList(t)

	l.SetDueDate("19/06/20")
	var verr *domain.ValidationError
	require.ErrorAs(t, l.Form().DueDateErr, &verr)
	assert.Equal(t, domain.ReasonFormatMismatch, verr.Reason)

	l.SetDueDate("19/06/2025")
	assert.NoError(t, l.Form().DueDateErr)
}

func TestMutationFailureKeepsSnapshot(t *testing.T) {
	l, svc := newMountedList(t, sampleTasks()...)
	before, _ := l.Tasks()

	svc.fail(http.StatusBadRequest, "Missing ID")
	assert.False(t, l.Delete(0))
	assert.Equal(t, "Failed to delete task: Missing ID", l.Message())

	after, _ := l.Tasks()
	assert.Equal(t, before, after)

	// The next success clears the message.
	require.True(t, l.Delete(2))
	assert.Empty(t, l.Message())
}

func TestDelete_NonexistentIDStillRefreshes(t *testing.T) {
	l, svc := newMountedList(t, sampleTasks()...)

	require.True(t, l.Delete(99))

	tasks, _ := l.Tasks()
	assert.Equal(t, sampleTasks(), tasks)
	assert.Equal(t, []string{"fetch", "delete"}, svc.calls)
}

func TestToggleStatus(t *testing.T) {
	l, svc := newMountedList(t, sampleTasks()...)

	require.True(t, l.ToggleStatus(1))
	require.True(t, l.ToggleStatus(2))

	assert.Equal(t, []string{"fetch", "set-status:Completed", "set-status:Pending"}, svc.calls)
	tasks, _ := l.Tasks()
	assert.Equal(t, domain.StatusCompleted, tasks[0].Status)
	assert.Equal(t, domain.StatusPending, tasks[1].Status)

	assert.False(t, l.ToggleStatus(42))
	assert.Equal(t, "Task 42 not found", l.Message())
}

func TestEditLifecycle(t *testing.T) {
	l, svc := newMountedList(t, sampleTasks()...)

	require.True(t, l.BeginEdit(1))
	require.True(t, l.BeginEdit(3))
	buf, editing := l.Editing()
	require.True(t, editing)
	assert.Equal(t, int64(3), buf.TaskID, "only one row edits at a time")
	assert.Equal(t, "Visit dentist", buf.Title)

	l.SetEditDescription("x")
	require.True(t, l.SaveEdit())

	assert.Nil(t, svc.lastEdit.Title)
	assert.Nil(t, svc.lastEdit.DueDate)
	require.NotNil(t, svc.lastEdit.Description)
	assert.Equal(t, "x", *svc.lastEdit.Description)

	_, editing = l.Editing()
	assert.False(t, editing)
	tasks, _ := l.Tasks()
	assert.Equal(t, "x", tasks[2].Description)
	assert.Equal(t, "Visit dentist", tasks[2].Title)
}

func TestSaveEdit_FailureStaysEditing(t *testing.T) {
	l, svc := newMountedList(t, sampleTasks()...)
	require.True(t, l.BeginEdit(3))

	svc.fail(http.StatusBadRequest, domain.MsgNoFieldsToUpdate)
	assert.False(t, l.SaveEdit())
	assert.Equal(t, "Failed to save changes: No fields to update", l.Message())

	_, editing := l.Editing()
	assert.True(t, editing)

	l.CancelEdit()
	_, editing = l.Editing()
	assert.False(t, editing)
}

func TestSaveEdit_BlockedByValidation(t *testing.T) {
	l, svc := newMountedList(t, sampleTasks()...)
	require.True(t, l.BeginEdit(1))

	l.SetEditDueDate("31/02/2026")
	assert.False(t, l.SaveEdit())
	assert.Equal(t, "Due date 31/02/2026 is not a real calendar date", l.Message())

	l.SetEditDueDate("28/02/2026")
	l.SetEditTitle(" ")
	assert.False(t, l.SaveEdit())
	assert.Equal(t, domain.MsgMissingTitleOrDue, l.Message())
	assert.Equal(t, []string{"fetch"}, svc.calls)
}

func TestRefreshDropsEditOfDeletedRow(t *testing.T) {
	l, _ := newMountedList(t, sampleTasks()...)
	require.True(t, l.BeginEdit(2))

	require.True(t, l.Delete(2))

	_, editing := l.Editing()
	assert.False(t, editing)
}

func TestToggleSort(t *testing.T) {
	l, _ := newMountedList(t, sampleTasks()...)

	assert.Equal(t, SortAscending, l.ToggleSort())
	assert.Equal(t, []int64{2, 1, 3}, ids(l.Visible()))

	assert.Equal(t, SortDescending, l.ToggleSort())
	assert.Equal(t, []int64{3, 1, 2}, ids(l.Visible()))

	// Sorting never reorders the snapshot itself.
	tasks, _ := l.Tasks()
	assert.Equal(t, []int64{1, 2, 3}, ids(tasks))

	assert.Equal(t, SortAscending, l.ToggleSort())
	assert.Equal(t, []int64{2, 1, 3}, ids(l.Visible()))
}

func TestSortSurvivesRefresh(t *testing.T) {
	l, _ := newMountedList(t, sampleTasks()...)
	l.ToggleSort()

	l.SetTitle("Renew passport")
	l.SetDueDate("11/06/2025")
	require.True(t, l.Add())

	assert.Equal(t, []int64{4, 2, 1, 3}, ids(l.Visible()))
}

func TestSort_UnparseableDatesLast(t *testing.T) {
	l, _ := newMountedList(t,
		domain.Task{ID: 1, Title: "legacy", DueDate: "someday", Status: domain.StatusPending},
		domain.Task{ID: 2, Title: "b", DueDate: "02/01/2026", Status: domain.StatusPending},
		domain.Task{ID: 3, Title: "a", DueDate: "01/01/2026", Status: domain.StatusPending},
	)

	l.SetSort(SortAscending)
	assert.Equal(t, []int64{3, 2, 1}, ids(l.Visible()))

	l.SetSort(SortDescending)
	assert.Equal(t, []int64{2, 3, 1}, ids(l.Visible()))
}

func TestCycleFilter(t *testing.T) {
	l, _ := newMountedList(t, sampleTasks()...)
	assert.Equal(t, []int64{1, 2, 3}, ids(l.Visible()))

	assert.Equal(t, FilterPendingOnly, l.CycleFilter())
	assert.Equal(t, []int64{1, 3}, ids(l.Visible()))

	assert.Equal(t, FilterCompletedOnly, l.CycleFilter())
	assert.Equal(t, []int64{2}, ids(l.Visible()))

	assert.Equal(t, FilterBoth, l.CycleFilter())
	assert.Equal(t, []int64{1, 2, 3}, ids(l.Visible()))

	tasks, _ := l.Tasks()
	assert.Len(t, tasks, 3)
}

func TestSnapshotMatchesStoreAfterEveryMutation(t *testing.T) {
	l, svc := newMountedList(t, sampleTasks()...)

	steps := []func() bool{
		func() bool { return l.ToggleStatus(3) },
		func() bool { return l.Delete(1) },
		func() bool {
			l.SetTitle("Call plumber")
			l.SetDueDate("12/06/2025")
			return l.Add()
		},
		func() bool {
			l.BeginEdit(2)
			l.SetEditTitle("Grocery run (weekly)")
			return l.SaveEdit()
		},
	}

	for i, step := range steps {
		require.True(t, step(), "step %d: %s", i, l.Message())
		tasks, _ := l.Tasks()
		assert.Equal(t, svc.tasks, tasks, "step %d", i)
	}
}
