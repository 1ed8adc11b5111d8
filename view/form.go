package view

import (
	"time"

	"github.com/example/todo-list-demo/client"
	domain "github.com/example/todo-list-demo/domain/task"
)

// FormState is the new-task form.
type FormState struct {
	Title       string
	Description string
	DueDate     string
	// DueDateErr is the result of the last keystroke validation.
	DueDateErr error
}

func (f *FormState) setDueDate(input string, now time.Time) {
	f.DueDate = input
	f.DueDateErr = domain.ValidateDueDate(input, now)
}

// CanSubmit reports whether the form may be sent.
func (f FormState) CanSubmit() bool {
	return f.DueDateErr == nil && !domain.Blank(f.Title) && !domain.Blank(f.DueDate)
}

// blockedReason explains why CanSubmit is false.
func (f FormState) blockedReason() string {
	if f.DueDateErr != nil {
		return f.DueDateErr.Error()
	}
	return domain.MsgMissingTitleOrDue
}

type editField uint8

const (
	editTitle editField = 1 << iota
	editDescription
	editDueDate
)

// EditBuffer holds the in-place edit of one row. Only fields changed through
// the setters are sent on save.
type EditBuffer struct {
	TaskID      int64
	Title       string
	Description string
	DueDate     string
	DueDateErr  error

	dirty editField
}

func newEditBuffer(t domain.Task) *EditBuffer {
	return &EditBuffer{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
	}
}

// CanSave reports whether the buffer may be sent.
func (b EditBuffer) CanSave() bool {
	return b.DueDateErr == nil && !domain.Blank(b.Title) && !domain.Blank(b.DueDate)
}

func (b EditBuffer) blockedReason() string {
	if b.DueDateErr != nil {
		return b.DueDateErr.Error()
	}
	return domain.MsgMissingTitleOrDue
}

// Fields returns the changed fields as a partial edit.
func (b EditBuffer) Fields() client.EditFields {
	var f client.EditFields
	if b.dirty&editTitle != 0 {
		f.Title = &b.Title
	}
	if b.dirty&editDescription != 0 {
		f.Description = &b.Description
	}
	if b.dirty&editDueDate != 0 {
		f.DueDate = &b.DueDate
	}
	return f
}
