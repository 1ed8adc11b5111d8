package task

import "net/http"

// ErrorKind classifies failures of the task mutation API.
type ErrorKind string

const (
	KindMissingField     ErrorKind = "missing_field"
	KindMissingID        ErrorKind = "missing_id"
	KindNoFieldsProvided ErrorKind = "no_fields_provided"
	KindInvalidDueDate   ErrorKind = "invalid_due_date"
	KindStorage          ErrorKind = "storage_error"
)

// Messages returned verbatim to API callers.
const (
	MsgMissingID         = "Missing ID"
	MsgMissingIDOrStatus = "Missing ID or status"
	MsgNoFieldsToUpdate  = "No fields to update"
	MsgMissingTitleOrDue = "Missing title or due date"
)

// Error is a request-shape or storage failure of a task operation.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	if e.Kind == KindStorage {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// StorageError wraps an underlying store failure, keeping its message.
func StorageError(err error) *Error {
	return &Error{Kind: KindStorage, Message: err.Error()}
}
