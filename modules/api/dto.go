package api

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

// DeleteTaskRequest is the HTTP request for deleting a task.
type DeleteTaskRequest struct {
	ID int64 `json:"id"`
}

// PatchTaskRequest is the HTTP request shared by status updates and
// partial edits. Nil fields were absent from the body.
type PatchTaskRequest struct {
	ID          *int64  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
}

// isStatusUpdate reports whether the body has the {id, status} shape.
func (r PatchTaskRequest) isStatusUpdate() bool {
	return r.Status != nil && r.Title == nil && r.Description == nil && r.DueDate == nil
}

func (r PatchTaskRequest) id() int64 {
	if r.ID == nil {
		return 0
	}
	return *r.ID
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
