package task

// Status represents the state of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Toggle returns the opposite status. Anything that is not Completed
// toggles to Completed.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task is the single to-do entity stored in the data table.
type Task struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	DueDate     string `gorm:"column:due_date;not null" json:"due_date"`
	Status      Status `gorm:"column:status;default:Pending" json:"status"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "data"
}

// Schema is the DDL of the data table.
const Schema = `CREATE TABLE IF NOT EXISTS data (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	due_date TEXT NOT NULL,
	status TEXT DEFAULT 'Pending'
)`
