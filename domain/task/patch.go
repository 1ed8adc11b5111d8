package task

// Patch is a partial edit of a task. Nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Assignment is one column update produced by a Patch.
type Assignment struct {
	Column string
	Value  string
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return len(p.Assignments()) == 0
}

// Assignments returns the present fields in the fixed order
// title, description, due_date, status.
func (p Patch) Assignments() []Assignment {
	ordered := []struct {
		column string
		value  *string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"due_date", p.DueDate},
		{"status", p.Status},
	}

	assignments := make([]Assignment, 0, len(ordered))
	for _, f := range ordered {
		if f.value != nil {
			assignments = append(assignments, Assignment{Column: f.column, Value: *f.value})
		}
	}
	return assignments
}

// Fields returns the column names the patch updates.
func (p Patch) Fields() []string {
	assignments := p.Assignments()
	fields := make([]string, len(assignments))
	for i, a := range assignments {
		fields[i] = a.Column
	}
	return fields
}
