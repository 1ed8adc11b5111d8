package task

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/example/todo-list-demo/domain/task"
	"gorm.io/gorm"
)

// Repository provides access to the data table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the data table if it does not exist.
func (r *Repository) Migrate() error {
	if err := r.db.Exec(domain.Schema).Error; err != nil {
		return fmt.Errorf("failed to create data table: %w", err)
	}
	return nil
}

// FindAll reads every task. The store gives no ordering guarantee.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Count returns the number of stored tasks.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a task and fills in its store-assigned ID.
func (r *Repository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Delete removes a task by ID. Deleting a missing ID is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM data WHERE id = ?", id).Error
}

// UpdateStatus overwrites the status of a task.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Exec("UPDATE data SET status = ? WHERE id = ?", status, id).Error
}

// ApplyPatch runs a single UPDATE containing only the fields present in the
// patch, in patch order, with the id predicate last.
func (r *Repository) ApplyPatch(ctx context.Context, id int64, patch domain.Patch) error {
	assignments := patch.Assignments()
	if len(assignments) == 0 {
		return domain.NewError(domain.KindNoFieldsProvided, domain.MsgNoFieldsToUpdate)
	}

	sets := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	args = append(args, id)

	sql := "UPDATE data SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	return r.db.WithContext(ctx).Exec(sql, args...).Error
}

// Seed inserts the given tasks when the table is empty. It returns the
// number of rows inserted.
func (r *Repository) Seed(ctx context.Context, tasks []domain.Task) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range tasks {
			seeded := tasks[i]
			seeded.ID = 0
			if err := tx.Create(&seeded).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return 0, fmt.Errorf("failed to seed tasks: %w", err)
	}

	return len(tasks), nil
}
