package activity

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/todo-list-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries kept by NewModule.
const DefaultCapacity = 100

// Entry is one recorded task mutation.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	TaskID    int64     `json:"task_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityModule records task events in a bounded, most-recent-last log.
type ActivityModule struct {
	entries  []Entry
	capacity int
	mu       sync.RWMutex
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.HealthCheckableModule = (*ActivityModule)(nil)

func NewModule() *ActivityModule {
	return NewModuleWithCapacity(DefaultCapacity)
}

func NewModuleWithCapacity(capacity int) *ActivityModule {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ActivityModule{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskStatusChangedV1, m.handleTaskStatusChanged, m); err != nil {
		return fmt.Errorf("failed to register TaskStatusChanged consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskEditedV1, m.handleTaskEdited, m); err != nil {
		return fmt.Errorf("failed to register TaskEdited consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: TaskCreated, TaskStatusChanged, TaskEdited, TaskDeleted")
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record("task_created", event.TaskID, event.CreatedAt,
		fmt.Sprintf("Task '%s' created, due %s", event.Title, event.DueDate))
	return nil
}

func (m *ActivityModule) handleTaskStatusChanged(_ context.Context, event events.TaskStatusChangedEvent, _ *mono.Msg) error {
	m.record("task_status_changed", event.TaskID, event.ChangedAt,
		fmt.Sprintf("Task %d marked %s", event.TaskID, event.Status))
	return nil
}

func (m *ActivityModule) handleTaskEdited(_ context.Context, event events.TaskEditedEvent, _ *mono.Msg) error {
	m.record("task_edited", event.TaskID, event.EditedAt,
		fmt.Sprintf("Task %d edited: %s", event.TaskID, strings.Join(event.Fields, ", ")))
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record("task_deleted", event.TaskID, event.DeletedAt,
		fmt.Sprintf("Task %d deleted", event.TaskID))
	return nil
}

func (m *ActivityModule) record(kind string, taskID int64, at time.Time, message string) {
	log.Printf("[activity] %s", message)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == m.capacity {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:len(m.entries)-1]
	}
	m.entries = append(m.entries, Entry{
		ID:        uuid.New().String(),
		Type:      kind,
		TaskID:    taskID,
		Message:   message,
		Timestamp: at,
	})
}

// Entries returns a copy of the recorded entries, oldest first.
func (m *ActivityModule) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

func (m *ActivityModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"entries":  len(m.Entries()),
			"capacity": m.capacity,
		},
	}
}

func (m *ActivityModule) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for task events")
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}
