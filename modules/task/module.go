package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	domain "github.com/example/todo-list-demo/domain/task"
	"github.com/example/todo-list-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures the task module.
type Options struct {
	DBPath         string
	DBDebug        bool
	SeedDemoData   bool
	StrictDueDates bool
}

// TaskModule owns the task store and exposes the snapshot-returning task
// services over request-reply.
type TaskModule struct {
	db             *gorm.DB
	repo           *Repository
	eventBus       mono.EventBus
	reads          singleflight.Group
	dbPath         string
	dbDebug        bool
	seedDemoData   bool
	strictDueDates bool
	now            func() time.Time
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule(opts Options) *TaskModule {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = "data.db"
	}
	return &TaskModule{
		dbPath:         dbPath,
		dbDebug:        opts.DBDebug,
		seedDemoData:   opts.SeedDemoData,
		strictDueDates: opts.StrictDueDates,
		now:            time.Now,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// SetEventBus receives the framework event bus.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskStatusChangedV1.ToBase(),
		events.TaskEditedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
// Subjects are prefixed by the framework, e.g. "services.task.list".
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-status", json.Unmarshal, json.Marshal, m.setStatus,
	); err != nil {
		return fmt.Errorf("failed to register set-status service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "edit", json.Unmarshal, json.Marshal, m.editTask,
	); err != nil {
		return fmt.Errorf("failed to register edit service: %w", err)
	}

	log.Printf("[task] Registered services: services.task.{list,create,delete,set-status,edit}")
	return nil
}

// Start opens the SQLite database and creates the data table.
func (m *TaskModule) Start(ctx context.Context) error {
	log.Printf("[task] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if m.dbDebug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m.db = db
	m.repo = NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return err
	}

	if m.seedDemoData {
		n, err := m.repo.Seed(ctx, DemoTasks())
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[task] Seeded %d demo tasks", n)
		}
	}

	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}

	log.Println("[task] Module started successfully")
	return nil
}

// Stop closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	log.Println("[task] Closing database connection...")

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[task] Database connection closed")
	return nil
}

// Health pings the database.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// DemoTasks returns the sample rows inserted when demo seeding is enabled.
func DemoTasks() []domain.Task {
	return []domain.Task{
		{Title: "Grocery run", Description: "Grab milk, egg, onions and pasta", DueDate: "19/06/2025", Status: domain.StatusPending},
		{Title: "Book tickets", Description: "Melbourne to Hong Kong, preferably in the morning", DueDate: "02/05/2026", Status: domain.StatusPending},
		{Title: "Visit dentist", Description: "", DueDate: "28/03/2026", Status: domain.StatusPending},
	}
}
