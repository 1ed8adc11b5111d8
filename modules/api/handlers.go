package api

import (
	"errors"
	"log"

	domain "github.com/example/todo-list-demo/domain/task"
	"github.com/example/todo-list-demo/modules/task"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes on app.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	tasks := app.Group("/api/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Delete("/", m.deleteTask)
	tasks.Patch("/", m.patchTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"module": "api",
	})
}

// listTasks handles GET /api/tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	tasks, err := m.taskAdapter.ListTasks(c.UserContext())
	return respond(c, tasks, err)
}

// createTask handles POST /api/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	tasks, err := m.taskAdapter.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	return respond(c, tasks, err)
}

// deleteTask handles DELETE /api/tasks.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	var req DeleteTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	tasks, err := m.taskAdapter.DeleteTask(c.UserContext(), req.ID)
	return respond(c, tasks, err)
}

// patchTask handles PATCH /api/tasks. A body carrying only id and status is
// a status update; anything else is a partial edit.
func (m *APIModule) patchTask(c *fiber.Ctx) error {
	var req PatchTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	if req.isStatusUpdate() {
		tasks, err := m.taskAdapter.SetStatus(c.UserContext(), req.id(), *req.Status)
		return respond(c, tasks, err)
	}

	tasks, err := m.taskAdapter.EditTask(c.UserContext(), &task.EditTaskRequest{
		ID: req.id(),
		Patch: domain.Patch{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			Status:      req.Status,
		},
	})
	return respond(c, tasks, err)
}

// respond writes the snapshot as a JSON array, or the error as {error}.
func respond(c *fiber.Ctx, tasks []domain.Task, err error) error {
	if err != nil {
		var taskErr *domain.Error
		if errors.As(err, &taskErr) {
			if taskErr.Kind == domain.KindStorage {
				log.Printf("[api] Storage error: %v", taskErr)
			}
			return c.Status(taskErr.HTTPStatus()).JSON(ErrorResponse{Error: taskErr.Message})
		}
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	return c.JSON(tasks)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
}
