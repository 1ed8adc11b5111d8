// Package client builds requests against the /api/tasks resource. It never
// interprets responses: callers branch on the raw status and body.
package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/todo-list-demo/domain/task"
	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds a single round trip.
const DefaultTimeout = 10 * time.Second

// Response is the raw transport response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the server returned 200.
func (r *Response) OK() bool {
	return r.StatusCode == fiber.StatusOK
}

// EditFields carries the optional fields of a partial edit. Nil fields are
// left out of the request body.
type EditFields struct {
	Title       *string
	Description *string
	DueDate     *string
}

// Client talks to a running task server.
type Client struct {
	endpoint string
	timeout  time.Duration
}

// New creates a Client for the server at baseURL, e.g. http://localhost:3000.
func New(baseURL string) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/tasks",
		timeout:  DefaultTimeout,
	}
}

// Fetch lists all tasks.
func (c *Client) Fetch() (*Response, error) {
	return c.do(fiber.Get(c.endpoint), nil)
}

// Add creates a task. Status is always sent as Pending.
func (c *Client) Add(title, description, dueDate string) (*Response, error) {
	return c.do(fiber.Post(c.endpoint), fiber.Map{
		"title":       title,
		"description": description,
		"due_date":    dueDate,
		"status":      string(domain.StatusPending),
	})
}

// Delete removes the task with id.
func (c *Client) Delete(id int64) (*Response, error) {
	return c.do(fiber.Delete(c.endpoint), fiber.Map{"id": id})
}

// SetStatus overwrites the status of the task with id.
func (c *Client) SetStatus(id int64, status string) (*Response, error) {
	return c.do(fiber.Patch(c.endpoint), fiber.Map{"id": id, "status": status})
}

// Edit sends a partial edit with only the non-nil fields of fields.
func (c *Client) Edit(id int64, fields EditFields) (*Response, error) {
	body := fiber.Map{"id": id}
	if fields.Title != nil {
		body["title"] = *fields.Title
	}
	if fields.Description != nil {
		body["description"] = *fields.Description
	}
	if fields.DueDate != nil {
		body["due_date"] = *fields.DueDate
	}
	return c.do(fiber.Patch(c.endpoint), body)
}

func (c *Client) do(agent *fiber.Agent, body fiber.Map) (*Response, error) {
	agent.Timeout(c.timeout)
	if body != nil {
		agent.JSON(body)
	}

	code, data, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("request to %s failed: %w", c.endpoint, errors.Join(errs...))
	}
	return &Response{StatusCode: code, Body: data}, nil
}
