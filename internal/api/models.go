package api

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest defines the payload for POST /api/tasks.
// Both fields must be present; an empty string is a valid value.
type CreateTaskRequest struct {
	Title   *string `json:"title"   validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// UpdateTaskRequest defines the payload for PATCH /api/tasks/{id}.
// A field left out of the body (or sent as null) keeps its current value.
type UpdateTaskRequest struct {
	Title   domain.Optional[string] `json:"title"`
	Content domain.Optional[string] `json:"content"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskListResponse is the response body of GET /api/tasks.
type TaskListResponse struct {
	Tasks   []TaskResponse `json:"tasks"`
	Results int            `json:"results"`
}

// HealthResponse is the response body of the health check endpoint.
type HealthResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID.String(),
		Title:     task.Title,
		Content:   task.Content,
		CreatedAt: task.CreatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return TaskListResponse{Tasks: out, Results: len(out)}
}
