// Package event defines the domain events emitted by command handlers and
// the dispatcher they hand them to. Events are published after a successful
// save, never before, and dispatch is fire-and-forget: handlers do not act
// on dispatch failure.
package event

import (
	"context"
	"time"
)

// Event types double as routing keys on the events exchange.
const (
	TypeProjectCreated    = "project.created"
	TypeProjectUpdated    = "project.updated"
	TypeProjectCompleted  = "project.completed"
	TypeTaskCreated       = "task.created"
	TypeTaskAssigned      = "task.assigned"
	TypeTaskStatusChanged = "task.status_changed"
)

type Event interface {
	EventType() string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

type ProjectCreated struct {
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	OwnerID     string    `json:"owner_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewProjectCreated(projectID, projectName, ownerID string) ProjectCreated {
	return ProjectCreated{
		ProjectID:   projectID,
		ProjectName: projectName,
		OwnerID:     ownerID,
		OccurredAt:  time.Now(),
	}
}

func (ProjectCreated) EventType() string { return TypeProjectCreated }

type ProjectUpdated struct {
	ProjectID   string            `json:"project_id"`
	ProjectName string            `json:"project_name"`
	UpdatedBy   string            `json:"updated_by"`
	Changes     map[string]string `json:"changes"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

func NewProjectUpdated(projectID, projectName, updatedBy string, changes map[string]string) ProjectUpdated {
	return ProjectUpdated{
		ProjectID:   projectID,
		ProjectName: projectName,
		UpdatedBy:   updatedBy,
		Changes:     changes,
		OccurredAt:  time.Now(),
	}
}

func (ProjectUpdated) EventType() string { return TypeProjectUpdated }

type ProjectCompleted struct {
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	CompletedBy string    `json:"completed_by"`
	TotalTasks  int       `json:"total_tasks"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewProjectCompleted(projectID, projectName, completedBy string, totalTasks int) ProjectCompleted {
	return ProjectCompleted{
		ProjectID:   projectID,
		ProjectName: projectName,
		CompletedBy: completedBy,
		TotalTasks:  totalTasks,
		OccurredAt:  time.Now(),
	}
}

func (ProjectCompleted) EventType() string { return TypeProjectCompleted }

type TaskCreated struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	ProjectID  string    `json:"project_id"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewTaskCreated(taskID, title, projectID, assignedTo string) TaskCreated {
	return TaskCreated{
		TaskID:     taskID,
		Title:      title,
		ProjectID:  projectID,
		AssignedTo: assignedTo,
		OccurredAt: time.Now(),
	}
}

func (TaskCreated) EventType() string { return TypeTaskCreated }

type TaskAssigned struct {
	TaskID     string    `json:"task_id"`
	TaskTitle  string    `json:"task_title"`
	AssignedTo string    `json:"assigned_to"`
	AssignedBy string    `json:"assigned_by"`
	ProjectID  string    `json:"project_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewTaskAssigned(taskID, taskTitle, assignedTo, assignedBy, projectID string) TaskAssigned {
	return TaskAssigned{
		TaskID:     taskID,
		TaskTitle:  taskTitle,
		AssignedTo: assignedTo,
		AssignedBy: assignedBy,
		ProjectID:  projectID,
		OccurredAt: time.Now(),
	}
}

func (TaskAssigned) EventType() string { return TypeTaskAssigned }

type TaskStatusChanged struct {
	TaskID     string    `json:"task_id"`
	TaskTitle  string    `json:"task_title"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewTaskStatusChanged(taskID, taskTitle, oldStatus, newStatus, changedBy string) TaskStatusChanged {
	return TaskStatusChanged{
		TaskID:     taskID,
		TaskTitle:  taskTitle,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		ChangedBy:  changedBy,
		OccurredAt: time.Now(),
	}
}

func (TaskStatusChanged) EventType() string { return TypeTaskStatusChanged }
