package model

import "time"

// Task status values.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusInReview   = "in_review"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task priority values.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

var taskStatuses = map[string]struct{}{
	TaskStatusTodo:       {},
	TaskStatusInProgress: {},
	TaskStatusInReview:   {},
	TaskStatusCompleted:  {},
	TaskStatusCancelled:  {},
}

var taskPriorities = map[string]struct{}{
	TaskPriorityLow:    {},
	TaskPriorityMedium: {},
	TaskPriorityHigh:   {},
	TaskPriorityUrgent: {},
}

func IsValidTaskStatus(status string) bool {
	_, ok := taskStatuses[status]
	return ok
}

func IsValidTaskPriority(priority string) bool {
	_, ok := taskPriorities[priority]
	return ok
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ProjectID   string     `json:"project_id"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTask(id, title, description, status, priority, projectID, assignedTo string, dueDate *time.Time) *Task {
	now := time.Now()
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		ProjectID:   projectID,
		AssignedTo:  assignedTo,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (t *Task) UpdateTitle(title string) {
	t.Title = title
	t.touch()
}

func (t *Task) UpdateDescription(description string) {
	t.Description = description
	t.touch()
}

func (t *Task) UpdateStatus(status string) {
	t.Status = status
	t.touch()
}

func (t *Task) UpdatePriority(priority string) {
	t.Priority = priority
	t.touch()
}

// AssignTo sets the assignee. An empty userID unassigns the task.
func (t *Task) AssignTo(userID string) {
	t.AssignedTo = userID
	t.touch()
}

func (t *Task) SetDueDate(dueDate *time.Time) {
	t.DueDate = dueDate
	t.touch()
}

func (t *Task) touch() {
	t.UpdatedAt = time.Now()
}
