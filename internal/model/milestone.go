package model

import "time"

type Milestone struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewMilestone(id, projectID, name, description string, dueDate time.Time) *Milestone {
	now := time.Now()
	return &Milestone{
		ID:          id,
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (m *Milestone) UpdateName(name string) {
	m.Name = name
	m.touch()
}

func (m *Milestone) UpdateDescription(description string) {
	m.Description = description
	m.touch()
}

func (m *Milestone) UpdateDueDate(dueDate time.Time) {
	m.DueDate = dueDate
	m.touch()
}

// MarkAsCompleted records the completion time. Calling it on an already
// completed milestone is a no-op, so CompletedAt keeps its first value.
func (m *Milestone) MarkAsCompleted() {
	if m.IsCompleted {
		return
	}
	now := time.Now()
	m.IsCompleted = true
	m.CompletedAt = &now
	m.touch()
}

// MarkAsIncomplete clears the completion state. No-op when not completed.
func (m *Milestone) MarkAsIncomplete() {
	if !m.IsCompleted {
		return
	}
	m.IsCompleted = false
	m.CompletedAt = nil
	m.touch()
}

func (m *Milestone) touch() {
	m.UpdatedAt = time.Now()
}
