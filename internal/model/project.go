package model

import "time"

// Project status values.
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

var projectStatuses = map[string]struct{}{
	ProjectStatusPlanning:   {},
	ProjectStatusInProgress: {},
	ProjectStatusOnHold:     {},
	ProjectStatusCompleted:  {},
	ProjectStatusCancelled:  {},
}

func IsValidProjectStatus(status string) bool {
	_, ok := projectStatuses[status]
	return ok
}

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	OwnerID     string     `json:"owner_id"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewProject(id, name, description, status, ownerID string, startDate, endDate *time.Time) *Project {
	now := time.Now()
	return &Project{
		ID:          id,
		Name:        name,
		Description: description,
		Status:      status,
		OwnerID:     ownerID,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Project) UpdateName(name string) {
	p.Name = name
	p.touch()
}

func (p *Project) UpdateDescription(description string) {
	p.Description = description
	p.touch()
}

func (p *Project) UpdateStatus(status string) {
	p.Status = status
	p.touch()
}

func (p *Project) SetDates(startDate, endDate *time.Time) {
	p.StartDate = startDate
	p.EndDate = endDate
	p.touch()
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now()
}
