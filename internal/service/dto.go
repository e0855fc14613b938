// Package service exposes the application's use cases. Each service pairs a
// permission check with a command handler and projects entities into DTOs so
// callers never see domain types directly.
package service

import (
	"time"

	"projecthub/internal/model"
)

const dateLayout = "2006-01-02"

type ProjectDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	OwnerID     string `json:"owner_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewProjectDTO(p *model.Project) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		OwnerID:     p.OwnerID,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

type TaskDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	ProjectID   string `json:"project_id"`
	AssignedTo  string `json:"assigned_to"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewTaskDTO(t *model.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		ProjectID:   t.ProjectID,
		AssignedTo:  t.AssignedTo,
		DueDate:     formatDate(t.DueDate),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

type TeamDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
	MemberCount int      `json:"member_count"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func NewTeamDTO(t *model.Team) TeamDTO {
	members := make([]string, len(t.MemberIDs))
	copy(members, t.MemberIDs)
	return TeamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		MemberIDs:   members,
		MemberCount: len(members),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

type MilestoneDTO struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	IsCompleted bool   `json:"is_completed"`
	CompletedAt string `json:"completed_at"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewMilestoneDTO(m *model.Milestone) MilestoneDTO {
	completedAt := ""
	if m.CompletedAt != nil {
		completedAt = m.CompletedAt.Format(time.RFC3339)
	}
	return MilestoneDTO{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
		DueDate:     m.DueDate.Format(dateLayout),
		IsCompleted: m.IsCompleted,
		CompletedAt: completedAt,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
}

type TimeEntryDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	TaskID      string `json:"task_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Duration    int    `json:"duration"`
	IsRunning   bool   `json:"is_running"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewTimeEntryDTO(e *model.TimeEntry) TimeEntryDTO {
	endTime := ""
	if e.EndTime != nil {
		endTime = e.EndTime.Format(time.RFC3339)
	}
	return TimeEntryDTO{
		ID:          e.ID,
		UserID:      e.UserID,
		TaskID:      e.TaskID,
		StartTime:   e.StartTime.Format(time.RFC3339),
		EndTime:     endTime,
		Duration:    e.Duration,
		IsRunning:   e.IsRunning(),
		Description: e.Description,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func projectDTOs(projects []*model.Project) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, NewProjectDTO(p))
	}
	return out
}

func taskDTOs(tasks []*model.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskDTO(t))
	}
	return out
}

func milestoneDTOs(milestones []*model.Milestone) []MilestoneDTO {
	out := make([]MilestoneDTO, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, NewMilestoneDTO(m))
	}
	return out
}

func timeEntryDTOs(entries []*model.TimeEntry) []TimeEntryDTO {
	out := make([]TimeEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewTimeEntryDTO(e))
	}
	return out
}

func userDTOs(users []*model.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserDTO(u))
	}
	return out
}

func teamDTOs(teams []*model.Team) []TeamDTO {
	out := make([]TeamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, NewTeamDTO(t))
	}
	return out
}
