// Package repository defines the persistence contracts consumed by the
// application layer. Finders return (nil, nil) when the id does not resolve;
// callers decide whether a miss is an error. Save is an upsert by id.
package repository

import (
	"context"
	"time"

	"projecthub/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	FindByRole(ctx context.Context, role string) ([]*model.User, error)
	FindActiveUsers(ctx context.Context) ([]*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	FindByID(ctx context.Context, id string) (*model.Project, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*model.Project, error)
	FindAll(ctx context.Context) ([]*model.Project, error)
	FindByStatus(ctx context.Context, status string) ([]*model.Project, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*model.Task, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*model.Task, error)
	FindByAssignedUser(ctx context.Context, userID string) ([]*model.Task, error)
	FindAll(ctx context.Context) ([]*model.Task, error)
	FindByStatus(ctx context.Context, status string) ([]*model.Task, error)
	FindByPriority(ctx context.Context, priority string) ([]*model.Task, error)
	FindOverdueTasks(ctx context.Context) ([]*model.Task, error)
	Save(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id string) error
}

type TeamRepository interface {
	FindByID(ctx context.Context, id string) (*model.Team, error)
	FindByName(ctx context.Context, name string) (*model.Team, error)
	FindByMemberID(ctx context.Context, userID string) ([]*model.Team, error)
	FindAll(ctx context.Context) ([]*model.Team, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, t *model.Team) error
	Delete(ctx context.Context, id string) error
}

type MilestoneRepository interface {
	FindByID(ctx context.Context, id string) (*model.Milestone, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*model.Milestone, error)
	FindAll(ctx context.Context) ([]*model.Milestone, error)
	FindCompletedMilestones(ctx context.Context, projectID string) ([]*model.Milestone, error)
	// FindUpcomingMilestones returns incomplete milestones due after now,
	// sorted by due date ascending.
	FindUpcomingMilestones(ctx context.Context, projectID string) ([]*model.Milestone, error)
	Save(ctx context.Context, m *model.Milestone) error
	Delete(ctx context.Context, id string) error
}

type TimeEntryRepository interface {
	FindByID(ctx context.Context, id string) (*model.TimeEntry, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.TimeEntry, error)
	FindByTaskID(ctx context.Context, taskID string) ([]*model.TimeEntry, error)
	FindAll(ctx context.Context) ([]*model.TimeEntry, error)
	// FindActiveTimeEntry returns the user's running entry, if any. A user
	// has at most one entry with a null end time at a time.
	FindActiveTimeEntry(ctx context.Context, userID string) (*model.TimeEntry, error)
	TotalTimeByTask(ctx context.Context, taskID string) (int, error)
	TotalTimeByUser(ctx context.Context, userID string) (int, error)
	FindByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*model.TimeEntry, error)
	Save(ctx context.Context, e *model.TimeEntry) error
	Delete(ctx context.Context, id string) error
}
