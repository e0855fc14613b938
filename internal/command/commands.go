// Package command models every write operation as an immutable command value
// dispatched to exactly one handler. Handlers load the referenced entities,
// mutate them through their methods, persist exactly once, and emit at most
// one domain event after the save. Input shape (required fields, enum
// membership, date formats) is validated before a command is built; handlers
// still verify that every referenced id resolves.
package command

import "time"

type CreateProjectCommand struct {
	Name        string
	Description string
	Status      string
	OwnerID     string
	StartDate   *time.Time
	EndDate     *time.Time
}

type UpdateProjectCommand struct {
	ProjectID   string
	Name        *string
	Description *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
	UpdatedBy   string
}

type CompleteProjectCommand struct {
	ProjectID   string
	CompletedBy string
}

type CreateTaskCommand struct {
	Title       string
	Description string
	Status      string
	Priority    string
	ProjectID   string
	AssignedTo  string
	DueDate     *time.Time
}

type UpdateTaskCommand struct {
	TaskID      string
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

type UpdateTaskStatusCommand struct {
	TaskID    string
	NewStatus string
	UpdatedBy string
}

type AssignTaskCommand struct {
	TaskID     string
	UserID     string
	AssignedBy string
}

type CreateTeamCommand struct {
	Name        string
	Description string
}

type UpdateTeamCommand struct {
	TeamID      string
	Name        *string
	Description *string
}

type CreateMilestoneCommand struct {
	ProjectID   string
	Name        string
	Description string
	DueDate     time.Time
	IsCompleted bool
}

type UpdateMilestoneCommand struct {
	MilestoneID string
	Name        *string
	Description *string
	DueDate     *time.Time
	IsCompleted *bool
}

type CreateTimeEntryCommand struct {
	UserID      string
	TaskID      string
	StartTime   time.Time
	Description string
	EndTime     *time.Time
}

type UpdateTimeEntryCommand struct {
	EntryID     string
	Description *string
	EndTime     *time.Time
}

type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type CreateUserCommand struct {
	Name  string
	Email string
	Role  string
}

type LoginUserCommand struct {
	Email      string
	Password   string
	DeviceName string
}
