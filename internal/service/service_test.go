package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/event"
	"projecthub/internal/model"
	"projecthub/internal/permission"
	"projecthub/internal/repository/memory"
	"projecthub/internal/service"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(_ context.Context, _ event.Event) error { return nil }

type projectFixture struct {
	users    *memory.UserRepository
	projects *memory.ProjectRepository
	tasks    *memory.TaskRepository
	svc      *service.ProjectService
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	users := memory.NewUserRepository()
	projects := memory.NewProjectRepository()
	tasks := memory.NewTaskRepository()
	log := zap.NewNop()
	eval := permission.NewEvaluator(users, projects, tasks, log)
	svc := service.NewProjectService(
		projects,
		eval,
		command.NewCreateProjectHandler(projects, nopDispatcher{}, log),
		command.NewUpdateProjectHandler(projects, nopDispatcher{}, log),
		command.NewCompleteProjectHandler(projects, tasks, nopDispatcher{}, log),
		log,
	)
	return &projectFixture{users: users, projects: projects, tasks: tasks, svc: svc}
}

func TestProjectCreateAndGetByOwner(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	if err := f.users.Save(ctx, model.NewUser("u1", "Dana", "dana@example.com", model.RoleProjectManager, "")); err != nil {
		t.Fatal(err)
	}
	if err := f.users.Save(ctx, model.NewUser("u2", "Rey", "rey@example.com", model.RoleClient, "")); err != nil {
		t.Fatal(err)
	}

	created, err := f.svc.Create(ctx, "u1", command.CreateProjectCommand{
		Name:    "Apollo",
		Status:  model.ProjectStatusPlanning,
		OwnerID: "u1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Name != "Apollo" || created.Status != model.ProjectStatusPlanning {
		t.Errorf("DTO = %+v, want Apollo/planning", created)
	}

	got, err := f.svc.Get(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("owner Get failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get returned %q, want %q", got.ID, created.ID)
	}

	// A client with no task assignment in the project is denied.
	_, err = f.svc.Get(ctx, "u2", created.ID)
	if !apperr.IsUnauthorized(err) {
		t.Errorf("client Get err = %v, want Unauthorized", err)
	}
}

func TestProjectCreateDeniedForTeamMember(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	if err := f.users.Save(ctx, model.NewUser("u1", "Dana", "dana@example.com", model.RoleTeamMember, "")); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Create(ctx, "u1", command.CreateProjectCommand{Name: "Apollo", Status: model.ProjectStatusPlanning, OwnerID: "u1"})
	if !apperr.IsUnauthorized(err) {
		t.Errorf("err = %v, want Unauthorized", err)
	}
}

func newTrackingFixture(t *testing.T) (*memory.TimeEntryRepository, *memory.TaskRepository, *service.TimeTrackingService) {
	t.Helper()
	entries := memory.NewTimeEntryRepository()
	tasks := memory.NewTaskRepository()
	svc := service.NewTimeTrackingService(
		entries,
		command.NewCreateTimeEntryHandler(entries, tasks),
		command.NewUpdateTimeEntryHandler(entries),
		zap.NewNop(),
	)
	return entries, tasks, svc
}

func seedTask(t *testing.T, tasks *memory.TaskRepository, id string) {
	t.Helper()
	task := model.NewTask(id, "Task "+id, "", model.TaskStatusTodo, model.TaskPriorityMedium, "p1", "", nil)
	if err := tasks.Save(context.Background(), task); err != nil {
		t.Fatal(err)
	}
}

func TestStartRefusedWhileEntryActive(t *testing.T) {
	ctx := context.Background()
	entries, tasks, svc := newTrackingFixture(t)
	seedTask(t, tasks, "t1")
	seedTask(t, tasks, "t2")

	first, err := svc.Start(ctx, "u1", "t1", "morning work")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Start(ctx, "u1", "t2", "second timer")
	if !apperr.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}

	// The running entry is untouched and no new entry was created.
	active, err := entries.FindActiveTimeEntry(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != first.ID || active.TaskID != "t1" {
		t.Errorf("active entry = %+v, want the original on t1", active)
	}
	all, err := entries.FindByUserID(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(all))
	}
}

func TestLogRefusedWhileEntryActive(t *testing.T) {
	ctx := context.Background()
	entries, tasks, svc := newTrackingFixture(t)
	seedTask(t, tasks, "t1")
	seedTask(t, tasks, "t2")

	if _, err := svc.Start(ctx, "u1", "t1", ""); err != nil {
		t.Fatal(err)
	}

	// Logging without an end time is opening a second timer and is refused
	// just like Start.
	_, err := svc.Log(ctx, command.CreateTimeEntryCommand{
		UserID:    "u1",
		TaskID:    "t2",
		StartTime: time.Now(),
	})
	if !apperr.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}
	all, err := entries.FindByUserID(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(all))
	}
}

func TestStartStopLifecycle(t *testing.T) {
	ctx := context.Background()
	_, tasks, svc := newTrackingFixture(t)
	seedTask(t, tasks, "t1")

	started, err := svc.Start(ctx, "u1", "t1", "")
	if err != nil {
		t.Fatal(err)
	}
	if !started.IsRunning {
		t.Error("fresh entry should be running")
	}

	stopped, err := svc.Stop(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if stopped.IsRunning {
		t.Error("stopped entry should not be running")
	}
	if stopped.ID != started.ID {
		t.Errorf("stopped %q, want %q", stopped.ID, started.ID)
	}

	// A second stop finds nothing running.
	_, err = svc.Stop(ctx, "u1")
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestTaskCreateOpenToAnyUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	projects := memory.NewProjectRepository()
	tasks := memory.NewTaskRepository()
	log := zap.NewNop()
	eval := permission.NewEvaluator(users, projects, tasks, log)
	svc := service.NewTaskService(
		tasks,
		eval,
		command.NewCreateTaskHandler(tasks, projects, nopDispatcher{}, log),
		command.NewUpdateTaskHandler(tasks),
		command.NewUpdateTaskStatusHandler(tasks, nopDispatcher{}, log),
		command.NewAssignTaskHandler(tasks, users, nopDispatcher{}, log),
	)

	if err := users.Save(ctx, model.NewUser("u1", "Dana", "dana@example.com", model.RoleProjectManager, "")); err != nil {
		t.Fatal(err)
	}
	if err := users.Save(ctx, model.NewUser("u2", "Rey", "rey@example.com", model.RoleTeamMember, "")); err != nil {
		t.Fatal(err)
	}
	if err := projects.Save(ctx, model.NewProject("p1", "Apollo", "", model.ProjectStatusInProgress, "u1", nil, nil)); err != nil {
		t.Fatal(err)
	}

	// A team member with no stake in the project can still open a task in
	// it; only the mutating task operations are permission gated.
	created, err := svc.Create(ctx, command.CreateTaskCommand{
		Title:     "Triage bug",
		Status:    model.TaskStatusTodo,
		Priority:  model.TaskPriorityMedium,
		ProjectID: "p1",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Managing the unassigned task is where the member is turned away.
	_, err = svc.UpdateStatus(ctx, "u2", created.ID, model.TaskStatusCompleted)
	if !apperr.IsUnauthorized(err) {
		t.Errorf("err = %v, want Unauthorized", err)
	}
}

func newMilestoneFixture(t *testing.T) (*memory.UserRepository, *memory.ProjectRepository, *service.MilestoneService) {
	t.Helper()
	users := memory.NewUserRepository()
	projects := memory.NewProjectRepository()
	tasks := memory.NewTaskRepository()
	milestones := memory.NewMilestoneRepository()
	eval := permission.NewEvaluator(users, projects, tasks, zap.NewNop())
	svc := service.NewMilestoneService(
		milestones,
		eval,
		command.NewCreateMilestoneHandler(milestones, projects),
		command.NewUpdateMilestoneHandler(milestones),
	)
	return users, projects, svc
}

func TestMilestoneMutationRequiresProjectRights(t *testing.T) {
	ctx := context.Background()
	users, projects, svc := newMilestoneFixture(t)

	if err := users.Save(ctx, model.NewUser("u1", "Dana", "dana@example.com", model.RoleTeamMember, "")); err != nil {
		t.Fatal(err)
	}
	if err := users.Save(ctx, model.NewUser("u2", "Rey", "rey@example.com", model.RoleTeamMember, "")); err != nil {
		t.Fatal(err)
	}
	if err := projects.Save(ctx, model.NewProject("p1", "Apollo", "", model.ProjectStatusInProgress, "u1", nil, nil)); err != nil {
		t.Fatal(err)
	}

	created, err := svc.Create(ctx, "u1", command.CreateMilestoneCommand{
		ProjectID: "p1",
		Name:      "Beta",
		DueDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}

	// The same rights that gate creation gate update and delete.
	name := "Beta 2"
	_, err = svc.Update(ctx, "u2", command.UpdateMilestoneCommand{MilestoneID: created.ID, Name: &name})
	if !apperr.IsUnauthorized(err) {
		t.Errorf("update err = %v, want Unauthorized", err)
	}
	if err := svc.Delete(ctx, "u2", created.ID); !apperr.IsUnauthorized(err) {
		t.Errorf("delete err = %v, want Unauthorized", err)
	}

	updated, err := svc.Update(ctx, "u1", command.UpdateMilestoneCommand{MilestoneID: created.ID, Name: &name})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != "Beta 2" {
		t.Errorf("Name = %q, want Beta 2", updated.Name)
	}
	if err := svc.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestDTODateFormatting(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	project := model.NewProject("p1", "Apollo", "", model.ProjectStatusInProgress, "u1", &start, nil)

	dto := service.NewProjectDTO(project)
	if dto.StartDate != "2026-04-01" {
		t.Errorf("StartDate = %q, want 2026-04-01", dto.StartDate)
	}
	if dto.EndDate != "" {
		t.Errorf("EndDate = %q, want empty", dto.EndDate)
	}
	if _, err := time.Parse(time.RFC3339, dto.CreatedAt); err != nil {
		t.Errorf("CreatedAt %q is not RFC 3339: %v", dto.CreatedAt, err)
	}
}

func TestMilestoneDTOFormatting(t *testing.T) {
	due := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	m := model.NewMilestone("m1", "p1", "Beta", "", due)

	dto := service.NewMilestoneDTO(m)
	if dto.DueDate != "2026-05-15" {
		t.Errorf("DueDate = %q, want 2026-05-15", dto.DueDate)
	}
	if dto.CompletedAt != "" {
		t.Errorf("CompletedAt = %q, want empty while incomplete", dto.CompletedAt)
	}

	m.MarkAsCompleted()
	dto = service.NewMilestoneDTO(m)
	if dto.CompletedAt == "" {
		t.Error("CompletedAt should be set after completion")
	}
}
