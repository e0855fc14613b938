package command_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/event"
	"projecthub/internal/model"
	"projecthub/internal/repository/memory"
)

// captureDispatcher records every dispatched event.
type captureDispatcher struct {
	events []event.Event
}

func (d *captureDispatcher) Dispatch(_ context.Context, e event.Event) error {
	d.events = append(d.events, e)
	return nil
}

func seedProject(t *testing.T, projects *memory.ProjectRepository, id, ownerID string) {
	t.Helper()
	p := model.NewProject(id, "Project "+id, "", model.ProjectStatusPlanning, ownerID, nil, nil)
	if err := projects.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
}

func TestCreateTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	tasks := memory.NewTaskRepository()
	projects := memory.NewProjectRepository()
	dispatcher := &captureDispatcher{}
	seedProject(t, projects, "p1", "u1")

	handler := command.NewCreateTaskHandler(tasks, projects, dispatcher, zap.NewNop())
	created, err := handler.Handle(ctx, command.CreateTaskCommand{
		Title:      "Write docs",
		Status:     model.TaskStatusTodo,
		Priority:   model.TaskPriorityHigh,
		ProjectID:  "p1",
		AssignedTo: "u2",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := tasks.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("created task not found in repository")
	}
	if got.Title != "Write docs" || got.Status != model.TaskStatusTodo ||
		got.Priority != model.TaskPriorityHigh || got.ProjectID != "p1" || got.AssignedTo != "u2" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if len(dispatcher.events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(dispatcher.events))
	}
	if _, ok := dispatcher.events[0].(event.TaskCreated); !ok {
		t.Errorf("event = %T, want TaskCreated", dispatcher.events[0])
	}
}

func TestCreateTaskUnknownProject(t *testing.T) {
	dispatcher := &captureDispatcher{}
	handler := command.NewCreateTaskHandler(memory.NewTaskRepository(), memory.NewProjectRepository(), dispatcher, zap.NewNop())

	_, err := handler.Handle(context.Background(), command.CreateTaskCommand{
		Title:     "Orphan",
		Status:    model.TaskStatusTodo,
		Priority:  model.TaskPriorityLow,
		ProjectID: "missing",
	})
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
	if len(dispatcher.events) != 0 {
		t.Errorf("no event should be emitted on failure, got %d", len(dispatcher.events))
	}
}

func TestAssignTaskEmitsEvent(t *testing.T) {
	ctx := context.Background()
	tasks := memory.NewTaskRepository()
	users := memory.NewUserRepository()
	dispatcher := &captureDispatcher{}

	if err := users.Save(ctx, model.NewUser("u2", "Dana", "dana@example.com", model.RoleTeamMember, "")); err != nil {
		t.Fatal(err)
	}
	task := model.NewTask("t1", "Review PR", "", model.TaskStatusTodo, model.TaskPriorityMedium, "p1", "", nil)
	if err := tasks.Save(ctx, task); err != nil {
		t.Fatal(err)
	}

	handler := command.NewAssignTaskHandler(tasks, users, dispatcher, zap.NewNop())
	updated, err := handler.Handle(ctx, command.AssignTaskCommand{
		TaskID:     "t1",
		UserID:     "u2",
		AssignedBy: "u1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if updated.AssignedTo != "u2" {
		t.Errorf("AssignedTo = %q, want %q", updated.AssignedTo, "u2")
	}
	if len(dispatcher.events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(dispatcher.events))
	}
	assigned, ok := dispatcher.events[0].(event.TaskAssigned)
	if !ok {
		t.Fatalf("event = %T, want TaskAssigned", dispatcher.events[0])
	}
	if assigned.AssignedTo != "u2" || assigned.AssignedBy != "u1" {
		t.Errorf("event = %+v, want assigned_to=u2 assigned_by=u1", assigned)
	}
}

func TestAssignTaskUnknownUser(t *testing.T) {
	ctx := context.Background()
	tasks := memory.NewTaskRepository()
	task := model.NewTask("t1", "Review PR", "", model.TaskStatusTodo, model.TaskPriorityMedium, "p1", "", nil)
	if err := tasks.Save(ctx, task); err != nil {
		t.Fatal(err)
	}

	handler := command.NewAssignTaskHandler(tasks, memory.NewUserRepository(), &captureDispatcher{}, zap.NewNop())
	_, err := handler.Handle(ctx, command.AssignTaskCommand{TaskID: "t1", UserID: "ghost", AssignedBy: "u1"})
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestUpdateTaskStatusEmitsOldStatus(t *testing.T) {
	ctx := context.Background()

	for _, oldStatus := range []string{model.TaskStatusTodo, model.TaskStatusInReview} {
		tasks := memory.NewTaskRepository()
		dispatcher := &captureDispatcher{}
		task := model.NewTask("t1", "Review PR", "", oldStatus, model.TaskPriorityMedium, "p1", "", nil)
		if err := tasks.Save(ctx, task); err != nil {
			t.Fatal(err)
		}

		handler := command.NewUpdateTaskStatusHandler(tasks, dispatcher, zap.NewNop())
		_, err := handler.Handle(ctx, command.UpdateTaskStatusCommand{
			TaskID:    "t1",
			NewStatus: model.TaskStatusCompleted,
			UpdatedBy: "u1",
		})
		if err != nil {
			t.Fatal(err)
		}

		changed, ok := dispatcher.events[0].(event.TaskStatusChanged)
		if !ok {
			t.Fatalf("event = %T, want TaskStatusChanged", dispatcher.events[0])
		}
		if changed.OldStatus != oldStatus {
			t.Errorf("OldStatus = %q, want %q", changed.OldStatus, oldStatus)
		}
		if changed.NewStatus != model.TaskStatusCompleted {
			t.Errorf("NewStatus = %q, want %q", changed.NewStatus, model.TaskStatusCompleted)
		}
	}
}

func TestCompleteProjectEmitsTaskCount(t *testing.T) {
	ctx := context.Background()
	projects := memory.NewProjectRepository()
	tasks := memory.NewTaskRepository()
	dispatcher := &captureDispatcher{}
	seedProject(t, projects, "p1", "u1")

	for _, id := range []string{"t1", "t2", "t3"} {
		task := model.NewTask(id, "Task "+id, "", model.TaskStatusTodo, model.TaskPriorityLow, "p1", "", nil)
		if err := tasks.Save(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	handler := command.NewCompleteProjectHandler(projects, tasks, dispatcher, zap.NewNop())
	project, err := handler.Handle(ctx, command.CompleteProjectCommand{ProjectID: "p1", CompletedBy: "u1"})
	if err != nil {
		t.Fatal(err)
	}

	if project.Status != model.ProjectStatusCompleted {
		t.Errorf("Status = %q, want %q", project.Status, model.ProjectStatusCompleted)
	}
	completed, ok := dispatcher.events[0].(event.ProjectCompleted)
	if !ok {
		t.Fatalf("event = %T, want ProjectCompleted", dispatcher.events[0])
	}
	if completed.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, want 3", completed.TotalTasks)
	}
	if completed.CompletedBy != "u1" {
		t.Errorf("CompletedBy = %q, want u1", completed.CompletedBy)
	}
}

func TestUpdateProjectCarriesActor(t *testing.T) {
	ctx := context.Background()
	projects := memory.NewProjectRepository()
	dispatcher := &captureDispatcher{}
	seedProject(t, projects, "p1", "u1")

	name := "Renamed"
	handler := command.NewUpdateProjectHandler(projects, dispatcher, zap.NewNop())
	_, err := handler.Handle(ctx, command.UpdateProjectCommand{
		ProjectID: "p1",
		Name:      &name,
		UpdatedBy: "u7",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, ok := dispatcher.events[0].(event.ProjectUpdated)
	if !ok {
		t.Fatalf("event = %T, want ProjectUpdated", dispatcher.events[0])
	}
	if updated.UpdatedBy != "u7" {
		t.Errorf("UpdatedBy = %q, want u7", updated.UpdatedBy)
	}
	if _, renamed := updated.Changes["name"]; !renamed {
		t.Errorf("Changes = %v, want a name entry", updated.Changes)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	if err := users.Save(ctx, model.NewUser("u1", "Dana", "dana@example.com", model.RoleTeamMember, "x")); err != nil {
		t.Fatal(err)
	}

	handler := command.NewRegisterUserHandler(users, fakeHasher{})
	_, err := handler.Handle(ctx, command.RegisterUserCommand{
		Name:     "Other Dana",
		Email:    "dana@example.com",
		Password: "s3cret-pass",
	})
	if !apperr.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}

	all, err := users.FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("len(users) = %d, want 1 (no new row on conflict)", len(all))
	}
}

func TestRegisterUserDefaultsRole(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()

	handler := command.NewRegisterUserHandler(users, fakeHasher{})
	user, err := handler.Handle(ctx, command.RegisterUserCommand{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != model.RoleTeamMember {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleTeamMember)
	}
	if user.PasswordHash != "hashed:s3cret-pass" {
		t.Errorf("PasswordHash = %q, want hashed value", user.PasswordHash)
	}
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	if err := users.Save(ctx, model.NewUser("u1", "Dana", "dana@example.com", model.RoleTeamMember, "hashed:s3cret-pass")); err != nil {
		t.Fatal(err)
	}
	inactive := model.NewUser("u2", "Rey", "rey@example.com", model.RoleTeamMember, "hashed:s3cret-pass")
	inactive.Deactivate()
	if err := users.Save(ctx, inactive); err != nil {
		t.Fatal(err)
	}

	handler := command.NewLoginUserHandler(users, fakeHasher{}, fakeIssuer{})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "dana@example.com", "s3cret-pass", false},
		{"wrong password", "dana@example.com", "nope", true},
		{"unknown email", "nobody@example.com", "s3cret-pass", true},
		{"inactive account", "rey@example.com", "s3cret-pass", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler.Handle(ctx, command.LoginUserCommand{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				if !apperr.IsUnauthorized(err) {
					t.Errorf("err = %v, want Unauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if result.Token == "" {
				t.Error("expected a token on successful login")
			}
		})
	}
}

func TestCreateTimeEntryUnknownTask(t *testing.T) {
	handler := command.NewCreateTimeEntryHandler(memory.NewTimeEntryRepository(), memory.NewTaskRepository())
	_, err := handler.Handle(context.Background(), command.CreateTimeEntryCommand{
		UserID:    "u1",
		TaskID:    "missing",
		StartTime: time.Now(),
	})
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestCreateTimeEntrySecondRunningEntryRefused(t *testing.T) {
	ctx := context.Background()
	entries := memory.NewTimeEntryRepository()
	tasks := memory.NewTaskRepository()
	for _, id := range []string{"t1", "t2"} {
		task := model.NewTask(id, "Task "+id, "", model.TaskStatusTodo, model.TaskPriorityMedium, "p1", "", nil)
		if err := tasks.Save(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	handler := command.NewCreateTimeEntryHandler(entries, tasks)
	if _, err := handler.Handle(ctx, command.CreateTimeEntryCommand{
		UserID:    "u1",
		TaskID:    "t1",
		StartTime: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	// A second entry without an end time would give the user two running
	// timers, whichever path creates it.
	_, err := handler.Handle(ctx, command.CreateTimeEntryCommand{
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

	// A completed entry is fine while a timer runs, and another user is
	// unaffected.
	start := time.Now().Add(-2 * time.Hour)
	end := start.Add(time.Hour)
	if _, err := handler.Handle(ctx, command.CreateTimeEntryCommand{
		UserID:    "u1",
		TaskID:    "t2",
		StartTime: start,
		EndTime:   &end,
	}); err != nil {
		t.Errorf("completed entry refused: %v", err)
	}
	if _, err := handler.Handle(ctx, command.CreateTimeEntryCommand{
		UserID:    "u2",
		TaskID:    "t2",
		StartTime: time.Now(),
	}); err != nil {
		t.Errorf("other user's timer refused: %v", err)
	}
}

func TestCreateTimeEntryEndBeforeStart(t *testing.T) {
	ctx := context.Background()
	tasks := memory.NewTaskRepository()
	task := model.NewTask("t1", "Task t1", "", model.TaskStatusTodo, model.TaskPriorityMedium, "p1", "", nil)
	if err := tasks.Save(ctx, task); err != nil {
		t.Fatal(err)
	}

	handler := command.NewCreateTimeEntryHandler(memory.NewTimeEntryRepository(), tasks)
	start := time.Now()
	end := start.Add(-time.Hour)
	_, err := handler.Handle(ctx, command.CreateTimeEntryCommand{
		UserID:    "u1",
		TaskID:    "t1",
		StartTime: start,
		EndTime:   &end,
	})
	if !apperr.IsValidation(err) {
		t.Errorf("err = %v, want Validation", err)
	}
}

func TestUpdateTimeEntryEndBeforeStart(t *testing.T) {
	ctx := context.Background()
	entries := memory.NewTimeEntryRepository()
	start := time.Now()
	entry := model.NewTimeEntry("e1", "u1", "t1", start, "", nil)
	if err := entries.Save(ctx, entry); err != nil {
		t.Fatal(err)
	}

	handler := command.NewUpdateTimeEntryHandler(entries)
	end := start.Add(-time.Minute)
	_, err := handler.Handle(ctx, command.UpdateTimeEntryCommand{EntryID: "e1", EndTime: &end})
	if !apperr.IsValidation(err) {
		t.Errorf("err = %v, want Validation", err)
	}

	got, err := entries.FindByID(ctx, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if got.EndTime != nil {
		t.Error("rejected update should leave the entry running")
	}
}

func TestCreateProjectEndBeforeStart(t *testing.T) {
	projects := memory.NewProjectRepository()
	dispatcher := &captureDispatcher{}
	handler := command.NewCreateProjectHandler(projects, dispatcher, zap.NewNop())

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := handler.Handle(context.Background(), command.CreateProjectCommand{
		Name:      "Backwards",
		Status:    model.ProjectStatusPlanning,
		OwnerID:   "u1",
		StartDate: &start,
		EndDate:   &end,
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want Validation", err)
	}
	if len(dispatcher.events) != 0 {
		t.Errorf("no event should be emitted on failure, got %d", len(dispatcher.events))
	}

	// start == end is a valid single-day range.
	if _, err := handler.Handle(context.Background(), command.CreateProjectCommand{
		Name:      "Single day",
		Status:    model.ProjectStatusPlanning,
		OwnerID:   "u1",
		StartDate: &start,
		EndDate:   &start,
	}); err != nil {
		t.Errorf("equal dates refused: %v", err)
	}
}

func TestUpdateProjectEndBeforeStart(t *testing.T) {
	ctx := context.Background()
	projects := memory.NewProjectRepository()
	seedProject(t, projects, "p1", "u1")

	handler := command.NewUpdateProjectHandler(projects, &captureDispatcher{}, zap.NewNop())
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := handler.Handle(ctx, command.UpdateProjectCommand{
		ProjectID: "p1",
		StartDate: &start,
		EndDate:   &end,
		UpdatedBy: "u1",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want Validation", err)
	}

	got, err := projects.FindByID(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.StartDate != nil || got.EndDate != nil {
		t.Errorf("rejected update should not persist dates, got %+v", got)
	}
}

func TestCreateTeamDuplicateName(t *testing.T) {
	ctx := context.Background()
	teams := memory.NewTeamRepository()
	handler := command.NewCreateTeamHandler(teams)

	if _, err := handler.Handle(ctx, command.CreateTeamCommand{Name: "Platform"}); err != nil {
		t.Fatal(err)
	}
	_, err := handler.Handle(ctx, command.CreateTeamCommand{Name: "Platform"})
	if !apperr.IsAlreadyExists(err) {
		t.Errorf("err = %v, want AlreadyExists", err)
	}
}

func TestUpdateTeamRenameToTakenName(t *testing.T) {
	ctx := context.Background()
	teams := memory.NewTeamRepository()
	create := command.NewCreateTeamHandler(teams)

	if _, err := create.Handle(ctx, command.CreateTeamCommand{Name: "Platform"}); err != nil {
		t.Fatal(err)
	}
	design, err := create.Handle(ctx, command.CreateTeamCommand{Name: "Design"})
	if err != nil {
		t.Fatal(err)
	}

	update := command.NewUpdateTeamHandler(teams)
	taken := "Platform"
	_, err = update.Handle(ctx, command.UpdateTeamCommand{TeamID: design.ID, Name: &taken})
	if !apperr.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}
	got, err := teams.FindByID(ctx, design.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Design" {
		t.Errorf("Name = %q, want Design after rejected rename", got.Name)
	}

	// Re-submitting the current name and taking a free name both work.
	same := "Design"
	if _, err := update.Handle(ctx, command.UpdateTeamCommand{TeamID: design.ID, Name: &same}); err != nil {
		t.Errorf("no-op rename refused: %v", err)
	}
	free := "Infra"
	renamed, err := update.Handle(ctx, command.UpdateTeamCommand{TeamID: design.ID, Name: &free})
	if err != nil {
		t.Fatal(err)
	}
	if renamed.Name != "Infra" {
		t.Errorf("Name = %q, want Infra", renamed.Name)
	}
}

// fakeHasher marks hashes deterministically so tests can assert on them.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, digest string) bool { return digest == "hashed:"+password }

type fakeIssuer struct{}

func (fakeIssuer) IssueToken(_ context.Context, userID, _ string) (string, error) {
	return "token-" + userID, nil
}
