// Package memory provides map-backed implementations of the repository
// interfaces. They back the test suites and are handy as a fixture store;
// production wiring uses the postgres package.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"projecthub/internal/model"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]model.User)}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	sortByID(out, func(u *model.User) string { return u.ID })
	return out, nil
}

func (r *UserRepository) FindByRole(_ context.Context, role string) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		if u.Role == role {
			u := u
			out = append(out, &u)
		}
	}
	sortByID(out, func(u *model.User) string { return u.ID })
	return out, nil
}

func (r *UserRepository) FindActiveUsers(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		if u.IsActive {
			u := u
			out = append(out, &u)
		}
	}
	sortByID(out, func(u *model.User) string { return u.ID })
	return out, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Save(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type ProjectRepository struct {
	mu       sync.Mutex
	projects map[string]model.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[string]model.Project)}
}

func (r *ProjectRepository) FindByID(_ context.Context, id string) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProjectRepository) FindByOwnerID(_ context.Context, ownerID string) ([]*model.Project, error) {
	return r.filter(func(p *model.Project) bool { return p.OwnerID == ownerID })
}

func (r *ProjectRepository) FindAll(_ context.Context) ([]*model.Project, error) {
	return r.filter(func(*model.Project) bool { return true })
}

func (r *ProjectRepository) FindByStatus(_ context.Context, status string) ([]*model.Project, error) {
	return r.filter(func(p *model.Project) bool { return p.Status == status })
}

func (r *ProjectRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.projects[id]
	return ok, nil
}

func (r *ProjectRepository) Save(_ context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = *p
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}

func (r *ProjectRepository) filter(keep func(*model.Project) bool) ([]*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Project
	for _, p := range r.projects {
		p := p
		if keep(&p) {
			out = append(out, &p)
		}
	}
	sortByID(out, func(p *model.Project) string { return p.ID })
	return out, nil
}

type TaskRepository struct {
	mu    sync.Mutex
	tasks map[string]model.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]model.Task)}
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *TaskRepository) FindByProjectID(_ context.Context, projectID string) ([]*model.Task, error) {
	return r.filter(func(t *model.Task) bool { return t.ProjectID == projectID })
}

func (r *TaskRepository) FindByAssignedUser(_ context.Context, userID string) ([]*model.Task, error) {
	return r.filter(func(t *model.Task) bool { return t.AssignedTo == userID })
}

func (r *TaskRepository) FindAll(_ context.Context) ([]*model.Task, error) {
	return r.filter(func(*model.Task) bool { return true })
}

func (r *TaskRepository) FindByStatus(_ context.Context, status string) ([]*model.Task, error) {
	return r.filter(func(t *model.Task) bool { return t.Status == status })
}

func (r *TaskRepository) FindByPriority(_ context.Context, priority string) ([]*model.Task, error) {
	return r.filter(func(t *model.Task) bool { return t.Priority == priority })
}

func (r *TaskRepository) FindOverdueTasks(_ context.Context) ([]*model.Task, error) {
	now := time.Now()
	return r.filter(func(t *model.Task) bool {
		return t.DueDate != nil && t.DueDate.Before(now) &&
			t.Status != model.TaskStatusCompleted && t.Status != model.TaskStatusCancelled
	})
}

func (r *TaskRepository) Save(_ context.Context, t *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = *t
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) filter(keep func(*model.Task) bool) ([]*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Task
	for _, t := range r.tasks {
		t := t
		if keep(&t) {
			out = append(out, &t)
		}
	}
	sortByID(out, func(t *model.Task) string { return t.ID })
	return out, nil
}

type TeamRepository struct {
	mu    sync.Mutex
	teams map[string]model.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[string]model.Team)}
}

func (r *TeamRepository) FindByID(_ context.Context, id string) (*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.teams[id]; ok {
		t.MemberIDs = append([]string(nil), t.MemberIDs...)
		return &t, nil
	}
	return nil, nil
}

func (r *TeamRepository) FindByName(_ context.Context, name string) (*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == name {
			t.MemberIDs = append([]string(nil), t.MemberIDs...)
			return &t, nil
		}
	}
	return nil, nil
}

func (r *TeamRepository) FindByMemberID(_ context.Context, userID string) ([]*model.Team, error) {
	return r.filter(func(t *model.Team) bool { return t.HasMember(userID) })
}

func (r *TeamRepository) FindAll(_ context.Context) ([]*model.Team, error) {
	return r.filter(func(*model.Team) bool { return true })
}

func (r *TeamRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.teams[id]
	return ok, nil
}

func (r *TeamRepository) Save(_ context.Context, t *model.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	clone.MemberIDs = append([]string(nil), t.MemberIDs...)
	r.teams[t.ID] = clone
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.teams, id)
	return nil
}

func (r *TeamRepository) filter(keep func(*model.Team) bool) ([]*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Team
	for _, t := range r.teams {
		t := t
		if keep(&t) {
			t.MemberIDs = append([]string(nil), t.MemberIDs...)
			out = append(out, &t)
		}
	}
	sortByID(out, func(t *model.Team) string { return t.ID })
	return out, nil
}

type MilestoneRepository struct {
	mu         sync.Mutex
	milestones map[string]model.Milestone
}

func NewMilestoneRepository() *MilestoneRepository {
	return &MilestoneRepository{milestones: make(map[string]model.Milestone)}
}

func (r *MilestoneRepository) FindByID(_ context.Context, id string) (*model.Milestone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.milestones[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *MilestoneRepository) FindByProjectID(_ context.Context, projectID string) ([]*model.Milestone, error) {
	return r.filter(func(m *model.Milestone) bool { return m.ProjectID == projectID })
}

func (r *MilestoneRepository) FindAll(_ context.Context) ([]*model.Milestone, error) {
	return r.filter(func(*model.Milestone) bool { return true })
}

func (r *MilestoneRepository) FindCompletedMilestones(_ context.Context, projectID string) ([]*model.Milestone, error) {
	return r.filter(func(m *model.Milestone) bool { return m.ProjectID == projectID && m.IsCompleted })
}

func (r *MilestoneRepository) FindUpcomingMilestones(_ context.Context, projectID string) ([]*model.Milestone, error) {
	now := time.Now()
	out, err := r.filter(func(m *model.Milestone) bool {
		return m.ProjectID == projectID && !m.IsCompleted && !m.DueDate.Before(now)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *MilestoneRepository) Save(_ context.Context, m *model.Milestone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.milestones[m.ID] = *m
	return nil
}

func (r *MilestoneRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.milestones, id)
	return nil
}

func (r *MilestoneRepository) filter(keep func(*model.Milestone) bool) ([]*model.Milestone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Milestone
	for _, m := range r.milestones {
		m := m
		if keep(&m) {
			out = append(out, &m)
		}
	}
	sortByID(out, func(m *model.Milestone) string { return m.ID })
	return out, nil
}

type TimeEntryRepository struct {
	mu      sync.Mutex
	entries map[string]model.TimeEntry
}

func NewTimeEntryRepository() *TimeEntryRepository {
	return &TimeEntryRepository{entries: make(map[string]model.TimeEntry)}
}

func (r *TimeEntryRepository) FindByID(_ context.Context, id string) (*model.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r *TimeEntryRepository) FindByUserID(_ context.Context, userID string) ([]*model.TimeEntry, error) {
	return r.filter(func(e *model.TimeEntry) bool { return e.UserID == userID })
}

func (r *TimeEntryRepository) FindByTaskID(_ context.Context, taskID string) ([]*model.TimeEntry, error) {
	return r.filter(func(e *model.TimeEntry) bool { return e.TaskID == taskID })
}

func (r *TimeEntryRepository) FindAll(_ context.Context) ([]*model.TimeEntry, error) {
	return r.filter(func(*model.TimeEntry) bool { return true })
}

func (r *TimeEntryRepository) FindActiveTimeEntry(_ context.Context, userID string) (*model.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.UserID == userID && e.EndTime == nil {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (r *TimeEntryRepository) TotalTimeByTask(_ context.Context, taskID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, e := range r.entries {
		if e.TaskID == taskID {
			total += e.Duration
		}
	}
	return total, nil
}

func (r *TimeEntryRepository) TotalTimeByUser(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, e := range r.entries {
		if e.UserID == userID {
			total += e.Duration
		}
	}
	return total, nil
}

func (r *TimeEntryRepository) FindByUserAndRange(_ context.Context, userID string, from, to time.Time) ([]*model.TimeEntry, error) {
	return r.filter(func(e *model.TimeEntry) bool {
		return e.UserID == userID && !e.StartTime.Before(from) && !e.StartTime.After(to)
	})
}

func (r *TimeEntryRepository) Save(_ context.Context, e *model.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = *e
	return nil
}

func (r *TimeEntryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *TimeEntryRepository) filter(keep func(*model.TimeEntry) bool) ([]*model.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.TimeEntry
	for _, e := range r.entries {
		e := e
		if keep(&e) {
			out = append(out, &e)
		}
	}
	sortByID(out, func(e *model.TimeEntry) string { return e.ID })
	return out, nil
}

func sortByID[T any](items []*T, id func(*T) string) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
