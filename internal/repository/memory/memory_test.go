package memory_test

import (
	"context"
	"testing"
	"time"

	"projecthub/internal/model"
	"projecthub/internal/repository/memory"
)

func TestFinderMissReturnsNilNil(t *testing.T) {
	ctx := context.Background()

	users := memory.NewUserRepository()
	u, err := users.FindByID(ctx, "missing")
	if err != nil || u != nil {
		t.Errorf("FindByID miss = (%v, %v), want (nil, nil)", u, err)
	}

	teams := memory.NewTeamRepository()
	tm, err := teams.FindByName(ctx, "missing")
	if err != nil || tm != nil {
		t.Errorf("FindByName miss = (%v, %v), want (nil, nil)", tm, err)
	}
}

func TestSaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()

	u := model.NewUser("u1", "Dana", "dana@example.com", model.RoleClient, "")
	if err := users.Save(ctx, u); err != nil {
		t.Fatal(err)
	}
	u.UpdateName("Dana Q")
	if err := users.Save(ctx, u); err != nil {
		t.Fatal(err)
	}

	got, err := users.FindByID(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Dana Q" {
		t.Errorf("Name = %q, want %q", got.Name, "Dana Q")
	}
	all, _ := users.FindAll(ctx)
	if len(all) != 1 {
		t.Errorf("len(users) = %d, want 1", len(all))
	}
}

func TestFindUpcomingMilestonesSorted(t *testing.T) {
	ctx := context.Background()
	milestones := memory.NewMilestoneRepository()
	now := time.Now()

	late := model.NewMilestone("m-late", "p1", "Late", "", now.AddDate(0, 2, 0))
	early := model.NewMilestone("m-early", "p1", "Early", "", now.AddDate(0, 0, 7))
	done := model.NewMilestone("m-done", "p1", "Done", "", now.AddDate(0, 0, 1))
	done.MarkAsCompleted()

	for _, m := range []*model.Milestone{late, early, done} {
		if err := milestones.Save(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	upcoming, err := milestones.FindUpcomingMilestones(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("len(upcoming) = %d, want 2", len(upcoming))
	}
	if upcoming[0].ID != "m-early" || upcoming[1].ID != "m-late" {
		t.Errorf("order = [%s %s], want [m-early m-late]", upcoming[0].ID, upcoming[1].ID)
	}
}

func TestTotalTimeSkipsRunningEntries(t *testing.T) {
	ctx := context.Background()
	entries := memory.NewTimeEntryRepository()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	end1 := start.Add(30 * time.Minute)
	end2 := start.Add(45 * time.Minute)
	stopped1 := model.NewTimeEntry("e1", "u1", "t1", start, "", &end1)
	stopped2 := model.NewTimeEntry("e2", "u1", "t1", start, "", &end2)
	running := model.NewTimeEntry("e3", "u1", "t1", start, "", nil)

	for _, e := range []*model.TimeEntry{stopped1, stopped2, running} {
		if err := entries.Save(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	taskTotal, err := entries.TotalTimeByTask(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if taskTotal != 75 {
		t.Errorf("TotalTimeByTask = %d, want 75", taskTotal)
	}

	userTotal, err := entries.TotalTimeByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if userTotal != 75 {
		t.Errorf("TotalTimeByUser = %d, want 75", userTotal)
	}
}

func TestFindActiveTimeEntry(t *testing.T) {
	ctx := context.Background()
	entries := memory.NewTimeEntryRepository()
	start := time.Now().Add(-time.Hour)

	end := start.Add(30 * time.Minute)
	if err := entries.Save(ctx, model.NewTimeEntry("e1", "u1", "t1", start, "", &end)); err != nil {
		t.Fatal(err)
	}

	active, err := entries.FindActiveTimeEntry(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Errorf("active = %+v, want nil when everything is stopped", active)
	}

	if err := entries.Save(ctx, model.NewTimeEntry("e2", "u1", "t2", start, "", nil)); err != nil {
		t.Fatal(err)
	}
	active, err = entries.FindActiveTimeEntry(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != "e2" {
		t.Errorf("active = %+v, want e2", active)
	}
}
