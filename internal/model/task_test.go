package model_test

import (
	"testing"
	"time"

	"projecthub/internal/model"
)

func TestTaskAssignTo(t *testing.T) {
	task := model.NewTask("t1", "Write docs", "", model.TaskStatusTodo, model.TaskPriorityMedium, "p1", "", nil)

	task.AssignTo("u2")
	if task.AssignedTo != "u2" {
		t.Errorf("AssignedTo = %q, want %q", task.AssignedTo, "u2")
	}

	task.AssignTo("")
	if task.AssignedTo != "" {
		t.Errorf("AssignedTo = %q, want unassigned", task.AssignedTo)
	}
}

func TestTaskMutatorsBumpUpdatedAt(t *testing.T) {
	task := model.NewTask("t1", "Write docs", "", model.TaskStatusTodo, model.TaskPriorityLow, "p1", "", nil)
	created := task.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	task.UpdateStatus(model.TaskStatusInProgress)

	if !task.UpdatedAt.After(created) {
		t.Error("UpdatedAt should advance on mutation")
	}
	if task.Status != model.TaskStatusInProgress {
		t.Errorf("Status = %q, want %q", task.Status, model.TaskStatusInProgress)
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"todo", true},
		{"in_progress", true},
		{"in_review", true},
		{"completed", true},
		{"cancelled", true},
		{"done", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := model.IsValidTaskStatus(tt.status); got != tt.want {
			t.Errorf("IsValidTaskStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsValidTaskPriority(t *testing.T) {
	tests := []struct {
		priority string
		want     bool
	}{
		{"low", true},
		{"medium", true},
		{"high", true},
		{"urgent", true},
		{"critical", false},
	}
	for _, tt := range tests {
		if got := model.IsValidTaskPriority(tt.priority); got != tt.want {
			t.Errorf("IsValidTaskPriority(%q) = %v, want %v", tt.priority, got, tt.want)
		}
	}
}
