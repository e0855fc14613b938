package command

import (
	"context"

	"github.com/google/uuid"

	"projecthub/internal/apperr"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

type CreateTimeEntryHandler struct {
	entries repository.TimeEntryRepository
	tasks   repository.TaskRepository
}

func NewCreateTimeEntryHandler(entries repository.TimeEntryRepository, tasks repository.TaskRepository) *CreateTimeEntryHandler {
	return &CreateTimeEntryHandler{entries: entries, tasks: tasks}
}

func (h *CreateTimeEntryHandler) Handle(ctx context.Context, cmd CreateTimeEntryCommand) (*model.TimeEntry, error) {
	task, err := h.tasks.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task", cmd.TaskID)
	}

	if cmd.EndTime == nil {
		// A user has at most one running entry, regardless of how the
		// entry is created.
		active, err := h.entries.FindActiveTimeEntry(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, apperr.AlreadyExists("time entry", "active", active.TaskID)
		}
	} else if !cmd.EndTime.After(cmd.StartTime) {
		return nil, apperr.Validation(map[string][]string{
			"end_time": {"end time must be after start time"},
		})
	}

	entry := model.NewTimeEntry(uuid.NewString(), cmd.UserID, cmd.TaskID, cmd.StartTime, cmd.Description, cmd.EndTime)
	if err := h.entries.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

type UpdateTimeEntryHandler struct {
	entries repository.TimeEntryRepository
}

func NewUpdateTimeEntryHandler(entries repository.TimeEntryRepository) *UpdateTimeEntryHandler {
	return &UpdateTimeEntryHandler{entries: entries}
}

func (h *UpdateTimeEntryHandler) Handle(ctx context.Context, cmd UpdateTimeEntryCommand) (*model.TimeEntry, error) {
	entry, err := h.entries.FindByID(ctx, cmd.EntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperr.NotFound("time entry", cmd.EntryID)
	}

	if cmd.Description != nil {
		entry.UpdateDescription(*cmd.Description)
	}
	if cmd.EndTime != nil {
		if !cmd.EndTime.After(entry.StartTime) {
			return nil, apperr.Validation(map[string][]string{
				"end_time": {"end time must be after start time"},
			})
		}
		entry.Stop(*cmd.EndTime)
	}

	if err := h.entries.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
