package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/repository"
)

type TimeTrackingService struct {
	entries repository.TimeEntryRepository
	create  *command.CreateTimeEntryHandler
	update  *command.UpdateTimeEntryHandler
	logger  *zap.Logger
}

func NewTimeTrackingService(
	entries repository.TimeEntryRepository,
	create *command.CreateTimeEntryHandler,
	update *command.UpdateTimeEntryHandler,
	logger *zap.Logger,
) *TimeTrackingService {
	return &TimeTrackingService{entries: entries, create: create, update: update, logger: logger}
}

// Start opens a running entry for the user. A user can have at most one
// running entry at a time; starting while one exists is refused and the
// existing entry is left untouched.
func (s *TimeTrackingService) Start(ctx context.Context, userID, taskID, description string) (*TimeEntryDTO, error) {
	entry, err := s.create.Handle(ctx, command.CreateTimeEntryCommand{
		UserID:      userID,
		TaskID:      taskID,
		StartTime:   time.Now(),
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Time tracking started",
		zap.String("user_id", userID),
		zap.String("task_id", taskID),
	)
	dto := NewTimeEntryDTO(entry)
	return &dto, nil
}

// Stop closes the user's running entry. Stopping when nothing is running is
// a NotFound.
func (s *TimeTrackingService) Stop(ctx context.Context, userID string) (*TimeEntryDTO, error) {
	active, err := s.entries.FindActiveTimeEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperr.NotFound("active time entry", userID)
	}

	now := time.Now()
	entry, err := s.update.Handle(ctx, command.UpdateTimeEntryCommand{
		EntryID: active.ID,
		EndTime: &now,
	})
	if err != nil {
		return nil, err
	}
	dto := NewTimeEntryDTO(entry)
	return &dto, nil
}

// Log records a completed entry with explicit start and end times.
func (s *TimeTrackingService) Log(ctx context.Context, cmd command.CreateTimeEntryCommand) (*TimeEntryDTO, error) {
	entry, err := s.create.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewTimeEntryDTO(entry)
	return &dto, nil
}

func (s *TimeTrackingService) Update(ctx context.Context, cmd command.UpdateTimeEntryCommand) (*TimeEntryDTO, error) {
	entry, err := s.update.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewTimeEntryDTO(entry)
	return &dto, nil
}

func (s *TimeTrackingService) Get(ctx context.Context, entryID string) (*TimeEntryDTO, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperr.NotFound("time entry", entryID)
	}
	dto := NewTimeEntryDTO(entry)
	return &dto, nil
}

func (s *TimeTrackingService) ListByUser(ctx context.Context, userID string) ([]TimeEntryDTO, error) {
	entries, err := s.entries.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return timeEntryDTOs(entries), nil
}

func (s *TimeTrackingService) ListByTask(ctx context.Context, taskID string) ([]TimeEntryDTO, error) {
	entries, err := s.entries.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return timeEntryDTOs(entries), nil
}

func (s *TimeTrackingService) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]TimeEntryDTO, error) {
	entries, err := s.entries.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return timeEntryDTOs(entries), nil
}

// TaskTotalMinutes sums the recorded minutes of all stopped entries for a task.
func (s *TimeTrackingService) TaskTotalMinutes(ctx context.Context, taskID string) (int, error) {
	return s.entries.TotalTimeByTask(ctx, taskID)
}

// UserTotalMinutes sums the recorded minutes of all stopped entries for a user.
func (s *TimeTrackingService) UserTotalMinutes(ctx context.Context, userID string) (int, error) {
	return s.entries.TotalTimeByUser(ctx, userID)
}

func (s *TimeTrackingService) Delete(ctx context.Context, entryID string) error {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperr.NotFound("time entry", entryID)
	}
	return s.entries.Delete(ctx, entryID)
}
