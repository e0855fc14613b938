package model

import "time"

type TimeEntry struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	TaskID      string     `json:"task_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int        `json:"duration"` // whole minutes, 0 while running
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTimeEntry(id, userID, taskID string, startTime time.Time, description string, endTime *time.Time) *TimeEntry {
	now := time.Now()
	e := &TimeEntry{
		ID:          id,
		UserID:      userID,
		TaskID:      taskID,
		StartTime:   startTime,
		EndTime:     endTime,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.Duration = e.calculateDuration()
	return e
}

// IsRunning reports whether the entry has not been stopped yet.
func (e *TimeEntry) IsRunning() bool {
	return e.EndTime == nil
}

// Stop ends the entry and fixes its duration. The first stop wins: calling
// Stop on an already stopped entry changes nothing.
func (e *TimeEntry) Stop(endTime time.Time) {
	if e.EndTime != nil {
		return
	}
	e.EndTime = &endTime
	e.Duration = e.calculateDuration()
	e.touch()
}

func (e *TimeEntry) UpdateDescription(description string) {
	e.Description = description
	e.touch()
}

func (e *TimeEntry) calculateDuration() int {
	if e.EndTime == nil {
		return 0
	}
	return int(e.EndTime.Sub(e.StartTime).Round(time.Minute).Minutes())
}

func (e *TimeEntry) touch() {
	e.UpdatedAt = time.Now()
}
