package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projecthub/internal/model"
)

const timeEntryColumns = `id, user_id, task_id, start_time, end_time, duration, description, created_at, updated_at`

type TimeEntryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTimeEntryRepository(db *pgxpool.Pool, logger *zap.Logger) *TimeEntryRepository {
	return &TimeEntryRepository{db: db, logger: logger}
}

func (r *TimeEntryRepository) FindByID(ctx context.Context, id string) (*model.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *TimeEntryRepository) FindByUserID(ctx context.Context, userID string) ([]*model.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = $1 ORDER BY start_time`
	return r.query(ctx, query, userID)
}

func (r *TimeEntryRepository) FindByTaskID(ctx context.Context, taskID string) ([]*model.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE task_id = $1 ORDER BY start_time`
	return r.query(ctx, query, taskID)
}

func (r *TimeEntryRepository) FindAll(ctx context.Context) ([]*model.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries ORDER BY start_time`
	return r.query(ctx, query)
}

func (r *TimeEntryRepository) FindActiveTimeEntry(ctx context.Context, userID string) (*model.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = $1 AND end_time IS NULL LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *TimeEntryRepository) TotalTimeByTask(ctx context.Context, taskID string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM time_entries WHERE task_id = $1`, taskID,
	).Scan(&total)
	return total, err
}

func (r *TimeEntryRepository) TotalTimeByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM time_entries WHERE user_id = $1`, userID,
	).Scan(&total)
	return total, err
}

func (r *TimeEntryRepository) FindByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*model.TimeEntry, error) {
	query := `
        SELECT ` + timeEntryColumns + ` FROM time_entries
        WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
        ORDER BY start_time
    `
	return r.query(ctx, query, userID, from, to)
}

func (r *TimeEntryRepository) Save(ctx context.Context, e *model.TimeEntry) error {
	query := `
        INSERT INTO time_entries (id, user_id, task_id, start_time, end_time, duration, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            end_time = EXCLUDED.end_time,
            duration = EXCLUDED.duration,
            description = EXCLUDED.description,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.db.Exec(ctx, query,
		e.ID, e.UserID, e.TaskID, e.StartTime, e.EndTime, e.Duration, e.Description, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save time entry", zap.Error(err), zap.String("time_entry_id", e.ID))
	}
	return err
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	return err
}

func (r *TimeEntryRepository) scanOne(row pgx.Row) (*model.TimeEntry, error) {
	var e model.TimeEntry
	err := row.Scan(&e.ID, &e.UserID, &e.TaskID, &e.StartTime, &e.EndTime, &e.Duration, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TimeEntryRepository) query(ctx context.Context, query string, args ...any) ([]*model.TimeEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query time entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []*model.TimeEntry
	for rows.Next() {
		var e model.TimeEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.TaskID, &e.StartTime, &e.EndTime, &e.Duration, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
