package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projecthub/internal/model"
)

const taskColumns = `id, title, description, status, priority, project_id, COALESCE(assigned_to, ''), due_date, created_at, updated_at`

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *TaskRepository) FindByProjectID(ctx context.Context, projectID string) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at`
	return r.query(ctx, query, projectID)
}

func (r *TaskRepository) FindByAssignedUser(ctx context.Context, userID string) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 ORDER BY created_at`
	return r.query(ctx, query, userID)
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at`
	return r.query(ctx, query)
}

func (r *TaskRepository) FindByStatus(ctx context.Context, status string) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1 ORDER BY created_at`
	return r.query(ctx, query, status)
}

func (r *TaskRepository) FindByPriority(ctx context.Context, priority string) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE priority = $1 ORDER BY created_at`
	return r.query(ctx, query, priority)
}

func (r *TaskRepository) FindOverdueTasks(ctx context.Context) ([]*model.Task, error) {
	query := `
        SELECT ` + taskColumns + ` FROM tasks
        WHERE due_date IS NOT NULL
          AND due_date < NOW()
          AND status NOT IN ('completed', 'cancelled')
        ORDER BY due_date
    `
	return r.query(ctx, query)
}

func (r *TaskRepository) Save(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Saving task",
		zap.String("task_id", t.ID),
		zap.String("project_id", t.ProjectID),
		zap.String("status", t.Status),
	)
	query := `
        INSERT INTO tasks (id, title, description, status, priority, project_id, assigned_to, due_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)
        ON CONFLICT (id) DO UPDATE SET
            title = EXCLUDED.title,
            description = EXCLUDED.description,
            status = EXCLUDED.status,
            priority = EXCLUDED.priority,
            project_id = EXCLUDED.project_id,
            assigned_to = EXCLUDED.assigned_to,
            due_date = EXCLUDED.due_date,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.db.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.ProjectID, t.AssignedTo, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save task", zap.Error(err), zap.String("task_id", t.ID))
	}
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *TaskRepository) scanOne(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.ProjectID, &t.AssignedTo, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) query(ctx context.Context, query string, args ...any) ([]*model.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.ProjectID, &t.AssignedTo, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}
