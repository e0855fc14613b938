package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projecthub/internal/model"
)

const milestoneColumns = `id, project_id, name, description, due_date, is_completed, completed_at, created_at, updated_at`

type MilestoneRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMilestoneRepository(db *pgxpool.Pool, logger *zap.Logger) *MilestoneRepository {
	return &MilestoneRepository{db: db, logger: logger}
}

func (r *MilestoneRepository) FindByID(ctx context.Context, id string) (*model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *MilestoneRepository) FindByProjectID(ctx context.Context, projectID string) ([]*model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = $1 ORDER BY due_date`
	return r.query(ctx, query, projectID)
}

func (r *MilestoneRepository) FindAll(ctx context.Context) ([]*model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones ORDER BY due_date`
	return r.query(ctx, query)
}

func (r *MilestoneRepository) FindCompletedMilestones(ctx context.Context, projectID string) ([]*model.Milestone, error) {
	query := `
        SELECT ` + milestoneColumns + ` FROM milestones
        WHERE project_id = $1 AND is_completed
        ORDER BY completed_at
    `
	return r.query(ctx, query, projectID)
}

func (r *MilestoneRepository) FindUpcomingMilestones(ctx context.Context, projectID string) ([]*model.Milestone, error) {
	query := `
        SELECT ` + milestoneColumns + ` FROM milestones
        WHERE project_id = $1 AND NOT is_completed AND due_date >= NOW()
        ORDER BY due_date ASC
    `
	return r.query(ctx, query, projectID)
}

func (r *MilestoneRepository) Save(ctx context.Context, m *model.Milestone) error {
	query := `
        INSERT INTO milestones (id, project_id, name, description, due_date, is_completed, completed_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            due_date = EXCLUDED.due_date,
            is_completed = EXCLUDED.is_completed,
            completed_at = EXCLUDED.completed_at,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.db.Exec(ctx, query,
		m.ID, m.ProjectID, m.Name, m.Description, m.DueDate, m.IsCompleted, m.CompletedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save milestone", zap.Error(err), zap.String("milestone_id", m.ID))
	}
	return err
}

func (r *MilestoneRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	return err
}

func (r *MilestoneRepository) scanOne(row pgx.Row) (*model.Milestone, error) {
	var m model.Milestone
	err := row.Scan(&m.ID, &m.ProjectID, &m.Name, &m.Description, &m.DueDate, &m.IsCompleted, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MilestoneRepository) query(ctx context.Context, query string, args ...any) ([]*model.Milestone, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query milestones", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var milestones []*model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Name, &m.Description, &m.DueDate, &m.IsCompleted, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		milestones = append(milestones, &m)
	}
	return milestones, rows.Err()
}
