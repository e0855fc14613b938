package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projecthub/internal/model"
)

// Team rows live in teams; membership in a team_members join table with a
// (team_id, user_id) primary key, which keeps the member set duplicate-free.
type TeamRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTeamRepository(db *pgxpool.Pool, logger *zap.Logger) *TeamRepository {
	return &TeamRepository{db: db, logger: logger}
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*model.Team, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM teams WHERE id = $1`
	return r.scanOne(ctx, r.db.QueryRow(ctx, query, id))
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) (*model.Team, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM teams WHERE name = $1`
	return r.scanOne(ctx, r.db.QueryRow(ctx, query, name))
}

func (r *TeamRepository) FindByMemberID(ctx context.Context, userID string) ([]*model.Team, error) {
	query := `
        SELECT t.id, t.name, t.description, t.created_at, t.updated_at
        FROM teams t
        JOIN team_members m ON m.team_id = t.id
        WHERE m.user_id = $1
        ORDER BY t.created_at
    `
	return r.query(ctx, query, userID)
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]*model.Team, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM teams ORDER BY created_at`
	return r.query(ctx, query)
}

func (r *TeamRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *TeamRepository) Save(ctx context.Context, t *model.Team) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO teams (id, name, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            updated_at = EXCLUDED.updated_at
    `
	if _, err := tx.Exec(ctx, query, t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt); err != nil {
		r.logger.Error("Failed to save team", zap.Error(err), zap.String("team_id", t.ID))
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1`, t.ID); err != nil {
		return err
	}
	for _, userID := range t.MemberIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			t.ID, userID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}

func (r *TeamRepository) scanOne(ctx context.Context, row pgx.Row) (*model.Team, error) {
	var t model.Team
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t.MemberIDs, err = r.memberIDs(ctx, t.ID); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) query(ctx context.Context, query string, args ...any) ([]*model.Team, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query teams", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var teams []*model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range teams {
		if t.MemberIDs, err = r.memberIDs(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *TeamRepository) memberIDs(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY user_id`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
