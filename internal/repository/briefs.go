package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

func (r *Repository) CreateBrief(brief *domain.Brief) error {
	query := `
		INSERT INTO briefs (title, status, team_color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, brief.Title, brief.Status, brief.TeamColor).Scan(&brief.ID, &brief.CreatedAt, &brief.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBrief(id int64) (*domain.Brief, error) {
	query := `
		SELECT title, status, team_color, created_at, version
		FROM briefs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	brief := &domain.Brief{
		ID: id,
	}

	dst := []any{&brief.Title, &brief.Status, &brief.TeamColor, &brief.CreatedAt, &brief.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return brief, nil
}
