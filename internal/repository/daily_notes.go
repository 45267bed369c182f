package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// UpsertDailyNote: 每个 (用户, 日期) 只保留一条备注，存在则覆盖内容并刷新时间
func (r *Repository) UpsertDailyNote(note *domain.DailyNote) error {
	query := `
		INSERT INTO daily_notes (user_id, date, content, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date)
		DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, note.UserID, note.Date, note.Content, note.UpdatedAt).Scan(&note.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDailyNote(userID int64, date string) (*domain.DailyNote, error) {
	query := `
		SELECT id, content, updated_at
		FROM daily_notes WHERE user_id = $1 AND date = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	note := &domain.DailyNote{
		UserID: userID,
		Date:   date,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, userID, date).Scan(&note.ID, &note.Content, &note.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return note, nil
}
