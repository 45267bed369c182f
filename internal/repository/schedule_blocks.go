package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// PlaceBlock 在一个可串行化事务内完成「读当天日程 -> decide -> 写入」，
// 避免两个并发请求对同一个 (用户, 日期) 同时通过冲突检查后都落库。
// block.ID 为 0 时插入，否则按 ID 更新
func (r *Repository) PlaceBlock(block *domain.ScheduleBlock, decide func(existing []*domain.ScheduleBlock) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT id, user_id, date, start_time, end_time, type, task_id, brief_id,
			title, description, color, completed, created_by, created_at
		FROM schedule_blocks
		WHERE user_id = $1 AND date = $2
		ORDER BY start_time
		FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, query, block.UserID, block.Date)
	if err != nil {
		return err
	}

	existing := []*domain.ScheduleBlock{}
	for rows.Next() {
		b := &domain.ScheduleBlock{}
		if err := scanBlock(rows, b); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if err := decide(existing); err != nil {
		return err
	}

	if block.ID == 0 {
		query = `
			INSERT INTO schedule_blocks (user_id, date, start_time, end_time, type, task_id, brief_id,
				title, description, color, completed, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id
		`
		args := []any{
			block.UserID, block.Date, block.StartTime, block.EndTime, block.Type,
			block.TaskID, block.BriefID, block.Title, block.Description, block.Color,
			block.Completed, block.CreatedBy, block.CreatedAt,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&block.ID); err != nil {
			return err
		}
	} else {
		query = `
			UPDATE schedule_blocks
			SET start_time = $1, end_time = $2, title = $3, description = $4, color = $5, completed = $6
			WHERE id = $7
		`
		args := []any{block.StartTime, block.EndTime, block.Title, block.Description, block.Color, block.Completed, block.ID}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
	}

	return tx.Commit()
}

func (r *Repository) GetBlock(id int64) (*domain.ScheduleBlock, error) {
	query := `
		SELECT id, user_id, date, start_time, end_time, type, task_id, brief_id,
			title, description, color, completed, created_by, created_at
		FROM schedule_blocks WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	block := &domain.ScheduleBlock{}
	if err := scanBlock(r.dbpool.QueryRowContext(ctx, query, id), block); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return block, nil
}

func (r *Repository) DeleteBlock(id int64) error {
	query := `
		DELETE FROM schedule_blocks WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *Repository) ListBlocksForDate(userID int64, date string) ([]*domain.ScheduleBlock, error) {
	query := `
		SELECT id, user_id, date, start_time, end_time, type, task_id, brief_id,
			title, description, color, completed, created_by, created_at
		FROM schedule_blocks
		WHERE user_id = $1 AND date = $2
		ORDER BY start_time
	`

	return r.queryBlocks(query, userID, date)
}

func (r *Repository) ListBlocksForDateAllUsers(date string) ([]*domain.ScheduleBlock, error) {
	query := `
		SELECT id, user_id, date, start_time, end_time, type, task_id, brief_id,
			title, description, color, completed, created_by, created_at
		FROM schedule_blocks
		WHERE date = $1
		ORDER BY user_id, start_time
	`

	return r.queryBlocks(query, date)
}

// ListBlockViewsForDate 返回带简报标题、任务状态和团队颜色的日程块，用于日视图展示
func (r *Repository) ListBlockViewsForDate(userID int64, date string) ([]*domain.ScheduleBlockView, error) {
	query := `
		SELECT
			b.id, b.user_id, b.date, b.start_time, b.end_time, b.type, b.task_id, b.brief_id,
			b.title, b.description, b.color, b.completed, b.created_by, b.created_at,
			br.title, t.status, br.team_color
		FROM schedule_blocks b
		LEFT JOIN tasks t ON t.id = b.task_id
		LEFT JOIN briefs br ON br.id = b.brief_id
		WHERE b.user_id = $1 AND b.date = $2
		ORDER BY b.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []*domain.ScheduleBlockView{}
	for rows.Next() {
		v := &domain.ScheduleBlockView{}
		dst := []any{
			&v.ID, &v.UserID, &v.Date, &v.StartTime, &v.EndTime, &v.Type, &v.TaskID, &v.BriefID,
			&v.Title, &v.Description, &v.Color, &v.Completed, &v.CreatedBy, &v.CreatedAt,
			&v.BriefTitle, &v.TaskStatus, &v.TeamColor,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

type rowScanner interface {
	Scan(dst ...any) error
}

func scanBlock(row rowScanner, b *domain.ScheduleBlock) error {
	dst := []any{
		&b.ID, &b.UserID, &b.Date, &b.StartTime, &b.EndTime, &b.Type, &b.TaskID, &b.BriefID,
		&b.Title, &b.Description, &b.Color, &b.Completed, &b.CreatedBy, &b.CreatedAt,
	}
	return row.Scan(dst...)
}

func (r *Repository) queryBlocks(query string, args ...any) ([]*domain.ScheduleBlock, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := []*domain.ScheduleBlock{}
	for rows.Next() {
		b := &domain.ScheduleBlock{}
		if err := scanBlock(rows, b); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blocks, nil
}
