package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

func (r *Repository) GetTask(id int64) (*domain.Task, error) {
	query := `
		SELECT brief_id, assignee_id, title, status, duration, duration_minutes, sort_order, created_at, version
		FROM tasks WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	task := &domain.Task{
		ID: id,
	}

	dst := []any{&task.BriefID, &task.AssigneeID, &task.Title, &task.Status, &task.Duration, &task.DurationMinutes, &task.SortOrder, &task.CreatedAt, &task.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return task, nil
}

func (r *Repository) CreateTask(task *domain.Task) error {
	query := `
		INSERT INTO tasks (brief_id, assignee_id, title, status, duration, duration_minutes, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{task.BriefID, task.AssigneeID, task.Title, task.Status, task.Duration, task.DurationMinutes, task.SortOrder}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateTaskSortOrder(task *domain.Task) error {
	query := `
		UPDATE tasks
		SET sort_order = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, task.SortOrder, task.ID, task.Version).Scan(&task.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// ListTasksByAssignee 返回某个用户的全部任务，附带父简报的状态和展示信息
func (r *Repository) ListTasksByAssignee(userID int64) ([]*domain.TaskWithBrief, error) {
	query := `
		SELECT
			t.id, t.brief_id, t.assignee_id, t.title, t.status, t.duration, t.duration_minutes,
			t.sort_order, t.created_at, t.version,
			br.title, br.status, br.team_color
		FROM tasks t
		JOIN briefs br ON br.id = t.brief_id
		WHERE t.assignee_id = $1
		ORDER BY t.sort_order
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*domain.TaskWithBrief{}
	for rows.Next() {
		t := &domain.TaskWithBrief{}
		dst := []any{
			&t.ID, &t.BriefID, &t.AssigneeID, &t.Title, &t.Status, &t.Duration, &t.DurationMinutes,
			&t.SortOrder, &t.CreatedAt, &t.Version,
			&t.BriefTitle, &t.BriefStatus, &t.TeamColor,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
