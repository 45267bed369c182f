package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

func (r *Repository) InsertNotification(n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, content, read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, n.UserID, n.Title, n.Content, n.CreatedAt).Scan(&n.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListNotifications(userID int64) ([]*domain.Notification, error) {
	query := `
		SELECT id, title, content, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*domain.Notification{}
	for rows.Next() {
		n := &domain.Notification{
			UserID: userID,
		}
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
