package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/nao1215/notification-api/internal/domain"
)

const createNotification = `-- name: CreateNotification :one
INSERT INTO notifications (user_id, recipient_email, subject, body, status, created_at, email_template_id)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id
`

// CreateNotificationParams は CreateNotification の引数。
type CreateNotificationParams struct {
	UserID          sql.NullInt64
	RecipientEmail  sql.NullString
	Subject         string
	Body            string
	Status          domain.NotificationStatus
	CreatedAt       time.Time
	EmailTemplateID sql.NullInt64
}

// CreateNotification は通知を挿入し、採番されたIDを返す。
func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createNotification,
		arg.UserID,
		arg.RecipientEmail,
		arg.Subject,
		arg.Body,
		string(arg.Status),
		arg.CreatedAt,
		arg.EmailTemplateID,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const selectNotificationDetail = `
SELECT n.id, n.user_id, n.recipient_email, n.subject, n.body, n.status, n.created_at, n.sent_at, n.email_template_id,
       u.email, u.first_name, u.last_name,
       (SELECT COUNT(*) FROM notification_attachments a WHERE a.notification_id = n.id) AS attachments_count
FROM notifications n
LEFT JOIN users u ON u.id = n.user_id
`

func scanNotificationDetail(row interface{ Scan(dest ...any) error }) (NotificationDetail, error) {
	var i NotificationDetail
	var status string
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.RecipientEmail,
		&i.Subject,
		&i.Body,
		&status,
		&i.CreatedAt,
		&i.SentAt,
		&i.EmailTemplateID,
		&i.UserEmail,
		&i.UserFirstName,
		&i.UserLastName,
		&i.AttachmentsCount,
	)
	i.Status = domain.NotificationStatus(status)
	return i, err
}

func (q *Queries) listNotificationDetails(ctx context.Context, query string, args ...any) ([]NotificationDetail, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []NotificationDetail{}
	for rows.Next() {
		i, err := scanNotificationDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getNotification = `-- name: GetNotification :one` + selectNotificationDetail + `WHERE n.id = ?
`

// GetNotification はIDで通知を取得する。
// ユーザー情報と添付ファイル件数も併せて返す。
func (q *Queries) GetNotification(ctx context.Context, id int64) (NotificationDetail, error) {
	return scanNotificationDetail(q.db.QueryRowContext(ctx, getNotification, id))
}

const listNotifications = `-- name: ListNotifications :many` + selectNotificationDetail + `ORDER BY n.id
`

// ListNotifications はすべての通知をID順に取得する。
func (q *Queries) ListNotifications(ctx context.Context) ([]NotificationDetail, error) {
	return q.listNotificationDetails(ctx, listNotifications)
}

const listNotificationsByStatus = `-- name: ListNotificationsByStatus :many` + selectNotificationDetail + `WHERE n.status = ?
ORDER BY n.id
`

// ListNotificationsByStatus は指定ステータスの通知をID順に取得する。
func (q *Queries) ListNotificationsByStatus(ctx context.Context, status domain.NotificationStatus) ([]NotificationDetail, error) {
	return q.listNotificationDetails(ctx, listNotificationsByStatus, string(status))
}

const listNotificationsByUser = `-- name: ListNotificationsByUser :many` + selectNotificationDetail + `WHERE n.user_id = ?
ORDER BY n.id
`

// ListNotificationsByUser は指定ユーザー宛ての通知をID順に取得する。
func (q *Queries) ListNotificationsByUser(ctx context.Context, userID int64) ([]NotificationDetail, error) {
	return q.listNotificationDetails(ctx, listNotificationsByUser, userID)
}

const getNotificationStatus = `-- name: GetNotificationStatus :one
SELECT status FROM notifications WHERE id = ?
`

// GetNotificationStatus は通知の現在のステータスを返す。
func (q *Queries) GetNotificationStatus(ctx context.Context, id int64) (domain.NotificationStatus, error) {
	row := q.db.QueryRowContext(ctx, getNotificationStatus, id)
	var status string
	err := row.Scan(&status)
	return domain.NotificationStatus(status), err
}

const markNotificationSent = `-- name: MarkNotificationSent :execrows
UPDATE notifications
SET status = 'sent', sent_at = ?
WHERE id = ? AND status = 'pending'
`

// MarkNotificationSentParams は MarkNotificationSent の引数。
type MarkNotificationSentParams struct {
	SentAt time.Time
	ID     int64
}

// MarkNotificationSent は pending の通知を sent に更新し、更新件数を返す。
// pending 以外の通知は更新されず 0 を返す。
func (q *Queries) MarkNotificationSent(ctx context.Context, arg MarkNotificationSentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, markNotificationSent, arg.SentAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
