package db

import (
	"context"
	"time"
)

const createNotificationAttachment = `-- name: CreateNotificationAttachment :one
INSERT INTO notification_attachments (notification_id, file_name, mime_type, file_path, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

// CreateNotificationAttachmentParams は CreateNotificationAttachment の引数。
type CreateNotificationAttachmentParams struct {
	NotificationID int64
	FileName       string
	MimeType       string
	FilePath       string
	CreatedAt      time.Time
}

// CreateNotificationAttachment は添付ファイルを挿入し、採番されたIDを返す。
func (q *Queries) CreateNotificationAttachment(ctx context.Context, arg CreateNotificationAttachmentParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createNotificationAttachment,
		arg.NotificationID,
		arg.FileName,
		arg.MimeType,
		arg.FilePath,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const selectNotificationAttachmentDetail = `
SELECT a.id, a.notification_id, a.file_name, a.mime_type, a.file_path, a.created_at, n.subject
FROM notification_attachments a
JOIN notifications n ON n.id = a.notification_id
`

func scanNotificationAttachmentDetail(row interface{ Scan(dest ...any) error }) (NotificationAttachmentDetail, error) {
	var i NotificationAttachmentDetail
	err := row.Scan(
		&i.ID,
		&i.NotificationID,
		&i.FileName,
		&i.MimeType,
		&i.FilePath,
		&i.CreatedAt,
		&i.NotificationSubject,
	)
	return i, err
}

func (q *Queries) listNotificationAttachmentDetails(ctx context.Context, query string, args ...any) ([]NotificationAttachmentDetail, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []NotificationAttachmentDetail{}
	for rows.Next() {
		i, err := scanNotificationAttachmentDetail(rows)
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

const getNotificationAttachment = `-- name: GetNotificationAttachment :one` + selectNotificationAttachmentDetail + `WHERE a.id = ?
`

// GetNotificationAttachment はIDで添付ファイルを取得する。
func (q *Queries) GetNotificationAttachment(ctx context.Context, id int64) (NotificationAttachmentDetail, error) {
	return scanNotificationAttachmentDetail(q.db.QueryRowContext(ctx, getNotificationAttachment, id))
}

const listNotificationAttachments = `-- name: ListNotificationAttachments :many` + selectNotificationAttachmentDetail + `ORDER BY a.id
`

// ListNotificationAttachments はすべての添付ファイルをID順に取得する。
func (q *Queries) ListNotificationAttachments(ctx context.Context) ([]NotificationAttachmentDetail, error) {
	return q.listNotificationAttachmentDetails(ctx, listNotificationAttachments)
}

const listNotificationAttachmentsByNotification = `-- name: ListNotificationAttachmentsByNotification :many` + selectNotificationAttachmentDetail + `WHERE a.notification_id = ?
ORDER BY a.id
`

// ListNotificationAttachmentsByNotification は通知に紐づく添付ファイルをID順に取得する。
func (q *Queries) ListNotificationAttachmentsByNotification(ctx context.Context, notificationID int64) ([]NotificationAttachmentDetail, error) {
	return q.listNotificationAttachmentDetails(ctx, listNotificationAttachmentsByNotification, notificationID)
}

const updateNotificationAttachment = `-- name: UpdateNotificationAttachment :exec
UPDATE notification_attachments
SET notification_id = ?, file_name = ?, mime_type = ?, file_path = ?
WHERE id = ?
`

// UpdateNotificationAttachmentParams は UpdateNotificationAttachment の引数。
type UpdateNotificationAttachmentParams struct {
	NotificationID int64
	FileName       string
	MimeType       string
	FilePath       string
	ID             int64
}

// UpdateNotificationAttachment は添付ファイルの紐づけ先と内容を上書きする。
func (q *Queries) UpdateNotificationAttachment(ctx context.Context, arg UpdateNotificationAttachmentParams) error {
	_, err := q.db.ExecContext(ctx, updateNotificationAttachment,
		arg.NotificationID,
		arg.FileName,
		arg.MimeType,
		arg.FilePath,
		arg.ID,
	)
	return err
}

const deleteNotificationAttachment = `-- name: DeleteNotificationAttachment :exec
DELETE FROM notification_attachments WHERE id = ?
`

// DeleteNotificationAttachment は添付ファイルを削除する。
func (q *Queries) DeleteNotificationAttachment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteNotificationAttachment, id)
	return err
}
