package db

import (
	"context"
	"time"
)

const createEmailTemplate = `-- name: CreateEmailTemplate :one
INSERT INTO email_templates (name, subject_template, html_body_template, plain_text_body_template, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id
`

// CreateEmailTemplateParams は CreateEmailTemplate の引数。
type CreateEmailTemplateParams struct {
	Name                  string
	SubjectTemplate       string
	HTMLBodyTemplate      string
	PlainTextBodyTemplate string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CreateEmailTemplate はメールテンプレートを挿入し、採番されたIDを返す。
func (q *Queries) CreateEmailTemplate(ctx context.Context, arg CreateEmailTemplateParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createEmailTemplate,
		arg.Name,
		arg.SubjectTemplate,
		arg.HTMLBodyTemplate,
		arg.PlainTextBodyTemplate,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getEmailTemplateByName = `-- name: GetEmailTemplateByName :one
SELECT id, name, subject_template, html_body_template, plain_text_body_template, created_at, updated_at
FROM email_templates
WHERE name = ?
`

// GetEmailTemplateByName は名前でメールテンプレートを取得する。
func (q *Queries) GetEmailTemplateByName(ctx context.Context, name string) (EmailTemplate, error) {
	row := q.db.QueryRowContext(ctx, getEmailTemplateByName, name)
	var i EmailTemplate
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SubjectTemplate,
		&i.HTMLBodyTemplate,
		&i.PlainTextBodyTemplate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const selectEmailTemplateWithCount = `
SELECT t.id, t.name, t.subject_template, t.html_body_template, t.plain_text_body_template, t.created_at, t.updated_at,
       (SELECT COUNT(*) FROM notifications n WHERE n.email_template_id = t.id) AS notifications_count
FROM email_templates t
`

const getEmailTemplate = `-- name: GetEmailTemplate :one` + selectEmailTemplateWithCount + `WHERE t.id = ?
`

// GetEmailTemplate はIDでメールテンプレートと参照件数を取得する。
func (q *Queries) GetEmailTemplate(ctx context.Context, id int64) (EmailTemplateWithCount, error) {
	row := q.db.QueryRowContext(ctx, getEmailTemplate, id)
	var i EmailTemplateWithCount
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SubjectTemplate,
		&i.HTMLBodyTemplate,
		&i.PlainTextBodyTemplate,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.NotificationsCount,
	)
	return i, err
}

const listEmailTemplates = `-- name: ListEmailTemplates :many` + selectEmailTemplateWithCount + `ORDER BY t.id
`

// ListEmailTemplates はすべてのメールテンプレートをID順に取得する。
func (q *Queries) ListEmailTemplates(ctx context.Context) ([]EmailTemplateWithCount, error) {
	rows, err := q.db.QueryContext(ctx, listEmailTemplates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []EmailTemplateWithCount{}
	for rows.Next() {
		var i EmailTemplateWithCount
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.SubjectTemplate,
			&i.HTMLBodyTemplate,
			&i.PlainTextBodyTemplate,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.NotificationsCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateEmailTemplate = `-- name: UpdateEmailTemplate :exec
UPDATE email_templates
SET name = ?, subject_template = ?, html_body_template = ?, plain_text_body_template = ?, updated_at = ?
WHERE id = ?
`

// UpdateEmailTemplateParams は UpdateEmailTemplate の引数。
type UpdateEmailTemplateParams struct {
	Name                  string
	SubjectTemplate       string
	HTMLBodyTemplate      string
	PlainTextBodyTemplate string
	UpdatedAt             time.Time
	ID                    int64
}

// UpdateEmailTemplate はメールテンプレートの内容を上書きする。
func (q *Queries) UpdateEmailTemplate(ctx context.Context, arg UpdateEmailTemplateParams) error {
	_, err := q.db.ExecContext(ctx, updateEmailTemplate,
		arg.Name,
		arg.SubjectTemplate,
		arg.HTMLBodyTemplate,
		arg.PlainTextBodyTemplate,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const countNotificationsByEmailTemplate = `-- name: CountNotificationsByEmailTemplate :one
SELECT COUNT(*) FROM notifications WHERE email_template_id = ?
`

// CountNotificationsByEmailTemplate はメールテンプレートを参照している通知の件数を返す。
func (q *Queries) CountNotificationsByEmailTemplate(ctx context.Context, emailTemplateID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countNotificationsByEmailTemplate, emailTemplateID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteEmailTemplate = `-- name: DeleteEmailTemplate :exec
DELETE FROM email_templates WHERE id = ?
`

// DeleteEmailTemplate はメールテンプレートを削除する。
func (q *Queries) DeleteEmailTemplate(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteEmailTemplate, id)
	return err
}
