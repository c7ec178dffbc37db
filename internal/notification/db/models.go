package db

import (
	"database/sql"
	"time"

	"github.com/nao1215/notification-api/internal/domain"
)

// User は users テーブルの行。
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserWithCount はユーザーと紐づく通知件数。
type UserWithCount struct {
	User
	NotificationsCount int64
}

// EmailTemplate は email_templates テーブルの行。
type EmailTemplate struct {
	ID                    int64
	Name                  string
	SubjectTemplate       string
	HTMLBodyTemplate      string
	PlainTextBodyTemplate string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// EmailTemplateWithCount はメールテンプレートと参照している通知件数。
type EmailTemplateWithCount struct {
	EmailTemplate
	NotificationsCount int64
}

// Notification は notifications テーブルの行。
type Notification struct {
	ID              int64
	UserID          sql.NullInt64
	RecipientEmail  sql.NullString
	Subject         string
	Body            string
	Status          domain.NotificationStatus
	CreatedAt       time.Time
	SentAt          sql.NullTime
	EmailTemplateID sql.NullInt64
}

// NotificationDetail は通知に、紐づくユーザー情報と添付ファイル件数を結合した行。
type NotificationDetail struct {
	Notification
	UserEmail        sql.NullString
	UserFirstName    sql.NullString
	UserLastName     sql.NullString
	AttachmentsCount int64
}

// NotificationAttachment は notification_attachments テーブルの行。
type NotificationAttachment struct {
	ID             int64
	NotificationID int64
	FileName       string
	MimeType       string
	FilePath       string
	CreatedAt      time.Time
}

// NotificationAttachmentDetail は添付ファイルに所有する通知の件名を結合した行。
type NotificationAttachmentDetail struct {
	NotificationAttachment
	NotificationSubject string
}
