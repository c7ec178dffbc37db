package service

import (
	"database/sql"
	"time"

	"github.com/nao1215/notification-api/internal/domain"
	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
)

// TimeLayout はレスポンスに含める日時の書式。
const TimeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func formatNullTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := formatTime(t.Time)
	return &s
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

// UserResponse はユーザーのレスポンス。
type UserResponse struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	NotificationsCount int64  `json:"notifications_count"`
}

func toUserResponse(u notificationdb.UserWithCount) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		CreatedAt:          formatTime(u.CreatedAt),
		UpdatedAt:          formatTime(u.UpdatedAt),
		NotificationsCount: u.NotificationsCount,
	}
}

// EmailTemplateResponse はメールテンプレートのレスポンス。
type EmailTemplateResponse struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	SubjectTemplate       string `json:"subject_template"`
	HTMLBodyTemplate      string `json:"html_body_template"`
	PlainTextBodyTemplate string `json:"plain_text_body_template"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
	NotificationsCount    int64  `json:"notifications_count"`
}

func toEmailTemplateResponse(t notificationdb.EmailTemplateWithCount) EmailTemplateResponse {
	return EmailTemplateResponse{
		ID:                    t.ID,
		Name:                  t.Name,
		SubjectTemplate:       t.SubjectTemplate,
		HTMLBodyTemplate:      t.HTMLBodyTemplate,
		PlainTextBodyTemplate: t.PlainTextBodyTemplate,
		CreatedAt:             formatTime(t.CreatedAt),
		UpdatedAt:             formatTime(t.UpdatedAt),
		NotificationsCount:    t.NotificationsCount,
	}
}

// NotificationResponse は通知のレスポンス。
// UserName と UserEmail はユーザーが紐づいている場合のみ設定される。
type NotificationResponse struct {
	ID               int64                     `json:"id"`
	UserID           *int64                    `json:"user_id"`
	UserName         *string                   `json:"user_name"`
	UserEmail        *string                   `json:"user_email"`
	RecipientEmail   *string                   `json:"recipient_email"`
	Subject          string                    `json:"subject"`
	Body             string                    `json:"body"`
	Status           domain.NotificationStatus `json:"status"`
	StatusLabel      string                    `json:"status_label"`
	CreatedAt        string                    `json:"created_at"`
	SentAt           *string                   `json:"sent_at"`
	AttachmentsCount int64                     `json:"attachments_count"`
	EmailTemplateID  *int64                    `json:"email_template_id"`
}

func toNotificationResponse(n notificationdb.NotificationDetail) NotificationResponse {
	resp := NotificationResponse{
		ID:               n.ID,
		UserID:           nullInt64Ptr(n.UserID),
		RecipientEmail:   nullStringPtr(n.RecipientEmail),
		Subject:          n.Subject,
		Body:             n.Body,
		Status:           n.Status,
		StatusLabel:      n.Status.Label(),
		CreatedAt:        formatTime(n.CreatedAt),
		SentAt:           formatNullTime(n.SentAt),
		AttachmentsCount: n.AttachmentsCount,
		EmailTemplateID:  nullInt64Ptr(n.EmailTemplateID),
	}
	if n.UserEmail.Valid {
		name := n.UserFirstName.String + " " + n.UserLastName.String
		resp.UserName = &name
		resp.UserEmail = &n.UserEmail.String
	}
	return resp
}

func toNotificationResponses(rows []notificationdb.NotificationDetail) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		responses = append(responses, toNotificationResponse(n))
	}
	return responses
}

// NotificationAttachmentResponse は添付ファイルのレスポンス。
type NotificationAttachmentResponse struct {
	ID                  int64  `json:"id"`
	NotificationID      int64  `json:"notification_id"`
	NotificationSubject string `json:"notification_subject"`
	FileName            string `json:"file_name"`
	MimeType            string `json:"mime_type"`
	FilePath            string `json:"file_path"`
	CreatedAt           string `json:"created_at"`
}

func toNotificationAttachmentResponse(a notificationdb.NotificationAttachmentDetail) NotificationAttachmentResponse {
	return NotificationAttachmentResponse{
		ID:                  a.ID,
		NotificationID:      a.NotificationID,
		NotificationSubject: a.NotificationSubject,
		FileName:            a.FileName,
		MimeType:            a.MimeType,
		FilePath:            a.FilePath,
		CreatedAt:           formatTime(a.CreatedAt),
	}
}

func toNotificationAttachmentResponses(rows []notificationdb.NotificationAttachmentDetail) []NotificationAttachmentResponse {
	responses := make([]NotificationAttachmentResponse, 0, len(rows))
	for _, a := range rows {
		responses = append(responses, toNotificationAttachmentResponse(a))
	}
	return responses
}
