package service

// CreateUserRequest はユーザー作成リクエスト。
type CreateUserRequest struct {
	Email     string `json:"email" validate:"notblank,email,max=255"`
	FirstName string `json:"first_name" validate:"notblank,max=255"`
	LastName  string `json:"last_name" validate:"notblank,max=255"`
}

// EmailTemplateRequest はメールテンプレートの作成・更新リクエスト。
type EmailTemplateRequest struct {
	Name                  string `json:"name" validate:"notblank,max=255"`
	SubjectTemplate       string `json:"subject_template" validate:"notblank,max=255"`
	HTMLBodyTemplate      string `json:"html_body_template" validate:"notblank"`
	PlainTextBodyTemplate string `json:"plain_text_body_template" validate:"notblank"`
}

// AttachmentInput は通知の作成・送信時に同時に登録する添付ファイル。
type AttachmentInput struct {
	FileName string `json:"file_name" validate:"notblank,max=255"`
	MimeType string `json:"mime_type" validate:"notblank,max=100"`
	FilePath string `json:"file_path" validate:"notblank,max=500"`
}

// NotificationAttachmentRequest は添付ファイルの作成・更新リクエスト。
type NotificationAttachmentRequest struct {
	NotificationID *int64 `json:"notification_id" validate:"required,gt=0"`
	FileName       string `json:"file_name" validate:"notblank,max=255"`
	MimeType       string `json:"mime_type" validate:"notblank,max=100"`
	FilePath       string `json:"file_path" validate:"notblank,max=500"`
}

// CreateNotificationRequest は通知作成リクエスト。
// UserID と RecipientEmail は少なくとも一方が必要で、両方の指定も許可する。
type CreateNotificationRequest struct {
	Subject         string            `json:"subject" validate:"notblank,max=255"`
	Body            string            `json:"body" validate:"notblank"`
	UserID          *int64            `json:"user_id" validate:"omitempty,gt=0"`
	RecipientEmail  *string           `json:"recipient_email" validate:"omitempty,email,max=255"`
	EmailTemplateID *int64            `json:"email_template_id" validate:"omitempty,gt=0"`
	Attachments     []AttachmentInput `json:"attachments" validate:"dive"`
}

// hasRecipient は宛先が指定されているかを返す。
func (r CreateNotificationRequest) hasRecipient() bool {
	return r.UserID != nil || r.RecipientEmail != nil
}

// SendNotificationRequest は送信時に任意で渡すリクエスト。
type SendNotificationRequest struct {
	Attachments []AttachmentInput `json:"attachments" validate:"dive"`
}
