package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/nao1215/notification-api/internal/apperror"
)

// fieldLabels はJSONフィールド名とエラーメッセージに使う表示名の対応。
var fieldLabels = map[string]string{
	"email":                    "Email",
	"first_name":               "First name",
	"last_name":                "Last name",
	"name":                     "Name",
	"subject_template":         "Subject template",
	"html_body_template":       "HTML body template",
	"plain_text_body_template": "Plain text body template",
	"subject":                  "Subject",
	"body":                     "Body",
	"user_id":                  "User ID",
	"recipient_email":          "Recipient email",
	"email_template_id":        "Email template ID",
	"notification_id":          "Notification ID",
	"file_name":                "File name",
	"mime_type":                "MIME type",
	"file_path":                "File path",
	"attachments":              "Attachments",
}

// Label はJSONフィールド名に対応する表示名を返す。
func Label(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// Validator はリクエスト構造体の validate タグを検証する。
// 違反は表示用メッセージに変換し、apperror.Validation として返す。
type Validator struct {
	validate *validator.Validate
}

// NewValidator は新しい Validator を生成する。
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// 空白のみの文字列も未入力として扱う。
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("notblank の登録に失敗: %v", err))
	}
	return &Validator{validate: v}
}

// Struct は構造体を検証する。
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("リクエストの検証に失敗: %w", err)
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, violationMessage(fe))
	}
	return apperror.Validation(details)
}

// violationMessage は検証エラー1件をメッセージに変換する。
// 添付ファイル配列の要素は "Attachment #n: " を前置する。
func violationMessage(fe validator.FieldError) string {
	label := Label(fe.Field())

	var msg string
	switch fe.Tag() {
	case "required", "notblank":
		msg = label + " is required"
	case "max":
		msg = fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "email":
		msg = label + " must be a valid email address"
	case "gt":
		msg = label + " must be positive"
	default:
		msg = fmt.Sprintf("%s is invalid", label)
	}

	if n, ok := attachmentIndex(fe.Namespace()); ok {
		return fmt.Sprintf("Attachment #%d: %s", n+1, msg)
	}
	return msg
}

// attachmentIndex は "CreateNotificationRequest.attachments[2].file_name" のような
// 名前空間から配列の添字を取り出す。
func attachmentIndex(namespace string) (int, bool) {
	const marker = "attachments["
	start := strings.Index(namespace, marker)
	if start < 0 {
		return 0, false
	}
	rest := namespace[start+len(marker):]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
