package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nao1215/notification-api/internal/apperror"
	"github.com/nao1215/notification-api/internal/testutil"
)

// services はテスト用に同じDBを共有するサービス一式。
type services struct {
	db            *sql.DB
	users         *UserService
	templates     *EmailTemplateService
	attachments   *NotificationAttachmentService
	notifications *NotificationService
}

func newServices(t *testing.T) services {
	t.Helper()

	sqlDB := testutil.NewDB(t)
	v := NewValidator()
	log := zap.NewNop()
	return services{
		db:            sqlDB,
		users:         NewUserService(sqlDB, v, log),
		templates:     NewEmailTemplateService(sqlDB, v, log),
		attachments:   NewNotificationAttachmentService(sqlDB, v, log),
		notifications: NewNotificationService(sqlDB, v, log),
	}
}

func (s services) createUser(t *testing.T, email string) UserResponse {
	t.Helper()

	u, err := s.users.CreateUser(context.Background(), CreateUserRequest{
		Email:     email,
		FirstName: "Taro",
		LastName:  "Yamada",
	})
	require.NoError(t, err)
	return u
}

func (s services) createTemplate(t *testing.T, name string) EmailTemplateResponse {
	t.Helper()

	tmpl, err := s.templates.CreateEmailTemplate(context.Background(), EmailTemplateRequest{
		Name:                  name,
		SubjectTemplate:       "Hello {first_name}",
		HTMLBodyTemplate:      "<p>Hello {first_name}</p>",
		PlainTextBodyTemplate: "Hello {first_name}",
	})
	require.NoError(t, err)
	return tmpl
}

func (s services) createNotification(t *testing.T, req CreateNotificationRequest) NotificationResponse {
	t.Helper()

	n, err := s.notifications.CreateNotification(context.Background(), req)
	require.NoError(t, err)
	return n
}

func requireKind(t *testing.T, err error, want apperror.Kind) {
	t.Helper()

	require.Error(t, err)
	require.Equal(t, want, apperror.KindOf(err), "err = %v", err)
}

func ptr[T any](v T) *T {
	return &v
}
