package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/notification-api/internal/domain"
	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
	"github.com/nao1215/notification-api/internal/testutil"
)

func TestSchemaVersion(t *testing.T) {
	t.Parallel()

	v, err := notificationdb.SchemaVersion(context.Background(), testutil.NewDB(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestConstraintErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := notificationdb.New(testutil.NewDB(t))
	now := time.Now().UTC()

	params := notificationdb.CreateUserParams{Email: "a@example.com", FirstName: "A", LastName: "B", CreatedAt: now, UpdatedAt: now}
	_, err := q.CreateUser(ctx, params)
	require.NoError(t, err)

	_, err = q.CreateUser(ctx, params)
	require.Error(t, err)
	assert.True(t, notificationdb.IsUniqueViolation(err))
	assert.False(t, notificationdb.IsForeignKeyViolation(err))

	_, err = q.CreateNotificationAttachment(ctx, notificationdb.CreateNotificationAttachmentParams{
		NotificationID: 999, FileName: "a", MimeType: "b", FilePath: "c", CreatedAt: now,
	})
	require.Error(t, err)
	assert.True(t, notificationdb.IsForeignKeyViolation(err))

	assert.False(t, notificationdb.IsUniqueViolation(errors.New("other")))
	assert.False(t, notificationdb.IsUniqueViolation(nil))
}

func TestMarkNotificationSent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := notificationdb.New(testutil.NewDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	id, err := q.CreateNotification(ctx, notificationdb.CreateNotificationParams{
		RecipientEmail: sql.NullString{String: "r@example.com", Valid: true},
		Subject:        "S",
		Body:           "B",
		Status:         domain.StatusPending,
		CreatedAt:      now,
	})
	require.NoError(t, err)

	rows, err := q.MarkNotificationSent(ctx, notificationdb.MarkNotificationSentParams{SentAt: now, ID: id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// 送信済みの通知は更新されない
	rows, err = q.MarkNotificationSent(ctx, notificationdb.MarkNotificationSentParams{SentAt: now, ID: id})
	require.NoError(t, err)
	assert.Zero(t, rows)

	got, err := q.GetNotification(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, got.Status)
	require.True(t, got.SentAt.Valid)
	assert.True(t, got.SentAt.Time.Equal(now))
	assert.False(t, got.UserEmail.Valid)

	_, err = q.GetNotificationStatus(ctx, id+1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteEmailTemplate_Restrict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := notificationdb.New(testutil.NewDB(t))
	now := time.Now().UTC()

	tmplID, err := q.CreateEmailTemplate(ctx, notificationdb.CreateEmailTemplateParams{
		Name: "t", SubjectTemplate: "s", HTMLBodyTemplate: "h", PlainTextBodyTemplate: "p", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	_, err = q.CreateNotification(ctx, notificationdb.CreateNotificationParams{
		RecipientEmail:  sql.NullString{String: "r@example.com", Valid: true},
		Subject:         "S",
		Body:            "B",
		Status:          domain.StatusPending,
		CreatedAt:       now,
		EmailTemplateID: sql.NullInt64{Int64: tmplID, Valid: true},
	})
	require.NoError(t, err)

	count, err := q.CountNotificationsByEmailTemplate(ctx, tmplID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = q.DeleteEmailTemplate(ctx, tmplID)
	require.Error(t, err)
	assert.True(t, notificationdb.IsForeignKeyViolation(err))
}
