package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/notification-api/internal/apperror"
)

func attachmentRequest(notificationID int64, name string) NotificationAttachmentRequest {
	return NotificationAttachmentRequest{
		NotificationID: &notificationID,
		FileName:       name,
		MimeType:       "application/pdf",
		FilePath:       "/uploads/" + name,
	}
}

func TestNotificationAttachmentService_CreateAttachment(t *testing.T) {
	t.Parallel()

	t.Run("通知に添付ファイルを追加できる", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		n := s.createNotification(t, CreateNotificationRequest{Subject: "Invoice", Body: "B", RecipientEmail: ptr("r@example.com")})

		a, err := s.attachments.CreateAttachment(context.Background(), attachmentRequest(n.ID, "invoice.pdf"))
		require.NoError(t, err)
		assert.Equal(t, n.ID, a.NotificationID)
		assert.Equal(t, "Invoice", a.NotificationSubject)
		assert.Equal(t, "invoice.pdf", a.FileName)
		assert.Equal(t, "application/pdf", a.MimeType)
		assert.Equal(t, "/uploads/invoice.pdf", a.FilePath)

		got, err := s.notifications.GetNotification(context.Background(), n.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.AttachmentsCount)
	})

	t.Run("存在しない通知には追加できない", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		_, err := s.attachments.CreateAttachment(context.Background(), attachmentRequest(99, "a.pdf"))
		requireKind(t, err, apperror.KindNotFound)
		assert.EqualError(t, err, "Notification with ID 99 not found")
	})

	t.Run("検証エラー", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		_, err := s.attachments.CreateAttachment(context.Background(), NotificationAttachmentRequest{})
		requireKind(t, err, apperror.KindValidation)
	})
}

func TestNotificationAttachmentService_Read(t *testing.T) {
	t.Parallel()

	s := newServices(t)
	first := s.createNotification(t, CreateNotificationRequest{Subject: "first", Body: "B", RecipientEmail: ptr("a@example.com")})
	second := s.createNotification(t, CreateNotificationRequest{Subject: "second", Body: "B", RecipientEmail: ptr("b@example.com")})

	ctx := context.Background()
	a1, err := s.attachments.CreateAttachment(ctx, attachmentRequest(first.ID, "1.pdf"))
	require.NoError(t, err)
	_, err = s.attachments.CreateAttachment(ctx, attachmentRequest(second.ID, "2.pdf"))
	require.NoError(t, err)

	t.Run("IDで取得できる", func(t *testing.T) {
		got, err := s.attachments.GetAttachment(ctx, a1.ID)
		require.NoError(t, err)
		assert.Equal(t, a1, got)
	})

	t.Run("存在しないIDは NotFound", func(t *testing.T) {
		_, err := s.attachments.GetAttachment(ctx, 1000)
		requireKind(t, err, apperror.KindNotFound)
		assert.EqualError(t, err, "Notification attachment with ID 1000 not found")
	})

	t.Run("一覧を取得できる", func(t *testing.T) {
		all, err := s.attachments.GetAllAttachments(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("通知ごとに取得できる", func(t *testing.T) {
		list, err := s.attachments.GetAttachmentsByNotification(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "1.pdf", list[0].FileName)
	})

	t.Run("通知が存在しなければ空ではなく NotFound", func(t *testing.T) {
		_, err := s.attachments.GetAttachmentsByNotification(ctx, 500)
		requireKind(t, err, apperror.KindNotFound)
	})
}

func TestNotificationAttachmentService_UpdateAttachment(t *testing.T) {
	t.Parallel()

	t.Run("別の通知に付け替えられる", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		ctx := context.Background()
		from := s.createNotification(t, CreateNotificationRequest{Subject: "from", Body: "B", RecipientEmail: ptr("a@example.com")})
		to := s.createNotification(t, CreateNotificationRequest{Subject: "to", Body: "B", RecipientEmail: ptr("b@example.com")})
		a, err := s.attachments.CreateAttachment(ctx, attachmentRequest(from.ID, "old.pdf"))
		require.NoError(t, err)

		updated, err := s.attachments.UpdateAttachment(ctx, a.ID, attachmentRequest(to.ID, "new.pdf"))
		require.NoError(t, err)
		assert.Equal(t, to.ID, updated.NotificationID)
		assert.Equal(t, "to", updated.NotificationSubject)
		assert.Equal(t, "new.pdf", updated.FileName)
		assert.Equal(t, a.CreatedAt, updated.CreatedAt)

		fromAfter, err := s.notifications.GetNotification(ctx, from.ID)
		require.NoError(t, err)
		assert.Zero(t, fromAfter.AttachmentsCount)
	})

	t.Run("付け替え先の通知が存在しなければ NotFound", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		ctx := context.Background()
		n := s.createNotification(t, CreateNotificationRequest{Subject: "S", Body: "B", RecipientEmail: ptr("a@example.com")})
		a, err := s.attachments.CreateAttachment(ctx, attachmentRequest(n.ID, "a.pdf"))
		require.NoError(t, err)

		_, err = s.attachments.UpdateAttachment(ctx, a.ID, attachmentRequest(n.ID+100, "a.pdf"))
		requireKind(t, err, apperror.KindNotFound)
	})

	t.Run("添付ファイルが存在しなければ NotFound", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		_, err := s.attachments.UpdateAttachment(context.Background(), 3, attachmentRequest(1, "a.pdf"))
		requireKind(t, err, apperror.KindNotFound)
	})
}

func TestNotificationAttachmentService_DeleteAttachment(t *testing.T) {
	t.Parallel()

	s := newServices(t)
	ctx := context.Background()
	n := s.createNotification(t, CreateNotificationRequest{Subject: "S", Body: "B", RecipientEmail: ptr("a@example.com")})
	a, err := s.attachments.CreateAttachment(ctx, attachmentRequest(n.ID, "a.pdf"))
	require.NoError(t, err)

	require.NoError(t, s.attachments.DeleteAttachment(ctx, a.ID))

	err = s.attachments.DeleteAttachment(ctx, a.ID)
	requireKind(t, err, apperror.KindNotFound)

	got, err := s.notifications.GetNotification(ctx, n.ID)
	require.NoError(t, err)
	assert.Zero(t, got.AttachmentsCount)
}
