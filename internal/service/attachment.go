package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nao1215/notification-api/internal/apperror"
	"github.com/nao1215/notification-api/internal/metrics"
	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
)

// NotificationAttachmentService は通知の添付ファイルを扱う。
// 添付ファイルは必ずいずれかの通知に所属する。
type NotificationAttachmentService struct {
	queries   *notificationdb.Queries
	validator *Validator
	log       *zap.Logger
	now       func() time.Time
}

// NewNotificationAttachmentService は新しい NotificationAttachmentService を生成する。
func NewNotificationAttachmentService(db *sql.DB, v *Validator, log *zap.Logger) *NotificationAttachmentService {
	return &NotificationAttachmentService{
		queries:   notificationdb.New(db),
		validator: v,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateAttachment は既存の通知に添付ファイルを追加する。
func (s *NotificationAttachmentService) CreateAttachment(ctx context.Context, req NotificationAttachmentRequest) (NotificationAttachmentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return NotificationAttachmentResponse{}, err
	}

	notificationID := *req.NotificationID
	if err := s.ensureNotification(ctx, notificationID); err != nil {
		return NotificationAttachmentResponse{}, err
	}

	id, err := s.queries.CreateNotificationAttachment(ctx, notificationdb.CreateNotificationAttachmentParams{
		NotificationID: notificationID,
		FileName:       req.FileName,
		MimeType:       req.MimeType,
		FilePath:       req.FilePath,
		CreatedAt:      s.now(),
	})
	if err != nil {
		if notificationdb.IsForeignKeyViolation(err) {
			return NotificationAttachmentResponse{}, notificationNotFound(notificationID)
		}
		return NotificationAttachmentResponse{}, fmt.Errorf("添付ファイルの作成に失敗: %w", err)
	}
	metrics.AttachmentsCreated.WithLabelValues("api").Inc()
	s.log.Info("添付ファイルを作成しました",
		zap.Int64("attachment_id", id),
		zap.Int64("notification_id", notificationID),
	)

	return s.GetAttachment(ctx, id)
}

// GetAttachment は添付ファイルを取得する。
func (s *NotificationAttachmentService) GetAttachment(ctx context.Context, id int64) (NotificationAttachmentResponse, error) {
	a, err := s.getAttachment(ctx, id)
	if err != nil {
		return NotificationAttachmentResponse{}, err
	}
	return toNotificationAttachmentResponse(a), nil
}

// GetAllAttachments はすべての添付ファイルを返す。
func (s *NotificationAttachmentService) GetAllAttachments(ctx context.Context) ([]NotificationAttachmentResponse, error) {
	attachments, err := s.queries.ListNotificationAttachments(ctx)
	if err != nil {
		return nil, fmt.Errorf("添付ファイル一覧の取得に失敗: %w", err)
	}
	return toNotificationAttachmentResponses(attachments), nil
}

// GetAttachmentsByNotification は通知に紐づく添付ファイルを返す。
// 通知自体が存在しない場合は NotFound を返す。
func (s *NotificationAttachmentService) GetAttachmentsByNotification(ctx context.Context, notificationID int64) ([]NotificationAttachmentResponse, error) {
	if err := s.ensureNotification(ctx, notificationID); err != nil {
		return nil, err
	}
	attachments, err := s.queries.ListNotificationAttachmentsByNotification(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("添付ファイル一覧の取得に失敗: %w", err)
	}
	return toNotificationAttachmentResponses(attachments), nil
}

// UpdateAttachment は添付ファイルを上書きする。
// 紐づけ先の通知が変わる場合は、新しい通知の存在を確認してから付け替える。
func (s *NotificationAttachmentService) UpdateAttachment(ctx context.Context, id int64, req NotificationAttachmentRequest) (NotificationAttachmentResponse, error) {
	current, err := s.getAttachment(ctx, id)
	if err != nil {
		return NotificationAttachmentResponse{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		return NotificationAttachmentResponse{}, err
	}

	notificationID := *req.NotificationID
	if notificationID != current.NotificationID {
		if err := s.ensureNotification(ctx, notificationID); err != nil {
			return NotificationAttachmentResponse{}, err
		}
	}

	if err := s.queries.UpdateNotificationAttachment(ctx, notificationdb.UpdateNotificationAttachmentParams{
		NotificationID: notificationID,
		FileName:       req.FileName,
		MimeType:       req.MimeType,
		FilePath:       req.FilePath,
		ID:             id,
	}); err != nil {
		if notificationdb.IsForeignKeyViolation(err) {
			return NotificationAttachmentResponse{}, notificationNotFound(notificationID)
		}
		return NotificationAttachmentResponse{}, fmt.Errorf("添付ファイルの更新に失敗: %w", err)
	}

	return s.GetAttachment(ctx, id)
}

// DeleteAttachment は添付ファイルを削除する。
func (s *NotificationAttachmentService) DeleteAttachment(ctx context.Context, id int64) error {
	if _, err := s.getAttachment(ctx, id); err != nil {
		return err
	}
	if err := s.queries.DeleteNotificationAttachment(ctx, id); err != nil {
		return fmt.Errorf("添付ファイルの削除に失敗: %w", err)
	}
	s.log.Info("添付ファイルを削除しました", zap.Int64("attachment_id", id))
	return nil
}

func (s *NotificationAttachmentService) getAttachment(ctx context.Context, id int64) (notificationdb.NotificationAttachmentDetail, error) {
	a, err := s.queries.GetNotificationAttachment(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, apperror.NotFound("Notification attachment with ID %d not found", id)
		}
		return a, fmt.Errorf("添付ファイルの取得に失敗: %w", err)
	}
	return a, nil
}

// ensureNotification は通知が存在することを確認する。
func (s *NotificationAttachmentService) ensureNotification(ctx context.Context, notificationID int64) error {
	if _, err := s.queries.GetNotificationStatus(ctx, notificationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notificationNotFound(notificationID)
		}
		return fmt.Errorf("通知の取得に失敗: %w", err)
	}
	return nil
}
