package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nao1215/notification-api/internal/apperror"
	"github.com/nao1215/notification-api/internal/domain"
	"github.com/nao1215/notification-api/internal/metrics"
	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
)

// NotificationService は通知の作成、参照、送信を扱う。
//
// 通知は常に pending で作成され、Send によってのみ sent に遷移する。
// 送信は状態遷移のみで、実際のメール配送は行わない。
type NotificationService struct {
	db        *sql.DB
	queries   *notificationdb.Queries
	validator *Validator
	log       *zap.Logger
	now       func() time.Time
}

// NewNotificationService は新しい NotificationService を生成する。
func NewNotificationService(db *sql.DB, v *Validator, log *zap.Logger) *NotificationService {
	return &NotificationService{
		db:        db,
		queries:   notificationdb.New(db),
		validator: v,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateNotification は通知を pending で作成する。
// リクエストに添付ファイルが含まれる場合は同じトランザクションで登録する。
func (s *NotificationService) CreateNotification(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	// 空のメールアドレスは未指定として扱う。
	if req.RecipientEmail != nil && *req.RecipientEmail == "" {
		req.RecipientEmail = nil
	}

	if err := s.validator.Struct(req); err != nil {
		return NotificationResponse{}, err
	}
	if !req.hasRecipient() {
		return NotificationResponse{}, apperror.Invalid("Either user_id or recipient_email must be provided")
	}

	var created notificationdb.NotificationDetail
	err := withTx(ctx, s.db, s.queries, func(q *notificationdb.Queries) error {
		params := notificationdb.CreateNotificationParams{
			Subject:   req.Subject,
			Body:      req.Body,
			Status:    domain.StatusPending,
			CreatedAt: s.now(),
		}

		if req.UserID != nil {
			if _, err := q.GetUser(ctx, *req.UserID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return userNotFound(*req.UserID)
				}
				return fmt.Errorf("ユーザーの取得に失敗: %w", err)
			}
			params.UserID = sql.NullInt64{Int64: *req.UserID, Valid: true}
		}

		if req.RecipientEmail != nil {
			params.RecipientEmail = sql.NullString{String: *req.RecipientEmail, Valid: true}
		}

		if req.EmailTemplateID != nil {
			if _, err := q.GetEmailTemplate(ctx, *req.EmailTemplateID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return templateNotFound(*req.EmailTemplateID)
				}
				return fmt.Errorf("メールテンプレートの取得に失敗: %w", err)
			}
			params.EmailTemplateID = sql.NullInt64{Int64: *req.EmailTemplateID, Valid: true}
		}

		id, err := q.CreateNotification(ctx, params)
		if err != nil {
			return fmt.Errorf("通知の作成に失敗: %w", err)
		}

		if err := s.createAttachments(ctx, q, id, req.Attachments); err != nil {
			return err
		}

		created, err = q.GetNotification(ctx, id)
		if err != nil {
			return fmt.Errorf("通知の取得に失敗: %w", err)
		}
		return nil
	})
	if err != nil {
		return NotificationResponse{}, err
	}

	metrics.NotificationsCreated.Inc()
	metrics.AttachmentsCreated.WithLabelValues("notification").Add(float64(len(req.Attachments)))
	s.log.Info("通知を作成しました",
		zap.Int64("notification_id", created.ID),
		zap.Int("attachments", len(req.Attachments)),
	)
	return toNotificationResponse(created), nil
}

// GetNotification は通知を取得する。
func (s *NotificationService) GetNotification(ctx context.Context, id int64) (NotificationResponse, error) {
	n, err := s.queries.GetNotification(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NotificationResponse{}, notificationNotFound(id)
		}
		return NotificationResponse{}, fmt.Errorf("通知の取得に失敗: %w", err)
	}
	return toNotificationResponse(n), nil
}

// GetAllNotifications はすべての通知を返す。
func (s *NotificationService) GetAllNotifications(ctx context.Context) ([]NotificationResponse, error) {
	rows, err := s.queries.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("通知一覧の取得に失敗: %w", err)
	}
	return toNotificationResponses(rows), nil
}

// GetPendingNotifications は送信待ちの通知を返す。
func (s *NotificationService) GetPendingNotifications(ctx context.Context) ([]NotificationResponse, error) {
	return s.GetNotificationsByStatus(ctx, domain.StatusPending)
}

// GetNotificationsByStatus は指定したステータスの通知を返す。
func (s *NotificationService) GetNotificationsByStatus(ctx context.Context, status domain.NotificationStatus) ([]NotificationResponse, error) {
	rows, err := s.queries.ListNotificationsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("通知一覧の取得に失敗: %w", err)
	}
	return toNotificationResponses(rows), nil
}

// GetNotificationsByUser はユーザー宛ての通知を返す。
// ユーザーが存在しない場合は空のスライスを返す。
func (s *NotificationService) GetNotificationsByUser(ctx context.Context, userID int64) ([]NotificationResponse, error) {
	rows, err := s.queries.ListNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("通知一覧の取得に失敗: %w", err)
	}
	return toNotificationResponses(rows), nil
}

// SendNotification は pending の通知を sent に遷移させる。
// req に添付ファイルが含まれる場合は、遷移と同じトランザクションで登録する。
// pending 以外の通知は InvalidState を返す。
func (s *NotificationService) SendNotification(ctx context.Context, id int64, req *SendNotificationRequest) (NotificationResponse, error) {
	var attachments []AttachmentInput
	if req != nil {
		attachments = req.Attachments
	}

	var sent notificationdb.NotificationDetail
	err := withTx(ctx, s.db, s.queries, func(q *notificationdb.Queries) error {
		status, err := q.GetNotificationStatus(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notificationNotFound(id)
			}
			return fmt.Errorf("通知の取得に失敗: %w", err)
		}
		if !status.CanBeSent() {
			return cannotBeSent(status)
		}

		if req != nil {
			if err := s.validator.Struct(req); err != nil {
				return err
			}
		}
		if err := s.createAttachments(ctx, q, id, attachments); err != nil {
			return err
		}

		affected, err := q.MarkNotificationSent(ctx, notificationdb.MarkNotificationSentParams{
			SentAt: s.now(),
			ID:     id,
		})
		if err != nil {
			return fmt.Errorf("通知の更新に失敗: %w", err)
		}
		if affected == 0 {
			// 確認後に他のリクエストが先に遷移させた。
			current, err := q.GetNotificationStatus(ctx, id)
			if err != nil {
				return fmt.Errorf("通知の取得に失敗: %w", err)
			}
			return cannotBeSent(current)
		}

		sent, err = q.GetNotification(ctx, id)
		if err != nil {
			return fmt.Errorf("通知の取得に失敗: %w", err)
		}
		return nil
	})
	if err != nil {
		return NotificationResponse{}, err
	}

	metrics.NotificationsSent.Inc()
	metrics.AttachmentsCreated.WithLabelValues("send").Add(float64(len(attachments)))
	s.log.Info("通知を送信しました",
		zap.Int64("notification_id", id),
		zap.Int("attachments", len(attachments)),
	)
	return toNotificationResponse(sent), nil
}

// createAttachments は通知に添付ファイルをまとめて登録する。
func (s *NotificationService) createAttachments(ctx context.Context, q *notificationdb.Queries, notificationID int64, attachments []AttachmentInput) error {
	now := s.now()
	for _, a := range attachments {
		if _, err := q.CreateNotificationAttachment(ctx, notificationdb.CreateNotificationAttachmentParams{
			NotificationID: notificationID,
			FileName:       a.FileName,
			MimeType:       a.MimeType,
			FilePath:       a.FilePath,
			CreatedAt:      now,
		}); err != nil {
			return fmt.Errorf("添付ファイルの作成に失敗: %w", err)
		}
	}
	return nil
}

func notificationNotFound(id int64) error {
	return apperror.NotFound("Notification with ID %d not found", id)
}

func cannotBeSent(status domain.NotificationStatus) error {
	return apperror.InvalidState("Notification cannot be sent. Current status: %s", status)
}
