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

// EmailTemplateService はメールテンプレートのCRUDを扱う。
// テンプレートのプレースホルダーは保存するだけで展開はしない。
type EmailTemplateService struct {
	queries   *notificationdb.Queries
	validator *Validator
	log       *zap.Logger
	now       func() time.Time
}

// NewEmailTemplateService は新しい EmailTemplateService を生成する。
func NewEmailTemplateService(db *sql.DB, v *Validator, log *zap.Logger) *EmailTemplateService {
	return &EmailTemplateService{
		queries:   notificationdb.New(db),
		validator: v,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateEmailTemplate はメールテンプレートを作成する。
// 同名のテンプレートが存在する場合は Conflict を返す。
func (s *EmailTemplateService) CreateEmailTemplate(ctx context.Context, req EmailTemplateRequest) (EmailTemplateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return EmailTemplateResponse{}, err
	}

	if _, err := s.queries.GetEmailTemplateByName(ctx, req.Name); err == nil {
		return EmailTemplateResponse{}, templateNameExists(req.Name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return EmailTemplateResponse{}, fmt.Errorf("メールテンプレートの検索に失敗: %w", err)
	}

	now := s.now()
	id, err := s.queries.CreateEmailTemplate(ctx, notificationdb.CreateEmailTemplateParams{
		Name:                  req.Name,
		SubjectTemplate:       req.SubjectTemplate,
		HTMLBodyTemplate:      req.HTMLBodyTemplate,
		PlainTextBodyTemplate: req.PlainTextBodyTemplate,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		if notificationdb.IsUniqueViolation(err) {
			return EmailTemplateResponse{}, templateNameExists(req.Name)
		}
		return EmailTemplateResponse{}, fmt.Errorf("メールテンプレートの作成に失敗: %w", err)
	}

	s.log.Info("メールテンプレートを作成しました", zap.Int64("email_template_id", id))
	return toEmailTemplateResponse(notificationdb.EmailTemplateWithCount{
		EmailTemplate: notificationdb.EmailTemplate{
			ID:                    id,
			Name:                  req.Name,
			SubjectTemplate:       req.SubjectTemplate,
			HTMLBodyTemplate:      req.HTMLBodyTemplate,
			PlainTextBodyTemplate: req.PlainTextBodyTemplate,
			CreatedAt:             now,
			UpdatedAt:             now,
		},
	}), nil
}

// GetEmailTemplate はメールテンプレートを取得する。
func (s *EmailTemplateService) GetEmailTemplate(ctx context.Context, id int64) (EmailTemplateResponse, error) {
	t, err := s.getEmailTemplate(ctx, id)
	if err != nil {
		return EmailTemplateResponse{}, err
	}
	return toEmailTemplateResponse(t), nil
}

// GetAllEmailTemplates はすべてのメールテンプレートを返す。
func (s *EmailTemplateService) GetAllEmailTemplates(ctx context.Context) ([]EmailTemplateResponse, error) {
	templates, err := s.queries.ListEmailTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("メールテンプレート一覧の取得に失敗: %w", err)
	}
	responses := make([]EmailTemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, toEmailTemplateResponse(t))
	}
	return responses, nil
}

// UpdateEmailTemplate はメールテンプレートを上書きする。
// 自身以外のテンプレートと名前が重複する場合は Conflict を返す。
func (s *EmailTemplateService) UpdateEmailTemplate(ctx context.Context, id int64, req EmailTemplateRequest) (EmailTemplateResponse, error) {
	current, err := s.getEmailTemplate(ctx, id)
	if err != nil {
		return EmailTemplateResponse{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		return EmailTemplateResponse{}, err
	}

	existing, err := s.queries.GetEmailTemplateByName(ctx, req.Name)
	switch {
	case err == nil && existing.ID != id:
		return EmailTemplateResponse{}, templateNameExists(req.Name)
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return EmailTemplateResponse{}, fmt.Errorf("メールテンプレートの検索に失敗: %w", err)
	}

	now := s.now()
	if err := s.queries.UpdateEmailTemplate(ctx, notificationdb.UpdateEmailTemplateParams{
		Name:                  req.Name,
		SubjectTemplate:       req.SubjectTemplate,
		HTMLBodyTemplate:      req.HTMLBodyTemplate,
		PlainTextBodyTemplate: req.PlainTextBodyTemplate,
		UpdatedAt:             now,
		ID:                    id,
	}); err != nil {
		if notificationdb.IsUniqueViolation(err) {
			return EmailTemplateResponse{}, templateNameExists(req.Name)
		}
		return EmailTemplateResponse{}, fmt.Errorf("メールテンプレートの更新に失敗: %w", err)
	}

	current.Name = req.Name
	current.SubjectTemplate = req.SubjectTemplate
	current.HTMLBodyTemplate = req.HTMLBodyTemplate
	current.PlainTextBodyTemplate = req.PlainTextBodyTemplate
	current.UpdatedAt = now
	return toEmailTemplateResponse(current), nil
}

// DeleteEmailTemplate はメールテンプレートを削除する。
// 通知から参照されている場合は InUse を返す。
func (s *EmailTemplateService) DeleteEmailTemplate(ctx context.Context, id int64) error {
	if _, err := s.getEmailTemplate(ctx, id); err != nil {
		return err
	}

	count, err := s.queries.CountNotificationsByEmailTemplate(ctx, id)
	if err != nil {
		return fmt.Errorf("参照件数の取得に失敗: %w", err)
	}
	if count > 0 {
		return templateInUse(id)
	}

	if err := s.queries.DeleteEmailTemplate(ctx, id); err != nil {
		if notificationdb.IsForeignKeyViolation(err) {
			return templateInUse(id)
		}
		return fmt.Errorf("メールテンプレートの削除に失敗: %w", err)
	}

	metrics.EmailTemplatesDeleted.Inc()
	s.log.Info("メールテンプレートを削除しました", zap.Int64("email_template_id", id))
	return nil
}

func (s *EmailTemplateService) getEmailTemplate(ctx context.Context, id int64) (notificationdb.EmailTemplateWithCount, error) {
	t, err := s.queries.GetEmailTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, templateNotFound(id)
		}
		return t, fmt.Errorf("メールテンプレートの取得に失敗: %w", err)
	}
	return t, nil
}

func templateNotFound(id int64) error {
	return apperror.NotFound("Email template with ID %d not found", id)
}

func templateNameExists(name string) error {
	return apperror.Conflict("Email template with name %q already exists", name)
}

func templateInUse(id int64) error {
	return apperror.InUse("Cannot delete email template with ID %d because it is being used by notifications", id)
}
