package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nao1215/notification-api/internal/config"
	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
	"github.com/nao1215/notification-api/internal/service"
	"github.com/nao1215/notification-api/pkg/middleware"
)

// serviceName はヘルスチェックで返すサービス名。
const serviceName = "notification-api"

// Server は通知APIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg はサーバー設定。
	cfg *config.Config
	// db はSQLiteデータベース接続。
	db *sql.DB
	// log は構造化ロガー。
	log *zap.Logger

	users         *service.UserService
	templates     *service.EmailTemplateService
	notifications *service.NotificationService
	attachments   *service.NotificationAttachmentService
}

// NewServer は新しい通知APIサーバーを生成する。
// sqlDB にはマイグレーション適用済みの接続を渡す。
func NewServer(cfg *config.Config, sqlDB *sql.DB, log *zap.Logger) *Server {
	v := service.NewValidator()

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.Metrics(),
	)
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}

	s := &Server{
		router:        router,
		cfg:           cfg,
		db:            sqlDB,
		log:           log,
		users:         service.NewUserService(sqlDB, v, log),
		templates:     service.NewEmailTemplateService(sqlDB, v, log),
		notifications: service.NewNotificationService(sqlDB, v, log),
		attachments:   service.NewNotificationAttachmentService(sqlDB, v, log),
	}
	s.setupRoutes()

	return s
}

// Handler はHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctx がキャンセルされるまで待つ。
// キャンセル後は処理中のリクエストの完了を ShutdownTimeout まで待ってから停止する。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("シャットダウンを開始します", zap.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	if s.cfg.AuthEnabled() {
		api.Use(middleware.JWTAuth(s.cfg.JWTSecret))
	}
	{
		users := api.Group("/users")
		{
			users.POST("", s.handleCreateUser())
			users.GET("", s.handleListUsers())
			users.GET("/:id", s.handleGetUser())
			users.GET("/:id/notifications", s.handleListUserNotifications())
		}

		templates := api.Group("/email-templates")
		{
			templates.POST("", s.handleCreateEmailTemplate())
			templates.GET("", s.handleListEmailTemplates())
			templates.GET("/:id", s.handleGetEmailTemplate())
			templates.PUT("/:id", s.handleUpdateEmailTemplate())
			templates.DELETE("/:id", s.handleDeleteEmailTemplate())
		}

		notifications := api.Group("/notifications")
		{
			notifications.POST("", s.handleCreateNotification())
			// ?status= で絞り込める
			notifications.GET("", s.handleListNotifications())
			notifications.GET("/pending", s.handleListPendingNotifications())
			notifications.GET("/:id", s.handleGetNotification())
			notifications.POST("/:id/send", s.handleSendNotification())
		}

		attachments := api.Group("/notification-attachments")
		{
			attachments.POST("", s.handleCreateAttachment())
			attachments.GET("", s.handleListAttachments())
			attachments.GET("/notification/:notificationId", s.handleListAttachmentsByNotification())
			attachments.GET("/:id", s.handleGetAttachment())
			attachments.PUT("/:id", s.handleUpdateAttachment())
			attachments.DELETE("/:id", s.handleDeleteAttachment())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", s.handleHealth())
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": http.StatusNotFound})
	})
}

// handleHealth はDB接続とスキーマバージョンを確認するハンドラ。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.log.Warn("ヘルスチェックでDBに接続できません", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": serviceName})
			return
		}

		version, err := notificationdb.SchemaVersion(ctx, s.db)
		if err != nil {
			s.log.Warn("スキーマバージョンを取得できません", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": serviceName})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"service":        serviceName,
			"schema_version": version,
		})
	}
}
