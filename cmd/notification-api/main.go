// 通知APIのエントリポイント。
// ユーザー、メールテンプレート、通知、添付ファイルを管理するREST APIを起動する。
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/nao1215/notification-api/internal/config"
	"github.com/nao1215/notification-api/internal/notification"
	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
	"github.com/nao1215/notification-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ロガーの初期化に失敗: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		log.Fatal("データベースのオープンに失敗", zap.Error(err))
	}
	defer sqlDB.Close()
	if cfg.InMemory() {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := notificationdb.Migrate(ctx, sqlDB, log); err != nil {
		log.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	server := notification.NewServer(cfg, sqlDB, log)
	log.Info("通知APIを起動します",
		zap.String("addr", cfg.Addr()),
		zap.String("database", cfg.DatabasePath),
		zap.Bool("auth", cfg.AuthEnabled()),
	)
	if err := server.Run(ctx); err != nil {
		log.Fatal("通知APIの実行に失敗", zap.Error(err))
	}
	log.Info("通知APIを停止しました")
}
