package db

import (
	"context"
	"database/sql"
	"embed"

	"go.uber.org/zap"

	"github.com/nao1215/notification-api/pkg/migration"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate はマイグレーションを実行してスキーマを最新にする。
func Migrate(ctx context.Context, sqlDB *sql.DB, log *zap.Logger) error {
	return migration.Run(ctx, sqlDB, migrationsFS, "migrations", log)
}

// SchemaVersion は適用済みのスキーマバージョンを返す。
func SchemaVersion(ctx context.Context, sqlDB *sql.DB) (int64, error) {
	return migration.Version(ctx, sqlDB, migrationsFS, "migrations")
}
