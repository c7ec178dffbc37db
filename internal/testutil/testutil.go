// Package testutil はテスト用のデータベースを提供する。
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
)

// NewDB はマイグレーション適用済みのインメモリSQLiteを生成する。
// テスト終了時に接続を閉じる。
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("インメモリDBの作成に失敗: %v", err)
	}
	// インメモリDBは接続ごとに別物になるため、接続を1本に固定する。
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := notificationdb.Migrate(context.Background(), sqlDB, zap.NewNop()); err != nil {
		t.Fatalf("マイグレーションに失敗: %v", err)
	}
	return sqlDB
}
