package service

import (
	"context"
	"database/sql"
	"fmt"

	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
)

// withTx はトランザクション内で fn を実行する。
// fn がエラーを返した場合はロールバックし、そのエラーをそのまま返す。
func withTx(ctx context.Context, db *sql.DB, queries *notificationdb.Queries, fn func(q *notificationdb.Queries) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return nil
}
