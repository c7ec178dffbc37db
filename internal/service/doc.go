// Package service は通知APIのドメインサービスを提供する。
//
// 各サービスはリクエストを検証し、エンティティ間の不変条件を確認したうえで
// internal/notification/db のクエリを実行してレスポンスを組み立てる。
// 失敗は apperror.Error として返し、HTTPステータスへの変換は呼び出し側に任せる。
package service
