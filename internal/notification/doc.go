// Package notification は通知APIのHTTPサーバーを提供する。
//
// ユーザー、メールテンプレート、通知、添付ファイルのREST APIを公開する。
// ハンドラはリクエストをDTOに変換して internal/service に委譲し、
// 返されたエラーを種別に応じたHTTPステータスのJSONに変換する。
package notification
