// Package domain は通知ドメインの値オブジェクトを提供する。
package domain

import "fmt"

// NotificationStatus は通知のライフサイクル上の状態を表す。
//
// 作成時は常に pending。送信操作で pending から sent に遷移する。
// failed、delivered、archived は外部からの更新用に予約された状態。
type NotificationStatus string

const (
	// StatusPending は送信待ちの状態。
	StatusPending NotificationStatus = "pending"
	// StatusSent は送信済みの状態。
	StatusSent NotificationStatus = "sent"
	// StatusFailed は送信に失敗した状態。
	StatusFailed NotificationStatus = "failed"
	// StatusDelivered は配信が確認された状態。
	StatusDelivered NotificationStatus = "delivered"
	// StatusArchived はアーカイブされた状態。
	StatusArchived NotificationStatus = "archived"
)

// Statuses は定義済みのすべての状態を定義順に返す。
func Statuses() []NotificationStatus {
	return []NotificationStatus{StatusPending, StatusSent, StatusFailed, StatusDelivered, StatusArchived}
}

// ParseNotificationStatus は文字列を NotificationStatus に変換する。
func ParseNotificationStatus(s string) (NotificationStatus, error) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown notification status %q", s)
}

// Label は人間向けの表示名を返す。
func (s NotificationStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSent:
		return "Sent"
	case StatusFailed:
		return "Failed"
	case StatusDelivered:
		return "Delivered"
	case StatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}

// IsCompleted は処理が完了した状態かどうかを返す。
func (s NotificationStatus) IsCompleted() bool {
	switch s {
	case StatusSent, StatusDelivered, StatusArchived:
		return true
	default:
		return false
	}
}

// CanBeSent は送信可能な状態かどうかを返す。送信できるのは pending のみ。
func (s NotificationStatus) CanBeSent() bool {
	return s == StatusPending
}
