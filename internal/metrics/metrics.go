// Package metrics は通知APIのドメインメトリクスを定義する。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsCreated は作成された通知の件数。
	NotificationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Total number of notifications created",
		},
	)

	// NotificationsSent は送信済みに遷移した通知の件数。
	NotificationsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notifications transitioned to sent",
		},
	)

	// AttachmentsCreated は登録された添付ファイルの件数。
	// source は notification（通知作成時）、send（送信時）、api（単体作成）のいずれか。
	AttachmentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_attachments_created_total",
			Help: "Total number of notification attachments created",
		},
		[]string{"source"},
	)

	// EmailTemplatesDeleted は削除されたメールテンプレートの件数。
	EmailTemplatesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "email_templates_deleted_total",
			Help: "Total number of email templates deleted",
		},
	)
)
