package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/notification-api/internal/apperror"
	"github.com/nao1215/notification-api/internal/domain"
	"github.com/nao1215/notification-api/internal/service"
)

// sendResponse は送信結果のレスポンス。通知の内容に message を加える。
type sendResponse struct {
	service.NotificationResponse
	// Message は送信完了メッセージ。
	Message string `json:"message"`
}

// handleCreateNotification は通知を作成するハンドラ。
func (s *Server) handleCreateNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateNotificationRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		n, err := s.notifications.CreateNotification(c.Request.Context(), req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, n)
	}
}

// handleListNotifications は通知一覧を返すハンドラ。
// status クエリが指定された場合はそのステータスで絞り込む。
func (s *Server) handleListNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			notifications []service.NotificationResponse
			err           error
		)
		if raw, ok := c.GetQuery("status"); ok {
			status, parseErr := domain.ParseNotificationStatus(raw)
			if parseErr != nil {
				s.respondError(c, apperror.Invalid("Invalid status %q", raw))
				return
			}
			notifications, err = s.notifications.GetNotificationsByStatus(c.Request.Context(), status)
		} else {
			notifications, err = s.notifications.GetAllNotifications(c.Request.Context())
		}
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}

// handleListPendingNotifications は送信待ちの通知一覧を返すハンドラ。
func (s *Server) handleListPendingNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications, err := s.notifications.GetPendingNotifications(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}

func (s *Server) handleGetNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		n, err := s.notifications.GetNotification(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	}
}

// handleSendNotification は通知を送信済みにするハンドラ。
// ボディは任意で、JSONオブジェクトとして解釈できない場合は添付ファイルなしとして扱う。
func (s *Server) handleSendNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		var req *service.SendNotificationRequest
		var body service.SendNotificationRequest
		switch err := bindJSON(c, &body); {
		case err == nil:
			req = &body
		case apperror.KindOf(err) == apperror.KindValidation:
			s.respondError(c, err)
			return
		}

		n, err := s.notifications.SendNotification(c.Request.Context(), id, req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sendResponse{
			NotificationResponse: n,
			Message:              "Notification sent successfully",
		})
	}
}
