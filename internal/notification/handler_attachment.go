package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/notification-api/internal/service"
)

func (s *Server) handleCreateAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.NotificationAttachmentRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		a, err := s.attachments.CreateAttachment(c.Request.Context(), req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func (s *Server) handleListAttachments() gin.HandlerFunc {
	return func(c *gin.Context) {
		attachments, err := s.attachments.GetAllAttachments(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, attachments)
	}
}

// handleListAttachmentsByNotification は通知に紐づく添付ファイル一覧を返すハンドラ。
// 通知が存在しない場合は404を返す。
func (s *Server) handleListAttachmentsByNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		notificationID, err := pathID(c, "notificationId")
		if err != nil {
			s.respondError(c, err)
			return
		}

		attachments, err := s.attachments.GetAttachmentsByNotification(c.Request.Context(), notificationID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, attachments)
	}
}

func (s *Server) handleGetAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		a, err := s.attachments.GetAttachment(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func (s *Server) handleUpdateAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		var req service.NotificationAttachmentRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		a, err := s.attachments.UpdateAttachment(c.Request.Context(), id, req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func (s *Server) handleDeleteAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		if err := s.attachments.DeleteAttachment(c.Request.Context(), id); err != nil {
			s.respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
