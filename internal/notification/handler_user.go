package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/notification-api/internal/service"
)

// handleCreateUser はユーザーを作成するハンドラ。
func (s *Server) handleCreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateUserRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		user, err := s.users.CreateUser(c.Request.Context(), req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// handleListUsers はユーザー一覧を返すハンドラ。
func (s *Server) handleListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.users.GetAllUsers(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// handleGetUser はユーザーを1件返すハンドラ。
func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		user, err := s.users.GetUser(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// handleListUserNotifications はユーザー宛ての通知一覧を返すハンドラ。
func (s *Server) handleListUserNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		notifications, err := s.notifications.GetNotificationsByUser(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}
