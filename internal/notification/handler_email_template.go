package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/notification-api/internal/service"
)

func (s *Server) handleCreateEmailTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.EmailTemplateRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		tmpl, err := s.templates.CreateEmailTemplate(c.Request.Context(), req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tmpl)
	}
}

func (s *Server) handleListEmailTemplates() gin.HandlerFunc {
	return func(c *gin.Context) {
		templates, err := s.templates.GetAllEmailTemplates(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, templates)
	}
}

func (s *Server) handleGetEmailTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		tmpl, err := s.templates.GetEmailTemplate(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tmpl)
	}
}

// handleUpdateEmailTemplate はメールテンプレートを上書きするハンドラ。
func (s *Server) handleUpdateEmailTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		var req service.EmailTemplateRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		tmpl, err := s.templates.UpdateEmailTemplate(c.Request.Context(), id, req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tmpl)
	}
}

// handleDeleteEmailTemplate はメールテンプレートを削除するハンドラ。
// 通知から参照されているテンプレートは削除できない。
func (s *Server) handleDeleteEmailTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		if err := s.templates.DeleteEmailTemplate(c.Request.Context(), id); err != nil {
			s.respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
