package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/notification-api/internal/apperror"
	"github.com/nao1215/notification-api/pkg/middleware"
)

// errInvalidJSON はリクエストボディがJSONオブジェクトとして解釈できないことを表す。
var errInvalidJSON = errors.New("invalid JSON")

// respondError はエラーを種別に応じたHTTPステータスのJSONで返す。
// 種別を持たないエラーは原因をログに残し、500として詳細を隠す。
func (s *Server) respondError(c *gin.Context, err error) {
	if errors.Is(err, errInvalidJSON) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		status := appErr.Kind.HTTPStatus()
		body := gin.H{"error": appErr.Message, "code": status}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		c.AbortWithStatusJSON(status, body)
		return
	}

	s.log.Error("リクエストの処理に失敗しました",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  http.StatusInternalServerError,
	})
}
