package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger はアクセスログのレベルと項目を検証する。
func TestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{name: "2xxはinfo", status: http.StatusOK, level: zapcore.InfoLevel},
		{name: "4xxはwarn", status: http.StatusNotFound, level: zapcore.WarnLevel},
		{name: "5xxはerror", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			router := gin.New()
			router.Use(RequestID(), Logger(zap.New(core)))
			router.GET("/items", func(c *gin.Context) {
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if logs.Len() != 1 {
				t.Fatalf("ログ件数 = %d, want 1", logs.Len())
			}
			entry := logs.All()[0]
			if entry.Level != tt.level {
				t.Errorf("Level = %v, want %v", entry.Level, tt.level)
			}
			fields := entry.ContextMap()
			if fields["path"] != "/items" {
				t.Errorf("path = %v, want %q", fields["path"], "/items")
			}
			if fields["status"] != int64(tt.status) {
				t.Errorf("status = %v, want %d", fields["status"], tt.status)
			}
			if fields["request_id"] == "" {
				t.Error("request_id が空")
			}
		})
	}
}
