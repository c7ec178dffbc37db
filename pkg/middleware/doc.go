// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// パニックリカバリ、リクエストID付与、zapによるアクセスログ、
// Prometheusメトリクス、CORS、JWT認証を含む。
// エラー応答はすべて {"error": ..., "code": ...} 形式のJSONで返す。
package middleware

import "github.com/gin-gonic/gin"

// abortJSON はエラー応答を返してハンドラチェーンを中断する。
func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": status})
}
