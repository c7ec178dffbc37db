// 開発用のJWTを発行するコマンド。
// JWT_SECRET を設定した通知APIに対して動作確認するときに使う。
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nao1215/notification-api/internal/config"
	"github.com/nao1215/notification-api/pkg/middleware"
)

func main() {
	subject := flag.String("subject", "developer", "トークンのsubject")
	email := flag.String("email", "", "トークンに含めるメールアドレス")
	ttl := flag.Duration("ttl", time.Hour, "トークンの有効期間")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}
	if !cfg.AuthEnabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET が設定されていません")
		os.Exit(1)
	}

	token, err := middleware.GenerateJWT(cfg.JWTSecret, *subject, *email, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "トークンの生成に失敗: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
