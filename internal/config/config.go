// Package config は環境変数からアプリケーション設定を読み込む。
//
// 任意の .env ファイルを先に読み込み、既に設定済みの環境変数は上書きしない。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config は通知APIの設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8080"`
	// DatabasePath はSQLiteデータベースファイルのパス。":memory:" も指定できる。
	DatabasePath string `env:"DATABASE_PATH" envDefault:"/data/notification.db"`
	// LogLevel はログレベル（debug, info, warn, error）。
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat はログ形式（json, console）。
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	// GinMode はGinの動作モード（release, debug, test）。
	GinMode string `env:"GIN_MODE" envDefault:"release"`
	// JWTSecret はJWTの署名鍵。空の場合は認証を無効にする。
	JWTSecret string `env:"JWT_SECRET"`
	// CORSAllowedOrigins はCORSで許可するオリジン。
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// ShutdownTimeout はグレースフルシャットダウンの待ち時間。
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// ReadHeaderTimeout はリクエストヘッダー読み込みのタイムアウト。
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
}

// Load は .env ファイルと環境変数から設定を読み込む。
// envFiles を省略した場合はカレントディレクトリの .env を読む。存在しないファイルは無視する。
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s の読み込みに失敗: %w", f, err)
		}
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("PORT が不正です: %q", c.Port)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT が不正です: %q", c.LogFormat)
	}
	if c.DatabasePath == "" {
		return errors.New("DATABASE_PATH が空です")
	}
	return nil
}

// Addr はHTTPサーバーのリッスンアドレスを返す。
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// DSN はSQLiteの接続文字列を返す。
// 外部キー制約を有効にし、書き込みトランザクションは即時にロックを取得する。
func (c *Config) DSN() string {
	if c.InMemory() {
		return "file::memory:?_pragma=foreign_keys(1)&_txlock=immediate"
	}
	return "file:" + c.DatabasePath +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

// InMemory はインメモリDBを使うかどうかを返す。
func (c *Config) InMemory() bool {
	return c.DatabasePath == ":memory:"
}

// AuthEnabled はJWT認証が有効かどうかを返す。
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
