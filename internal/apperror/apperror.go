// Package apperror はドメイン層で発生するエラーの種類（Kind）を定義する。
//
// エラーの種類は発生箇所で確定し、HTTPステータスへの変換は Kind.HTTPStatus に集約する。
// メッセージ文字列によるエラー分類は行わない。
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind はエラーの種類を表す。
type Kind int

const (
	// KindInternal は想定外のエラーを表す。
	KindInternal Kind = iota
	// KindValidation は入力値が制約を満たさないことを表す。
	KindValidation
	// KindNotFound は参照先のエンティティが存在しないことを表す。
	KindNotFound
	// KindConflict は一意制約に違反したことを表す。
	KindConflict
	// KindInvalidState は現在の状態では許可されない操作であることを表す。
	KindInvalidState
	// KindInUse は他のエンティティから参照されているため削除できないことを表す。
	KindInUse
)

// String はエラー種別の名前を返す。
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInUse:
		return "in_use"
	default:
		return "internal"
	}
}

// HTTPStatus はエラー種別に対応するHTTPステータスコードを返す。
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidState, KindInUse:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error はエラー種別とクライアント向けメッセージを持つドメインエラー。
type Error struct {
	// Kind はエラーの種類。
	Kind Kind
	// Message はクライアントに返す人間可読なメッセージ。
	Message string
	// Details はバリデーション違反などの個別メッセージ。
	Details []string
	// Err は原因となったエラー。
	Err error
}

// Error はエラーメッセージを返す。
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap は原因となったエラーを返す。
func (e *Error) Unwrap() error {
	return e.Err
}

// New は指定された種別のエラーを生成する。
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound はエンティティが存在しないことを表すエラーを生成する。
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Conflict は一意制約違反を表すエラーを生成する。
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// InvalidState は状態遷移が許可されないことを表すエラーを生成する。
func InvalidState(format string, args ...any) *Error {
	return New(KindInvalidState, format, args...)
}

// InUse は参照中のため削除できないことを表すエラーを生成する。
func InUse(format string, args ...any) *Error {
	return New(KindInUse, format, args...)
}

// Invalid は単一メッセージのバリデーションエラーを生成する。
func Invalid(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// Validation は複数の違反メッセージをまとめたバリデーションエラーを生成する。
// Message は "Validation failed: a, b" の形式になる。
func Validation(details []string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation failed: " + strings.Join(details, ", "),
		Details: details,
	}
}

// KindOf はエラーチェーンからエラー種別を取り出す。
// ドメインエラーを含まない場合は KindInternal を返す。
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
