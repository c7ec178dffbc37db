package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/notification-api/internal/apperror"
	"github.com/nao1215/notification-api/internal/service"
)

// maxBodyBytes はリクエストボディの上限。
const maxBodyBytes = 1 << 20

// bindJSON はリクエストボディを空でないJSONオブジェクトとして dst にデコードする。
// JSONとして解釈できない場合は errInvalidJSON、型が合わない項目は検証エラーを返す。
func bindJSON(c *gin.Context, dst any) error {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("リクエストボディの読み込みに失敗: %w", err)
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil || len(object) == 0 {
		return errInvalidJSON
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperror.Validation([]string{typeMessage(typeErr)})
		}
		return errInvalidJSON
	}
	return nil
}

// typeMessage は型不一致の項目をメッセージに変換する。
func typeMessage(err *json.UnmarshalTypeError) string {
	field := err.Field
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	label := service.Label(field)

	kind := err.Type.Kind()
	if kind == reflect.Pointer {
		kind = err.Type.Elem().Kind()
	}
	switch kind {
	case reflect.Int, reflect.Int64:
		return label + " must be an integer"
	case reflect.String:
		return label + " must be a string"
	case reflect.Slice:
		return label + " must be an array"
	default:
		return label + " has an invalid type"
	}
}

// pathID はパスパラメータを正の整数IDとして取り出す。
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Invalid("Invalid ID")
	}
	return id, nil
}
