package redis

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// messageField 是 stream entry 中存放編碼後資料的欄位
const messageField = "data"

var (
	ErrPointerType = errors.New("pointer type is not allowed")
	ErrClosed      = errors.New("stream client is closed")
)

// DefaultParseToMessage 以 msgpack 序列化後 base64 編碼，放入單一欄位
func DefaultParseToMessage[T any](data T) (map[string]any, error) {
	const op = "redis.DefaultParseToMessage"
	if reflect.TypeOf(data).Kind() == reflect.Ptr {
		return nil, fmt.Errorf("%s: %w", op, ErrPointerType)
	}

	bytes, err := msgpack.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: msgpack marshal error: %w", op, err)
	}

	return map[string]any{
		messageField: base64.StdEncoding.EncodeToString(bytes),
	}, nil
}

// DefaultParseFromMessage 為 DefaultParseToMessage 的反向操作
func DefaultParseFromMessage[T any](message map[string]any) (T, error) {
	const op = "redis.DefaultParseFromMessage"
	var result T

	if reflect.TypeOf(result).Kind() == reflect.Ptr {
		return result, fmt.Errorf("%s: %w", op, ErrPointerType)
	}

	// 空訊息視為零值
	if len(message) == 0 {
		return result, nil
	}

	encoded, ok := message[messageField].(string)
	if !ok {
		return result, fmt.Errorf("%s: %s field not found or invalid type", op, messageField)
	}

	bytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return result, fmt.Errorf("%s: base64 decode error: %w", op, err)
	}

	if err := msgpack.Unmarshal(bytes, &result); err != nil {
		return result, fmt.Errorf("%s: msgpack unmarshal error: %w", op, err)
	}

	return result, nil
}
