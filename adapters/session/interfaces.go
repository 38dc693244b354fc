//go:generate mockgen -package=session -destination=mock.go -source=interfaces.go

package session

import "context"

// IStore 以頁面瀏覽 id 保存欄位，Save 空的 map 等同刪除
type IStore interface {
	Load(ctx context.Context, name string) (map[string]string, error)
	Save(ctx context.Context, name string, data map[string]string) error
}

// ISession 是一次頁面瀏覽的暫存狀態，欄位值以 msgpack 編碼
type ISession interface {
	ID() string
	Load() error
	Decode(key string, v any) (bool, error)
	Encode(key string, v any) error
	Take(key string, v any) (bool, error)
	Delete(key string)
	Unmount()
	Save() error
}
