package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/vmihailenco/msgpack/v5"
)

// MemoryStore 實現了 IStore 介面，將 session 資料保存在行程內的 freecache
// 適合單一實例部署，重啟後所有頁面狀態都會消失
type MemoryStore struct {
	cache   *freecache.Cache
	options MemoryStoreOptions
}

// MemoryStoreOptions 定義了 MemoryStore 的配置選項
type MemoryStoreOptions struct {
	Prefix string
	TTL    time.Duration
	SizeMB int
}

type MemoryStoreOption func(*MemoryStoreOptions)

// WithMemoryStorePrefix 設定 key 前綴
func WithMemoryStorePrefix(prefix string) MemoryStoreOption {
	return func(o *MemoryStoreOptions) {
		o.Prefix = prefix
	}
}

// WithMemoryStoreTTL 設定資料的存活時間，每次 Save 都會重新計算
func WithMemoryStoreTTL(ttl time.Duration) MemoryStoreOption {
	return func(o *MemoryStoreOptions) {
		o.TTL = ttl
	}
}

// WithMemoryStoreSize 設定快取大小 (MB)
func WithMemoryStoreSize(sizeMB int) MemoryStoreOption {
	return func(o *MemoryStoreOptions) {
		o.SizeMB = sizeMB
	}
}

// NewMemoryStore 建立一個新的 MemoryStore 實例
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	options := MemoryStoreOptions{
		TTL:    time.Hour,
		SizeMB: 16,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &MemoryStore{
		cache:   freecache.NewCache(options.SizeMB * 1024 * 1024),
		options: options,
	}
}

// Load 載入指定名稱的資料，不存在時回傳空的 map
func (s *MemoryStore) Load(_ context.Context, name string) (map[string]string, error) {
	const op = "session.MemoryStore.Load"
	raw, err := s.cache.Get([]byte(s.options.Prefix + name))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%s: failed to get entry: %w", op, err)
	}
	data := make(map[string]string)
	if err := msgpack.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%s: failed to decode entry: %w", op, err)
	}
	return data, nil
}

// Save 以新資料整筆覆蓋舊資料，空資料直接刪除
func (s *MemoryStore) Save(_ context.Context, name string, data map[string]string) error {
	const op = "session.MemoryStore.Save"
	key := []byte(s.options.Prefix + name)
	if len(data) == 0 {
		s.cache.Del(key)
		return nil
	}
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("%s: failed to encode entry: %w", op, err)
	}
	if err := s.cache.Set(key, raw, int(s.options.TTL.Seconds())); err != nil {
		return fmt.Errorf("%s: failed to set entry: %w", op, err)
	}
	return nil
}
