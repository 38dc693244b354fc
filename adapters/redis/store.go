package redis

import (
	"context"
	"fmt"
	"time"

	"uncommon/adapters/session"

	"github.com/redis/go-redis/v9"
)

// DefaultStoreTTL 與 session cookie 的有效期一致
const DefaultStoreTTL = time.Hour

// Store 以 Redis hash 保存 session 資料，讓多個實例共用同一個頁面狀態
type Store struct {
	client  *redis.Client
	options StoreOptions
}

// StoreOptions 定義了 Store 的配置選項
type StoreOptions struct {
	Prefix string
	TTL    time.Duration
}

type StoreOption func(*StoreOptions)

// WithStorePrefix 設定 Store 的 key 前綴
func WithStorePrefix(prefix string) StoreOption {
	return func(o *StoreOptions) {
		o.Prefix = prefix
	}
}

// WithStoreTTL 設定每次寫入後 key 的存活時間，0 表示不過期
func WithStoreTTL(ttl time.Duration) StoreOption {
	return func(o *StoreOptions) {
		o.TTL = ttl
	}
}

// NewStore 建立一個新的 Store 實例
func NewStore(client *redis.Client, opts ...StoreOption) session.IStore {
	options := StoreOptions{TTL: DefaultStoreTTL}
	for _, opt := range opts {
		opt(&options)
	}

	return &Store{
		client:  client,
		options: options,
	}
}

// Load 從 Redis 中載入指定 session 的資料，key 不存在時回傳空 map
func (s *Store) Load(ctx context.Context, name string) (map[string]string, error) {
	const op = "redis.Store.Load"

	result, err := s.client.HGetAll(ctx, s.options.Prefix+name).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get hash: %w", op, err)
	}
	return result, nil
}

// saveScript 原子性地取代整個 hash 並更新存活時間。
// ARGV[1] 為毫秒 TTL，其後為欄位與值交錯排列。
var saveScript = redis.NewScript(`
local key = KEYS[1]
local ttl = tonumber(ARGV[1])
redis.call('DEL', key)
if #ARGV > 1 then
    redis.call('HSET', key, unpack(ARGV, 2))
    if ttl > 0 then
        redis.call('PEXPIRE', key, ttl)
    end
end
return 1
`)

// Save 以新的資料取代舊的資料，資料為空時等同刪除
func (s *Store) Save(ctx context.Context, name string, data map[string]string) error {
	const op = "redis.Store.Save"

	args := make([]any, 0, len(data)*2+1)
	args = append(args, s.options.TTL.Milliseconds())
	for k, v := range data {
		args = append(args, k, v)
	}

	if err := saveScript.Run(ctx, s.client, []string{s.options.Prefix + name}, args...).Err(); err != nil {
		return fmt.Errorf("%s: failed to execute save script: %w", op, err)
	}
	return nil
}
