package api

import (
	"time"

	"uncommon/models"
)

type ServerConfig struct {
	Listing ListingConfig
	Session SessionConfig
	S3      S3Config
	Redis   RedisConfig
}

type ListingConfig struct {
	Listing       models.Listing
	Mode          models.Mode
	StrictAmounts bool
	BidIncrement  int64
}

type SessionConfig struct {
	KeyForCookie string
	CookieMaxAge time.Duration
	CookieSecure bool
}

type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	Region          string
	Bucket          string
	PublicBaseURL   string
	UsePathStyle    bool
	PresignExpires  time.Duration
}

// Enabled 設定 bucket 後才使用物件儲存產生縮圖網址
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string

	StreamKeys RedisStreamKeys
}

// Enabled 未設定位址時 session 存在記憶體，通知只在本機廣播
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// SessionPrefix 是 session hash 的 key 前綴
func (c RedisConfig) SessionPrefix() string {
	return c.KeyPrefix + "session:"
}

// SSEStream 是跨實例轉送通知的 stream key
func (c RedisConfig) SSEStream() string {
	return c.KeyPrefix + c.StreamKeys.SSE
}

type RedisStreamKeys struct {
	SSE string
}
