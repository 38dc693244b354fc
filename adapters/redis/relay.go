package redis

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type relayOptions struct {
	logger       *slog.Logger
	blockTimeout time.Duration
	maxLen       int64
}

type RelayOption func(*relayOptions)

// WithRelayLogger 設置日誌記錄器
func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(o *relayOptions) {
		o.logger = logger
	}
}

// WithRelayBlockTimeout 設置消費端的阻塞讀取時間
func WithRelayBlockTimeout(d time.Duration) RelayOption {
	return func(o *relayOptions) {
		o.blockTimeout = d
	}
}

// WithRelayMaxLen 設置 stream 的近似最大長度
func WithRelayMaxLen(maxLen int64) RelayOption {
	return func(o *relayOptions) {
		o.maxLen = maxLen
	}
}

// StreamRelay 在同一個 stream 上同時寫入與讀取，
// 讓任一實例發布的訊息都能被所有實例（包含自己）收到。
type StreamRelay[M any] struct {
	producer IProducer[M]
	consumer IConsumer[M]
}

// NewStreamRelay 建立一個新的 StreamRelay
func NewStreamRelay[M any](client *redis.Client, stream string, opts ...RelayOption) (*StreamRelay[M], error) {
	const op = "redis.NewStreamRelay"
	options := relayOptions{
		logger:       slog.Default(),
		blockTimeout: time.Second,
		maxLen:       DefaultStreamMaxLen,
	}
	for _, opt := range opts {
		opt(&options)
	}

	producer, err := NewProducer(client, stream,
		WithProducerLogger[M](options.logger),
		WithProducerMaxLen[M](options.maxLen),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	consumer, err := NewConsumer(client, stream,
		WithConsumerLogger[M](options.logger),
		WithConsumerBlockTimeout[M](options.blockTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &StreamRelay[M]{producer: producer, consumer: consumer}, nil
}

// Start 先啟動消費端，避免漏掉自己剛送出的訊息
func (r *StreamRelay[M]) Start() {
	r.consumer.Start()
	r.producer.Start()
}

// Subscribe 回傳從 stream 收到的訊息，Close 後通道會被關閉
func (r *StreamRelay[M]) Subscribe() <-chan M {
	return r.consumer.Subscribe()
}

// Publish 將訊息寫入 stream
func (r *StreamRelay[M]) Publish(message M) error {
	return r.producer.Publish(message)
}

// Close 停止寫入與讀取
func (r *StreamRelay[M]) Close() {
	r.producer.Close()
	r.consumer.Close()
}
