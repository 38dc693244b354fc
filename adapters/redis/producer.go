package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/smallnest/chanx"
)

// DefaultStreamMaxLen 限制 stream 的長度，通知只需保留最近的部分
const DefaultStreamMaxLen = 1000

type producerOptions[T any] struct {
	logger     *slog.Logger
	bufferSize int
	maxLen     int64
	parseFunc  func(T) (map[string]any, error)
}

type ProducerOption[T any] func(*producerOptions[T])

// WithProducerLogger 設置日誌記錄器
func WithProducerLogger[T any](logger *slog.Logger) ProducerOption[T] {
	return func(o *producerOptions[T]) {
		o.logger = logger
	}
}

// WithProducerBufferSize 設置緩衝大小
func WithProducerBufferSize[T any](size int) ProducerOption[T] {
	return func(o *producerOptions[T]) {
		o.bufferSize = size
	}
}

// WithProducerMaxLen 設置 stream 的近似最大長度，0 表示不修剪
func WithProducerMaxLen[T any](maxLen int64) ProducerOption[T] {
	return func(o *producerOptions[T]) {
		o.maxLen = maxLen
	}
}

// WithProducerParseFunc 設置消息序列化函數
func WithProducerParseFunc[T any](fn func(T) (map[string]any, error)) ProducerOption[T] {
	return func(o *producerOptions[T]) {
		o.parseFunc = fn
	}
}

// Producer 將訊息非同步地寫入 Redis stream。
// Publish 不會因為 Redis 延遲而阻塞，訊息先放入無界緩衝再由背景 goroutine 寫出。
type Producer[T any] struct {
	client  *redis.Client
	stream  string
	logger  *slog.Logger
	options producerOptions[T]

	mu         sync.RWMutex
	upstream   *chanx.UnboundedChan[map[string]any]
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	closed     bool
}

func NewProducer[T any](client *redis.Client, stream string, opts ...ProducerOption[T]) (*Producer[T], error) {
	const op = "redis.NewProducer"
	if client == nil {
		return nil, fmt.Errorf("%s: redis client cannot be nil", op)
	}
	if stream == "" {
		return nil, fmt.Errorf("%s: stream cannot be empty", op)
	}

	options := producerOptions[T]{
		logger:     slog.Default(),
		bufferSize: 100,
		maxLen:     DefaultStreamMaxLen,
		parseFunc:  DefaultParseToMessage[T],
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Producer[T]{
		client:  client,
		stream:  stream,
		closed:  true,
		logger:  options.logger.With(slog.String("caller", "Producer"), slog.String("stream", stream)),
		options: options,
	}, nil
}

func (p *Producer[T]) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.upstream = chanx.NewUnboundedChan[map[string]any](ctx, p.options.bufferSize)
	p.cancelFunc = cancel
	p.closed = false
	p.logger.Info("starting stream producer")

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.logger.Info("producer goroutine stopped")

		for {
			select {
			case <-ctx.Done():
				return
			case message, ok := <-p.upstream.Out:
				if !ok {
					return
				}
				p.add(ctx, message)
			}
		}
	}()
}

func (p *Producer[T]) add(ctx context.Context, message map[string]any) {
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: message,
	}
	if p.options.maxLen > 0 {
		args.MaxLen = p.options.maxLen
		args.Approx = true
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Error("publish message error", slog.Any("error", err))
		}
		return
	}
	p.logger.Debug("message published", slog.String("messageId", id))
}

// Publish 將訊息放入發送緩衝，序列化失敗時立即回傳錯誤
func (p *Producer[T]) Publish(data T) error {
	const op = "redis.Producer.Publish"
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	message, err := p.options.parseFunc(data)
	if err != nil {
		return fmt.Errorf("%s: parse message error: %w", op, err)
	}

	p.upstream.In <- message
	return nil
}

func (p *Producer[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.logger.Info("closing stream producer")
	p.closed = true
	p.cancelFunc()
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("stream producer closed")
}
