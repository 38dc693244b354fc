package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type consumerOptions[T any] struct {
	logger       *slog.Logger
	bufferSize   int
	blockTimeout time.Duration
	errorBackoff time.Duration
	parseFunc    func(map[string]any) (T, error)
}

type ConsumerOption[T any] func(*consumerOptions[T])

// WithConsumerLogger 設置日誌記錄器
func WithConsumerLogger[T any](logger *slog.Logger) ConsumerOption[T] {
	return func(o *consumerOptions[T]) {
		o.logger = logger
	}
}

// WithConsumerBufferSize 設置下游channel的緩衝大小
func WithConsumerBufferSize[T any](size int) ConsumerOption[T] {
	return func(o *consumerOptions[T]) {
		o.bufferSize = size
	}
}

// WithConsumerBlockTimeout 設置阻塞讀取超時時間
func WithConsumerBlockTimeout[T any](d time.Duration) ConsumerOption[T] {
	return func(o *consumerOptions[T]) {
		o.blockTimeout = d
	}
}

// WithConsumerErrorBackoff 設置讀取失敗後重試前的等待時間
func WithConsumerErrorBackoff[T any](d time.Duration) ConsumerOption[T] {
	return func(o *consumerOptions[T]) {
		o.errorBackoff = d
	}
}

// WithConsumerParseFunc 設置自定義解析函數
func WithConsumerParseFunc[T any](fn func(map[string]any) (T, error)) ConsumerOption[T] {
	return func(o *consumerOptions[T]) {
		o.parseFunc = fn
	}
}

// Consumer 從 stream 的尾端開始讀取新訊息，每個實例都會收到全部訊息。
type Consumer[T any] struct {
	client  *redis.Client
	stream  string
	logger  *slog.Logger
	options consumerOptions[T]

	mu         sync.Mutex
	lastID     string
	downStream chan T
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	closed     bool
}

func NewConsumer[T any](client *redis.Client, stream string, opts ...ConsumerOption[T]) (IConsumer[T], error) {
	const op = "redis.NewConsumer"
	if client == nil {
		return nil, fmt.Errorf("%s: redis client cannot be nil", op)
	}
	if stream == "" {
		return nil, fmt.Errorf("%s: stream cannot be empty", op)
	}

	options := consumerOptions[T]{
		logger:       slog.Default(),
		bufferSize:   100,
		blockTimeout: time.Second,
		errorBackoff: 500 * time.Millisecond,
		parseFunc:    DefaultParseFromMessage[T],
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Consumer[T]{
		client:  client,
		stream:  stream,
		lastID:  "$",
		closed:  true,
		logger:  options.logger.With(slog.String("caller", "Consumer"), slog.String("stream", stream)),
		options: options,
	}, nil
}

func (s *Consumer[T]) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.downStream = make(chan T, s.options.bufferSize)
	s.closed = false
	s.cancelFunc = cancel
	s.logger.Info("starting stream consumer")

	s.wg.Add(1)
	go s.run(ctx, s.downStream)
}

func (s *Consumer[T]) run(ctx context.Context, downStream chan<- T) {
	defer s.wg.Done()
	defer s.logger.Info("consumer goroutine stopped")
	defer close(downStream)

	for ctx.Err() == nil {
		message, err := s.fetchNextMessage(ctx)
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			s.logger.Error("fetch message error", slog.Any("error", err))
			// 連線異常時避免空轉
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.options.errorBackoff):
			}
			continue
		}

		data, err := s.options.parseFunc(message.Values)
		if err != nil {
			s.logger.Error("failed to parse message",
				slog.String("messageId", message.ID),
				slog.Any("error", err))
			continue
		}

		select {
		case <-ctx.Done():
			return
		case downStream <- data:
			s.logger.Debug("message sent to downstream", slog.String("messageId", message.ID))
		}
	}
}

func (s *Consumer[T]) fetchNextMessage(ctx context.Context) (redis.XMessage, error) {
	streams, err := s.client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{s.stream, s.lastID},
		Count:   1,
		Block:   s.options.blockTimeout,
	}).Result()
	if err != nil {
		return redis.XMessage{}, err
	}

	if len(streams) > 0 && len(streams[0].Messages) > 0 {
		message := streams[0].Messages[0]
		s.lastID = message.ID
		s.logger.Debug("received message", slog.String("messageId", message.ID))
		return message, nil
	}
	return redis.XMessage{}, redis.Nil
}

// Subscribe 回傳下游通道，Close 後通道會被關閉
func (s *Consumer[T]) Subscribe() <-chan T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downStream
}

// Close 關閉消費者
func (s *Consumer[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.logger.Info("closing stream consumer")
	s.closed = true
	s.cancelFunc()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("stream consumer closed")
}
