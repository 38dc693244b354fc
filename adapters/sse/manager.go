package sse

import (
	"context"
	"log/slog"
	"sync"
)

type managerOptions[T any] struct {
	logger     *slog.Logger
	relay      IRelay[T]
	bufferSize int
}

type ManagerOption[T any] func(*managerOptions[T])

// WithLogger 設置日誌記錄器
func WithLogger[T any](logger *slog.Logger) ManagerOption[T] {
	return func(o *managerOptions[T]) {
		o.logger = logger
	}
}

// WithRelay 設置跨實例的訊息轉送，未設置時只在本機廣播
func WithRelay[T any](relay IRelay[T]) ManagerOption[T] {
	return func(o *managerOptions[T]) {
		o.relay = relay
	}
}

// WithSubscriberBuffer 設置每個訂閱者的緩衝大小
func WithSubscriberBuffer[T any](size int) ManagerOption[T] {
	return func(o *managerOptions[T]) {
		o.bufferSize = size
	}
}

// connectionManager 管理多個 SSE 頻道的訂閱與發布。
// 頻道名稱為頁面瀏覽的 session id，讓通知只送到對應的瀏覽器分頁。
type connectionManager[T any] struct {
	logger  *slog.Logger
	options managerOptions[T]

	mu     sync.RWMutex   // 保護 active 和 channels 的讀寫
	wg     sync.WaitGroup // 用於等待所有 goroutine 完成
	active bool           // 標記 manager 是否正在運作中

	channels map[string]IChannel[T] // 儲存所有活躍的頻道
}

// NewConnectionManager 建立一個新的連線管理器。
func NewConnectionManager[T any](opts ...ManagerOption[T]) IConnectionManager[T] {
	options := managerOptions[T]{
		logger:     slog.Default(),
		bufferSize: DefaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &connectionManager[T]{
		logger:   options.logger.With(slog.String("caller", "ConnectionManager")),
		options:  options,
		channels: make(map[string]IChannel[T]),
	}
}

// Start 啟動連線管理器，開始處理訊息的接收與廣播。
// 應在呼叫其他方法前先呼叫此方法。
func (cm *connectionManager[T]) Start() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.active {
		return
	}
	cm.active = true

	if cm.options.relay == nil {
		return
	}
	cm.options.relay.Start()
	ch := cm.options.relay.Subscribe()
	cm.wg.Add(1)
	go func() {
		defer cm.wg.Done()
		defer cm.logger.Info("relay listener stopped")
		for msg := range ch {
			cm.broadcast(msg.Channel, msg.Message)
		}
	}()
}

// Done 停止連線管理器的運作，關閉所有訂閱者通道。
func (cm *connectionManager[T]) Done() {
	cm.mu.Lock()
	if !cm.active {
		cm.mu.Unlock()
		return
	}
	cm.active = false
	cm.mu.Unlock()

	// relay 關閉後 Subscribe 的通道會被關閉，listener 隨之結束
	if cm.options.relay != nil {
		cm.options.relay.Close()
	}
	cm.wg.Wait()

	cm.mu.Lock()
	defer cm.mu.Unlock()
	for _, channel := range cm.channels {
		channel.UnsubscribeAll()
	}
	clear(cm.channels)
}

// Subscribe 訂閱指定的頻道。
func (cm *connectionManager[T]) Subscribe(channelName string) (<-chan T, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.active {
		return nil, context.Canceled
	}

	c, ok := cm.channels[channelName]
	if !ok {
		c = NewChannel[T](cm.options.bufferSize)
		cm.channels[channelName] = c
	}
	return c.Subscribe(), nil
}

// Publish 發布訊息到指定的頻道。
// 設置 relay 時訊息經由 relay 送出，再由 listener 廣播到本機頻道。
func (cm *connectionManager[T]) Publish(channelName string, data T) error {
	cm.mu.RLock()
	active := cm.active
	cm.mu.RUnlock()
	if !active {
		return context.Canceled
	}

	if cm.options.relay != nil {
		return cm.options.relay.Publish(PublishRequest[T]{
			Channel: channelName,
			Message: data,
		})
	}
	cm.broadcast(channelName, data)
	return nil
}

func (cm *connectionManager[T]) broadcast(channelName string, data T) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	channel, ok := cm.channels[channelName]
	if !ok {
		cm.logger.Debug("no subscriber for channel", slog.String("channel", channelName))
		return
	}
	delivered := channel.Broadcast(data)
	cm.logger.Debug("message broadcast", slog.String("channel", channelName), slog.Int("delivered", delivered))
}

// Unsubscribe 取消訂閱指定的頻道，頻道沒有訂閱者時一併移除。
func (cm *connectionManager[T]) Unsubscribe(channelName string, ch <-chan T) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	c, ok := cm.channels[channelName]
	if !ok {
		return
	}

	c.Unsubscribe(ch)
	if c.IsIdle() {
		delete(cm.channels, channelName)
	}
}
