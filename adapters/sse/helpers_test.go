package sse_test

import (
	"io"
	"log/slog"
	"sync"

	"uncommon/adapters/sse"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Message 表示一個 SSE 訊息，包含資料字段。
type Message struct {
	Data string `json:"data"`
}

// loopbackRelay 將發布的訊息直接送回訂閱通道，模擬只有一個實例的 Redis Stream
type loopbackRelay struct {
	mu        sync.Mutex
	ch        chan sse.PublishRequest[Message]
	published []sse.PublishRequest[Message]
	started   bool
	closed    bool
}

func newLoopbackRelay() *loopbackRelay {
	return &loopbackRelay{ch: make(chan sse.PublishRequest[Message], 16)}
}

func (r *loopbackRelay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
}

func (r *loopbackRelay) Subscribe() <-chan sse.PublishRequest[Message] {
	return r.ch
}

func (r *loopbackRelay) Publish(req sse.PublishRequest[Message]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return io.ErrClosedPipe
	}
	r.published = append(r.published, req)
	r.ch <- req
	return nil
}

func (r *loopbackRelay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.ch)
}
