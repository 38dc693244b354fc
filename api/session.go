package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"uncommon/adapters/redis"
	"uncommon/adapters/session"
	"uncommon/page"
)

const (
	SESSION_KEY_VIEW_STATE = "view_state"
	SESSION_KEY_FLASHES    = "flashes"
)

// newSessionStore 設定 Redis 時使用共用的 hash store，否則使用本機記憶體
func (impl *ServerImpl) newSessionStore() session.IStore {
	if impl.redisClient == nil {
		return session.NewMemoryStore(
			session.WithMemoryStorePrefix(impl.config.Redis.SessionPrefix()),
			session.WithMemoryStoreTTL(impl.config.Session.CookieMaxAge),
		)
	}
	return redis.NewStore(
		impl.redisClient,
		redis.WithStorePrefix(impl.config.Redis.SessionPrefix()),
		redis.WithStoreTTL(impl.config.Session.CookieMaxAge),
	)
}

func (impl *ServerImpl) SessionMiddleware() gin.HandlerFunc {
	return session.GinMiddleware(
		impl.store,
		session.WithSessionKeyForCookie(impl.config.Session.KeyForCookie),
		session.WithCookieMaxAge(impl.config.Session.CookieMaxAge),
		session.WithCookieSecure(impl.config.Session.CookieSecure),
	)
}

// loadView 依 session 中保存的狀態重建頁面，狀態損毀時從頭開始
func (impl *ServerImpl) loadView(ctx context.Context, s session.ISession, opts ...page.ViewOption) (*page.View, error) {
	const op = "loadView"
	view, err := impl.newView(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var state page.State
	ok, err := s.Decode(SESSION_KEY_VIEW_STATE, &state)
	if err != nil {
		impl.logger.Warn("Discard corrupted view state", slog.String("session", s.ID()), slog.Any("error", err))
		return view, nil
	}
	if !ok {
		return view, nil
	}
	if err := view.Restore(state); err != nil {
		impl.logger.Warn("Discard invalid view state", slog.String("session", s.ID()), slog.Any("error", err))
	}
	return view, nil
}

// saveView 將頁面狀態連同其他 session 欄位一併寫回
func saveView(s session.ISession, view *page.View) error {
	const op = "saveView"
	if err := s.Encode(SESSION_KEY_VIEW_STATE, view.State()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// takeFlashes 取出尚未顯示的通知，取出後即從 session 移除
func (impl *ServerImpl) takeFlashes(s session.ISession) []page.Notification {
	var pending []page.Notification
	if _, err := s.Take(SESSION_KEY_FLASHES, &pending); err != nil {
		impl.logger.Warn("Discard corrupted flashes", slog.String("session", s.ID()), slog.Any("error", err))
		return nil
	}
	return pending
}

// flashNotifier 將通知暫存在 session，在下一次顯示頁面時呈現一次
func flashNotifier(s session.ISession) page.INotifier {
	return page.NotifierFunc(func(_ context.Context, notification page.Notification) error {
		const op = "flashNotifier"
		var pending []page.Notification
		if _, err := s.Decode(SESSION_KEY_FLASHES, &pending); err != nil {
			pending = nil
		}
		if err := s.Encode(SESSION_KEY_FLASHES, append(pending, notification)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

// sseNotifier 將通知推送到同一個 session 的事件串流
func (impl *ServerImpl) sseNotifier(s session.ISession) page.INotifier {
	return page.NotifierFunc(func(_ context.Context, notification page.Notification) error {
		if err := impl.sseManager.Publish(s.ID(), notification); err != nil {
			return fmt.Errorf("sseNotifier: %w", err)
		}
		return nil
	})
}
