package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	DefaultCookieName = "listing_session"
	DefaultCookieTTL  = time.Hour

	contextKey = "uncommon-page-view"
)

var ErrSessionNotFound = errors.New("session not found")

type cookieOptions struct {
	name   string
	maxAge time.Duration
	secure bool
}

type MiddlewareOption func(*cookieOptions)

// WithSessionKeyForCookie 設定保存頁面瀏覽 id 的 cookie 名稱
func WithSessionKeyForCookie(name string) MiddlewareOption {
	return func(o *cookieOptions) {
		o.name = name
	}
}

func WithCookieMaxAge(maxAge time.Duration) MiddlewareOption {
	return func(o *cookieOptions) {
		o.maxAge = maxAge
	}
}

// WithCookieSecure 本機以 http 開發時需關閉
func WithCookieSecure(secure bool) MiddlewareOption {
	return func(o *cookieOptions) {
		o.secure = secure
	}
}

// GinMiddleware 為每個請求掛上頁面瀏覽的 session，每次請求都會延長 cookie 期限。
// session 在 GetSession 時才從 store 載入。
func GinMiddleware(store IStore, opts ...MiddlewareOption) gin.HandlerFunc {
	options := cookieOptions{
		name:   DefaultCookieName,
		maxAge: DefaultCookieTTL,
		secure: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return func(c *gin.Context) {
		id := pageViewID(c, options.name)
		c.Set(contextKey, NewSession(c.Request.Context(), id, store))

		// 必須在寫入 response body 之前設定
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     options.name,
			Value:    id,
			Path:     "/",
			MaxAge:   int(options.maxAge / time.Second),
			Secure:   options.secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Next()
	}
}

// pageViewID 沿用 cookie 中的 id，沒有或不是 uuid 時產生新的
func pageViewID(c *gin.Context, name string) string {
	id, err := c.Cookie(name)
	if err != nil || uuid.Validate(id) != nil {
		return uuid.NewString()
	}
	return id
}

// GetSession 取得目前請求的 session 並從 store 載入
func GetSession(c *gin.Context) (ISession, error) {
	const op = "session.GetSession"
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s, ok := v.(ISession)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected %T in context", op, v)
	}
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}
