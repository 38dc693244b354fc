package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"uncommon/models"
	"uncommon/page"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(mode models.Mode) ServerConfig {
	return ServerConfig{
		Listing: ListingConfig{
			Listing: models.DefaultListing(),
			Mode:    mode,
		},
		Session: SessionConfig{
			KeyForCookie: "sid",
			CookieMaxAge: time.Hour,
		},
	}
}

func newTestServer(t *testing.T, config ServerConfig, opts ...ServerOption) (*ServerImpl, *gin.Engine) {
	t.Helper()
	impl, err := NewServer(config, append([]ServerOption{WithServerLogger(discardLogger)}, opts...)...)
	require.NoError(t, err)
	impl.Start()
	t.Cleanup(impl.Close)

	router := gin.New()
	impl.RegisterHandlers(router)
	return impl, router
}

// browser 模擬一個帶著 session cookie 的客戶端
type browser struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func newBrowser(t *testing.T, router http.Handler) *browser {
	return &browser{t: t, router: router}
}

func (b *browser) do(method, path string, form url.Values, accept string) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "sid" {
			b.cookie = cookie
		}
	}
	return w
}

// postJSON 以表單送出並要求 JSON 回應
func (b *browser) postJSON(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form, gin.MIMEJSON)
}

// snapshotResponse 對應 Snapshot，Panel 依模式有不同的欄位所以保留為 map
type snapshotResponse struct {
	Page struct {
		Domain       string         `json:"domain"`
		ThumbnailURL string         `json:"thumbnailUrl"`
		Mode         models.Mode    `json:"mode"`
		Panel        map[string]any `json:"panel"`
		Tabs         page.TabsView  `json:"tabs"`
	} `json:"page"`
	State        page.State         `json:"state"`
	Notification *page.Notification `json:"notification"`
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) snapshotResponse {
	t.Helper()
	var got snapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), w.Body.String())
	return got
}
