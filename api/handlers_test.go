package api

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"uncommon/adapters/session"
	"uncommon/models"
	"uncommon/page"
)

func TestGetRoot(t *testing.T) {
	_, router := newTestServer(t, testConfig(models.ModeBuyNow))
	w := newBrowser(t, router).do(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/listing", w.Header().Get("Location"))
}

func TestGetHealthz(t *testing.T) {
	_, router := newTestServer(t, testConfig(models.ModeBuyNow))
	w := newBrowser(t, router).do(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuctionBidFlow(t *testing.T) {
	_, router := newTestServer(t, testConfig(models.ModeAuction))
	b := newBrowser(t, router)

	w := b.postJSON("/listing/dialog/bid/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeSnapshot(t, w)
	assert.True(t, got.State.BidOpen)
	assert.Equal(t, int64(8600), got.State.BidPending)
	assert.Equal(t, "Live Auction", got.Page.Panel["badge"])

	w = b.postJSON("/listing/dialog/bid/confirm", url.Values{"amount": {"9000"}})
	require.Equal(t, http.StatusOK, w.Code)
	got = decodeSnapshot(t, w)
	require.NotNil(t, got.Notification)
	assert.Equal(t, "Bid Placed!", got.Notification.Title)
	assert.Contains(t, got.Notification.Message, "$9,000")
	assert.False(t, got.State.BidOpen)

	// 出價紀錄維持原本的三筆
	w = b.postJSON("/listing/tab", url.Values{"tab": {"activity"}})
	require.Equal(t, http.StatusOK, w.Code)
	got = decodeSnapshot(t, w)
	assert.Equal(t, page.TabOther, got.State.Tab)
	assert.Equal(t, []page.BidRow{
		{Bidder: "Bidder X", Date: "2025-06-26", Amount: "$8,500"},
		{Bidder: "Bidder Y", Date: "2025-06-25", Amount: "$8,000"},
		{Bidder: "Bidder Z", Date: "2025-06-25", Amount: "$7,500"},
	}, got.Page.Tabs.Activity)
}

func TestBuyNowOfferFlow(t *testing.T) {
	_, router := newTestServer(t, testConfig(models.ModeBuyNow))
	b := newBrowser(t, router)

	w := b.postJSON("/listing/dialog/offer/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8500), decodeSnapshot(t, w).State.OfferPending)

	w = b.postJSON("/listing/dialog/offer/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeSnapshot(t, w)
	require.NotNil(t, got.Notification)
	assert.Equal(t, "Offer Sent!", got.Notification.Title)
	assert.Contains(t, got.Notification.Message, "$8,500")
	assert.False(t, got.State.OfferOpen)
}

func TestModeSwitchKeepsState(t *testing.T) {
	_, router := newTestServer(t, testConfig(models.ModeBuyNow))
	b := newBrowser(t, router)

	require.Equal(t, http.StatusOK, b.postJSON("/listing/tab", url.Values{"tab": {"details"}}).Code)
	require.Equal(t, http.StatusOK, b.postJSON("/listing/dialog/offer/open", nil).Code)

	w := b.postJSON("/listing/mode", url.Values{"mode": {"auction"}})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeSnapshot(t, w)
	assert.Equal(t, models.ModeAuction, got.State.Mode)
	assert.Equal(t, page.TabOther, got.State.Tab)
	assert.True(t, got.State.OfferOpen)
	assert.Equal(t, "Activity", got.Page.Tabs.Items[1].Label)
	assert.Empty(t, got.Page.Tabs.Details)

	w = b.do(http.MethodGet, "/listing/state", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ModeAuction, decodeSnapshot(t, w).Page.Mode)
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		mode   models.Mode
		path   string
		form   url.Values
		status int
	}{
		{name: "unknown mode", mode: models.ModeBuyNow, path: "/listing/mode", form: url.Values{"mode": {"lottery"}}, status: http.StatusBadRequest},
		{name: "missing mode", mode: models.ModeBuyNow, path: "/listing/mode", status: http.StatusBadRequest},
		{name: "unknown tab", mode: models.ModeBuyNow, path: "/listing/tab", form: url.Values{"tab": {"reviews"}}, status: http.StatusBadRequest},
		{name: "unknown dialog", mode: models.ModeBuyNow, path: "/listing/dialog/raffle/open", status: http.StatusBadRequest},
		{name: "bid in buy-now mode", mode: models.ModeBuyNow, path: "/listing/dialog/bid/open", status: http.StatusConflict},
		{name: "offer in auction mode", mode: models.ModeAuction, path: "/listing/dialog/offer/open", status: http.StatusConflict},
		{name: "confirm closed dialog", mode: models.ModeAuction, path: "/listing/dialog/bid/confirm", status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestServer(t, testConfig(tt.mode))
			w := newBrowser(t, router).postJSON(tt.path, tt.form)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "message")
		})
	}
}

func TestConfirmAmountPolicy(t *testing.T) {
	tests := []struct {
		name       string
		strict     bool
		amount     string
		status     int
		wantOpen   bool
		wantInText string
	}{
		{name: "permissive below minimum", amount: "8550", status: http.StatusOK, wantInText: "$8,550"},
		{name: "permissive garbage", amount: "abc", status: http.StatusOK, wantInText: "$0"},
		{name: "strict below minimum", strict: true, amount: "8550", status: http.StatusUnprocessableEntity, wantOpen: true},
		{name: "strict garbage", strict: true, amount: "abc", status: http.StatusUnprocessableEntity, wantOpen: true},
		{name: "strict at minimum", strict: true, amount: "8600", status: http.StatusOK, wantInText: "$8,600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(models.ModeAuction)
			config.Listing.StrictAmounts = tt.strict
			_, router := newTestServer(t, config)
			b := newBrowser(t, router)

			require.Equal(t, http.StatusOK, b.postJSON("/listing/dialog/bid/open", nil).Code)
			w := b.postJSON("/listing/dialog/bid/confirm", url.Values{"amount": {tt.amount}})
			require.Equal(t, tt.status, w.Code)
			if tt.wantInText != "" {
				assert.Contains(t, decodeSnapshot(t, w).Notification.Message, tt.wantInText)
			}

			state := decodeSnapshot(t, b.do(http.MethodGet, "/listing/state", nil, "")).State
			assert.Equal(t, tt.wantOpen, state.BidOpen)
		})
	}
}

func TestHTMLFlow(t *testing.T) {
	_, router := newTestServer(t, testConfig(models.ModeAuction))
	b := newBrowser(t, router)

	w := b.do(http.MethodGet, "/listing", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "techstartup.com")
	assert.Contains(t, w.Body.String(), "1d 2h 4m 51s")
	assert.Contains(t, w.Body.String(), page.PlaceholderThumbnail[:len("/placeholder.svg")])

	w = b.do(http.MethodPost, "/listing/dialog/bid/open", url.Values{}, "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/listing", w.Header().Get("Location"))

	w = b.do(http.MethodGet, "/listing", nil, "")
	assert.Contains(t, w.Body.String(), "Place Your Bid")
	assert.Contains(t, w.Body.String(), `value="8600"`)

	w = b.do(http.MethodPost, "/listing/dialog/bid/confirm", url.Values{"amount": {"9000"}}, "")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	// 通知只顯示一次
	w = b.do(http.MethodGet, "/listing", nil, "")
	assert.Contains(t, w.Body.String(), "Bid Placed!")
	assert.Contains(t, w.Body.String(), "Your bid of $9,000 has been placed.")
	assert.NotContains(t, w.Body.String(), "Place Your Bid")

	w = b.do(http.MethodGet, "/listing", nil, "")
	assert.NotContains(t, w.Body.String(), "Bid Placed!")
}

func TestHTMLStrictError(t *testing.T) {
	config := testConfig(models.ModeAuction)
	config.Listing.StrictAmounts = true
	_, router := newTestServer(t, config)
	b := newBrowser(t, router)

	b.do(http.MethodPost, "/listing/dialog/bid/open", url.Values{}, "")
	w := b.do(http.MethodPost, "/listing/dialog/bid/confirm", url.Values{"amount": {"100"}}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Unprocessable Entity")
	assert.Contains(t, w.Body.String(), "Place Your Bid")
}

func TestPostListingReset(t *testing.T) {
	_, router := newTestServer(t, testConfig(models.ModeAuction))
	b := newBrowser(t, router)

	b.postJSON("/listing/mode", url.Values{"mode": {"buy-now"}})
	b.postJSON("/listing/dialog/offer/open", nil)

	w := b.postJSON("/listing/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeSnapshot(t, w)
	assert.Equal(t, page.State{
		Mode:         models.ModeAuction,
		Tab:          page.TabDescription,
		BidPending:   8600,
		OfferPending: 8500,
	}, got.State)
}

func TestDescriptionSanitized(t *testing.T) {
	config := testConfig(models.ModeBuyNow)
	config.Listing.Listing.Description = lo.ToPtr(`<p>Premium <b>name</b></p><script>alert("pwned")</script>`)
	_, router := newTestServer(t, config)

	w := newBrowser(t, router).do(http.MethodGet, "/listing", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<p>Premium <b>name</b></p>")
	assert.NotContains(t, w.Body.String(), "pwned")
}

func TestDescriptionKeptAsText(t *testing.T) {
	const description = `Short & brandable, it's "premium"`
	config := testConfig(models.ModeBuyNow)
	config.Listing.Listing.Description = lo.ToPtr(description)
	_, router := newTestServer(t, config)
	b := newBrowser(t, router)

	// JSON 快照回傳原始文字，不做 HTML 跳脫
	got := decodeSnapshot(t, b.do(http.MethodGet, "/listing/state", nil, ""))
	assert.Equal(t, description, got.Page.Tabs.Description)

	// HTML 頁面只跳脫一次
	w := b.do(http.MethodGet, "/listing", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Short &amp; brandable")
	assert.NotContains(t, w.Body.String(), "&amp;amp;")
}

func TestPresignedThumbnail(t *testing.T) {
	config := testConfig(models.ModeBuyNow)
	config.Listing.Listing.ThumbnailKey = "thumbs/techstartup.png"
	config.S3 = S3Config{
		Endpoint:        "https://storage.example.com",
		Bucket:          "listings",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "SECRET",
		UsePathStyle:    true,
	}
	_, router := newTestServer(t, config)

	got := decodeSnapshot(t, newBrowser(t, router).do(http.MethodGet, "/listing/state", nil, ""))
	assert.Contains(t, got.Page.ThumbnailURL, "https://storage.example.com/listings/thumbs/techstartup.png?")
	assert.Contains(t, got.Page.ThumbnailURL, "X-Amz-Signature=")
}

func TestSessionStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := session.NewMockIStore(ctrl)
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, errors.New("store unavailable"))

	_, router := newTestServer(t, testConfig(models.ModeBuyNow), WithSessionStore(store))
	w := newBrowser(t, router).do(http.MethodGet, "/listing/state", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "store unavailable")
}

func TestNewServer_InvalidMode(t *testing.T) {
	_, err := NewServer(testConfig(models.Mode("lottery")), WithServerLogger(discardLogger))
	assert.ErrorContains(t, err, "invalid listing config")
}
