package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/samber/lo"

	"uncommon/adapters/session"
	"uncommon/models"
	"uncommon/page"
)

// Snapshot 是 JSON 客戶端收到的頁面狀態
type Snapshot struct {
	Page         page.Page          `json:"page"`
	State        page.State         `json:"state"`
	Notification *page.Notification `json:"notification,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type modeRequest struct {
	Mode string `form:"mode" json:"mode" binding:"required"`
}

type tabRequest struct {
	Tab string `form:"tab" json:"tab" binding:"required"`
}

type confirmRequest struct {
	Amount *string `form:"amount" json:"amount"`
}

// heartbeatInterval 避免瀏覽器與 proxy 因為閒置而斷開事件串流
var heartbeatInterval = 30 * time.Second

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// statusOf 將頁面操作的錯誤對應到 HTTP 狀態碼
func statusOf(err error) int {
	switch {
	case errors.Is(err, page.ErrDialogUnavailable), errors.Is(err, page.ErrDialogClosed):
		return http.StatusConflict
	case errors.Is(err, page.ErrInvalidAmount), errors.Is(err, page.ErrBelowMinimum):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// openView 取得 session 並還原頁面狀態。
// HTML 客戶端的通知同時暫存在 session，下一次顯示頁面時呈現。
func (impl *ServerImpl) openView(c *gin.Context) (session.ISession, *page.View, error) {
	const op = "openView"
	s, err := session.GetSession(c)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	notifiers := page.Notifiers{impl.sseNotifier(s)}
	if !wantsJSON(c) {
		notifiers = append(notifiers, flashNotifier(s))
	}
	view, err := impl.loadView(c, s, page.WithNotifier(notifiers))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, view, nil
}

func (impl *ServerImpl) abort(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		impl.logger.Error("Request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.AbortWithStatusJSON(status, ErrorResponse{Message: http.StatusText(status)})
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: err.Error()})
}

// respond 保存狀態後回應，表單送出時導回頁面
func (impl *ServerImpl) respond(c *gin.Context, s session.ISession, view *page.View, notification *page.Notification) {
	if err := saveView(s, view); err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, Snapshot{Page: view.Render(), State: view.State(), Notification: notification})
		return
	}
	c.Redirect(http.StatusSeeOther, "/listing")
}

// respondError 處理頁面操作失敗。HTML 客戶端會看到帶有錯誤提示的頁面，狀態仍會保存。
func (impl *ServerImpl) respondError(c *gin.Context, s session.ISession, view *page.View, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError || wantsJSON(c) {
		impl.abort(c, status, err)
		return
	}
	if err := saveView(s, view); err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	impl.renderListing(c, status, view, []page.Notification{{Title: http.StatusText(status), Message: err.Error()}})
}

func (impl *ServerImpl) renderListing(c *gin.Context, status int, view *page.View, flashes []page.Notification) {
	c.Render(status, render.HTML{
		Template: impl.template,
		Name:     "listing",
		Data:     listingData{Page: view.Render(), Flashes: flashes},
	})
}

// (GET /healthz)
func (impl *ServerImpl) GetHealthz(c *gin.Context) {
	if impl.redisClient != nil {
		if err := impl.redisClient.Ping(c).Err(); err != nil {
			impl.logger.Warn("Redis is unavailable", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// (GET /)
func (impl *ServerImpl) GetRoot(c *gin.Context) {
	c.Redirect(http.StatusFound, "/listing")
}

// Render the listing page, showing pending notifications once
// (GET /listing)
func (impl *ServerImpl) GetListing(c *gin.Context) {
	s, view, err := impl.openView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	pending := impl.takeFlashes(s)
	if err := saveView(s, view); err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	impl.renderListing(c, http.StatusOK, view, pending)
}

// (GET /listing/state)
func (impl *ServerImpl) GetListingState(c *gin.Context) {
	_, view, err := impl.openView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Snapshot{Page: view.Render(), State: view.State()})
}

// (POST /listing/mode)
func (impl *ServerImpl) PostListingMode(c *gin.Context) {
	var request modeRequest
	if err := c.ShouldBind(&request); err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return
	}
	mode, err := models.ParseMode(request.Mode)
	if err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return
	}
	s, view, err := impl.openView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	if err := view.SetMode(mode); err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return
	}
	impl.respond(c, s, view, nil)
}

// (POST /listing/tab)
func (impl *ServerImpl) PostListingTab(c *gin.Context) {
	var request tabRequest
	if err := c.ShouldBind(&request); err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return
	}
	tab, err := page.ParseTab(request.Tab)
	if err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return
	}
	s, view, err := impl.openView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	if err := view.SelectTab(tab); err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return
	}
	impl.respond(c, s, view, nil)
}

// dialogKind 取得路徑中的對話框種類，錯誤時已回應 400
func (impl *ServerImpl) dialogKind(c *gin.Context) (page.DialogKind, bool) {
	kind, err := page.ParseDialogKind(c.Param("kind"))
	if err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return "", false
	}
	return kind, true
}

// (POST /listing/dialog/:kind/open)
func (impl *ServerImpl) PostListingDialogOpen(c *gin.Context) {
	kind, ok := impl.dialogKind(c)
	if !ok {
		return
	}
	s, view, err := impl.openView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	if err := view.OpenDialog(kind); err != nil {
		impl.respondError(c, s, view, err)
		return
	}
	impl.respond(c, s, view, nil)
}

// (POST /listing/dialog/:kind/cancel)
func (impl *ServerImpl) PostListingDialogCancel(c *gin.Context) {
	kind, ok := impl.dialogKind(c)
	if !ok {
		return
	}
	s, view, err := impl.openView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	if err := view.CancelDialog(kind); err != nil {
		impl.respondError(c, s, view, err)
		return
	}
	impl.respond(c, s, view, nil)
}

// Confirm the pending amount, optionally replacing it first
// (POST /listing/dialog/:kind/confirm)
func (impl *ServerImpl) PostListingDialogConfirm(c *gin.Context) {
	kind, ok := impl.dialogKind(c)
	if !ok {
		return
	}
	var request confirmRequest
	if err := c.ShouldBind(&request); err != nil {
		impl.abort(c, http.StatusBadRequest, err)
		return
	}
	s, view, err := impl.openView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	if request.Amount != nil {
		if err := view.SetPendingAmount(kind, *request.Amount); err != nil {
			impl.respondError(c, s, view, err)
			return
		}
	}
	notification, err := view.ConfirmDialog(c, kind)
	if err != nil && !view.IsDialogOpen(kind) && statusOf(err) == http.StatusInternalServerError {
		// 對話框已關閉，只是部分通知管道失敗
		impl.logger.Warn("Notification partially delivered", slog.String("session", s.ID()), slog.Any("error", err))
	} else if err != nil {
		impl.respondError(c, s, view, err)
		return
	}
	impl.respond(c, s, view, lo.ToPtr(notification))
}

// Discard the page view state
// (POST /listing/reset)
func (impl *ServerImpl) PostListingReset(c *gin.Context) {
	s, err := session.GetSession(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	s.Unmount()
	view, err := impl.newView(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	impl.respond(c, s, view, nil)
}

// Stream notifications of this page view
// (GET /listing/events)
func (impl *ServerImpl) GetListingEvents(c *gin.Context) {
	s, err := session.GetSession(c)
	if err != nil {
		impl.abort(c, http.StatusInternalServerError, err)
		return
	}
	ch, err := impl.sseManager.Subscribe(s.ID())
	if err != nil {
		impl.abort(c, http.StatusServiceUnavailable, err)
		return
	}
	defer impl.sseManager.Unsubscribe(s.ID(), ch)

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	c.SSEvent("ready", gin.H{"session": s.ID()})
	w.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case notification, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("toast", notification)
			w.Flush()
		case <-heartbeat.C:
			w.WriteString(": ping\n\n")
			w.Flush()
		}
	}
}
