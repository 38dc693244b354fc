package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"uncommon/models"
)

var (
	// ErrDialogUnavailable 表示該對話框在目前模式下無法使用
	ErrDialogUnavailable = errors.New("dialog not available in current mode")
	// ErrDialogClosed 表示對話框尚未開啟
	ErrDialogClosed = errors.New("dialog is not open")
)

// PlaceholderThumbnail 是沒有設定縮圖時使用的預設圖片
const PlaceholderThumbnail = "/placeholder.svg?height=120&width=200"

type viewOptions struct {
	notifier      INotifier
	logger        *slog.Logger
	strictAmounts bool
	bidIncrement  int64
	thumbnailURL  string
}

type ViewOption func(*viewOptions)

// WithNotifier 設定確認出價或報價時使用的通知介面
func WithNotifier(notifier INotifier) ViewOption {
	return func(o *viewOptions) {
		o.notifier = notifier
	}
}

// WithLogger 設定日誌記錄器
func WithLogger(logger *slog.Logger) ViewOption {
	return func(o *viewOptions) {
		o.logger = logger
	}
}

// WithStrictAmounts 開啟金額檢查，無效或低於最低出價的金額會被擋下
func WithStrictAmounts(strict bool) ViewOption {
	return func(o *viewOptions) {
		o.strictAmounts = strict
	}
}

// WithBidIncrement 設定最低出價增額
func WithBidIncrement(increment int64) ViewOption {
	return func(o *viewOptions) {
		o.bidIncrement = increment
	}
}

// WithThumbnailURL 設定縮圖網址
func WithThumbnailURL(url string) ViewOption {
	return func(o *viewOptions) {
		o.thumbnailURL = url
	}
}

// View 持有單次頁面瀏覽的暫存 UI 狀態
// 所有狀態只由 View 自己的方法同步修改，不可並行使用
type View struct {
	listing models.Listing
	options viewOptions
	logger  *slog.Logger

	mode  models.Mode
	tab   Tab
	bid   *dialog
	offer *dialog
}

// NewView 以商品資料與初始模式建立頁面狀態，未提供的欄位會補上預設值
func NewView(listing models.Listing, mode models.Mode, opts ...ViewOption) (*View, error) {
	const op = "page.NewView"
	if !mode.Valid() {
		return nil, fmt.Errorf("%s: invalid mode %q", op, mode)
	}

	options := viewOptions{
		notifier:     discardNotifier,
		logger:       slog.Default(),
		bidIncrement: DefaultBidIncrement,
		thumbnailURL: PlaceholderThumbnail,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.notifier == nil {
		options.notifier = discardNotifier
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	listing = listing.WithDefaults()
	return &View{
		listing: listing,
		options: options,
		logger:  options.logger.With(slog.String("caller", "View"), slog.String("domain", listing.Domain)),
		mode:    mode,
		tab:     TabDescription,
		bid:     newDialog(BidDialogSpec(listing, options.bidIncrement)),
		offer:   newDialog(OfferDialogSpec(listing)),
	}, nil
}

func (v *View) Listing() models.Listing {
	return v.listing
}

func (v *View) Mode() models.Mode {
	return v.mode
}

// SetMode 切換模式，只影響畫面呈現，不會重設對話框或分頁狀態
func (v *View) SetMode(mode models.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("page.View.SetMode: invalid mode %q", mode)
	}
	v.mode = mode
	return nil
}

func (v *View) Tab() Tab {
	return v.tab
}

// SelectTab 切換詳細資訊分頁
func (v *View) SelectTab(tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("page.View.SelectTab: invalid tab %q", tab)
	}
	v.tab = tab
	return nil
}

func (v *View) dialog(kind DialogKind) (*dialog, error) {
	switch kind {
	case DialogBid:
		return v.bid, nil
	case DialogOffer:
		return v.offer, nil
	default:
		return nil, fmt.Errorf("invalid dialog kind %q", kind)
	}
}

// reachable 取得目前模式下可以操作的對話框
func (v *View) reachable(kind DialogKind) (*dialog, error) {
	d, err := v.dialog(kind)
	if err != nil {
		return nil, err
	}
	if d.spec.Mode != v.mode {
		return nil, ErrDialogUnavailable
	}
	return d, nil
}

// DialogSpec 回傳對話框的設定
func (v *View) DialogSpec(kind DialogKind) (DialogSpec, error) {
	d, err := v.dialog(kind)
	if err != nil {
		return DialogSpec{}, err
	}
	return d.spec, nil
}

// IsDialogOpen 回傳對話框是否開啟 (不論目前模式)
func (v *View) IsDialogOpen(kind DialogKind) bool {
	d, err := v.dialog(kind)
	return err == nil && d.open
}

// PendingAmount 回傳對話框中尚未送出的金額
func (v *View) PendingAmount(kind DialogKind) int64 {
	d, err := v.dialog(kind)
	if err != nil {
		return 0
	}
	return d.pending
}

// OpenDialog 開啟對話框，並將待送出金額重設為預設值
func (v *View) OpenDialog(kind DialogKind) error {
	const op = "page.View.OpenDialog"
	d, err := v.reachable(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	d.reset(true)
	return nil
}

// SetPendingAmount 更新對話框中輸入的金額，輸入時不檢查最低出價
func (v *View) SetPendingAmount(kind DialogKind, text string) error {
	const op = "page.View.SetPendingAmount"
	d, err := v.reachable(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !d.open {
		return fmt.Errorf("%s: %w", op, ErrDialogClosed)
	}
	amount, err := ParseAmount(text)
	if err != nil {
		if v.options.strictAmounts {
			return fmt.Errorf("%s: %q: %w", op, text, err)
		}
		// 寬鬆模式下無法解析的輸入視為 0
		v.logger.Warn("Unparsable amount treated as zero", slog.String("dialog", string(kind)), slog.String("input", text))
		amount = 0
	}
	d.pending = amount
	return nil
}

// CancelDialog 關閉對話框並捨棄輸入的金額，沒有任何副作用
func (v *View) CancelDialog(kind DialogKind) error {
	const op = "page.View.CancelDialog"
	d, err := v.dialog(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	d.reset(false)
	return nil
}

// ConfirmDialog 送出通知後關閉對話框，出價紀錄不會被修改
// 嚴格模式下金額無效或低於最低出價時不送出，對話框保持開啟
func (v *View) ConfirmDialog(ctx context.Context, kind DialogKind) (Notification, error) {
	const op = "page.View.ConfirmDialog"
	d, err := v.reachable(kind)
	if err != nil {
		return Notification{}, fmt.Errorf("%s: %w", op, err)
	}
	if !d.open {
		return Notification{}, fmt.Errorf("%s: %w", op, ErrDialogClosed)
	}
	if err := CheckAmount(d.pending, d.spec.MinAmount); err != nil {
		if v.options.strictAmounts {
			return Notification{}, fmt.Errorf("%s: %w", op, err)
		}
		v.logger.Warn("Submitting unchecked amount", slog.String("dialog", string(kind)), slog.Int64("amount", d.pending), slog.Any("reason", err))
	}

	notification := d.spec.Notification(d.pending)
	notifyErr := v.options.notifier.Notify(ctx, notification)
	d.reset(false)
	if notifyErr != nil {
		return notification, fmt.Errorf("%s: fail to notify: %w", op, notifyErr)
	}
	v.logger.Info("Dialog confirmed", slog.String("dialog", string(kind)), slog.String("message", notification.Message))
	return notification, nil
}
