package page

import (
	"fmt"

	"uncommon/models"
)

// DefaultBidIncrement 是最低出價相對於目前出價的增額
const DefaultBidIncrement = 100

// DialogKind 區分出價與報價兩種對話框
type DialogKind string

const (
	DialogBid   DialogKind = "bid"
	DialogOffer DialogKind = "offer"
)

func ParseDialogKind(s string) (DialogKind, error) {
	switch DialogKind(s) {
	case DialogBid, DialogOffer:
		return DialogKind(s), nil
	default:
		return "", fmt.Errorf("invalid dialog kind %q", s)
	}
}

// DialogSpec 描述一個金額輸入對話框，出價與報價只差在文字、預設金額與最低限制
type DialogSpec struct {
	Kind          DialogKind
	Mode          models.Mode // 只有在此模式下才能開啟
	Title         string
	AmountLabel   string
	Placeholder   string
	HelpText      string
	ConfirmLabel  string
	InitialAmount int64
	MinAmount     *int64

	NotifyTitle  string
	NotifyFormat string // 以格式化後的金額填入
}

// Notification 以待送出金額產生通知
func (s DialogSpec) Notification(amount int64) Notification {
	return Notification{
		Title:   s.NotifyTitle,
		Message: fmt.Sprintf(s.NotifyFormat, FormatPrice(amount)),
	}
}

// BidDialogSpec 建立拍賣模式的出價對話框
func BidDialogSpec(listing models.Listing, increment int64) DialogSpec {
	minimum := listing.PriceValue() + increment
	return DialogSpec{
		Kind:          DialogBid,
		Mode:          models.ModeAuction,
		Title:         "Place Your Bid",
		AmountLabel:   "Bid Amount",
		Placeholder:   fmt.Sprint(minimum),
		HelpText:      fmt.Sprintf("Must be at least %s.", FormatPrice(minimum)),
		ConfirmLabel:  "Confirm Bid",
		InitialAmount: minimum,
		MinAmount:     &minimum,
		NotifyTitle:   "Bid Placed!",
		NotifyFormat:  "Your bid of %s has been placed.",
	}
}

// OfferDialogSpec 建立直購模式的報價對話框，沒有最低限制
func OfferDialogSpec(listing models.Listing) DialogSpec {
	return DialogSpec{
		Kind:          DialogOffer,
		Mode:          models.ModeBuyNow,
		Title:         "Make an Offer",
		AmountLabel:   "Offer Amount",
		Placeholder:   "5000",
		HelpText:      "Your starting offer.",
		ConfirmLabel:  "Confirm Offer",
		InitialAmount: listing.PriceValue(),
		NotifyTitle:   "Offer Sent!",
		NotifyFormat:  "Your offer of %s has been sent to the seller.",
	}
}

// dialog 是對話框的暫存狀態
type dialog struct {
	spec    DialogSpec
	open    bool
	pending int64
}

func newDialog(spec DialogSpec) *dialog {
	return &dialog{spec: spec, pending: spec.InitialAmount}
}

// reset 開啟或取消時都會把待送出金額重設為預設值
func (d *dialog) reset(open bool) {
	d.open = open
	d.pending = d.spec.InitialAmount
}
