package page

import (
	"github.com/samber/lo"

	"uncommon/models"
)

const SiteTitle = "Uncommon Domains"

// Page 是一次渲染的結果
// Panel 依 Mode 為 *BuyNowPanel 或 *AuctionPanel 其中之一
type Page struct {
	SiteTitle    string           `json:"siteTitle"`
	Domain       string           `json:"domain"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	Features     []models.Feature `json:"features"`
	Mode         models.Mode      `json:"mode"`
	Panel        Panel            `json:"panel"`
	Tabs         TabsView         `json:"tabs"`
}

// Panel 是價格與操作區塊
type Panel interface {
	Mode() models.Mode
}

// BuyNowPanel 是直購模式的價格與操作區塊
type BuyNowPanel struct {
	Badge          string     `json:"badge"`
	PriceLabel     string     `json:"priceLabel"`
	Price          string     `json:"price"`
	BuyNowLabel    string     `json:"buyNowLabel"`
	MakeOfferLabel string     `json:"makeOfferLabel"`
	Offer          DialogView `json:"offer"`
}

func (*BuyNowPanel) Mode() models.Mode { return models.ModeBuyNow }

// AuctionPanel 是拍賣模式的價格與操作區塊
type AuctionPanel struct {
	Badge         string     `json:"badge"`
	PriceLabel    string     `json:"priceLabel"`
	Price         string     `json:"price"`
	EndsInLabel   string     `json:"endsInLabel"`
	EndsIn        string     `json:"endsIn"`
	PlaceBidLabel string     `json:"placeBidLabel"`
	Bid           DialogView `json:"bid"`
}

func (*AuctionPanel) Mode() models.Mode { return models.ModeAuction }

// DialogView 是對話框的渲染內容
type DialogView struct {
	Kind         DialogKind `json:"kind"`
	Open         bool       `json:"open"`
	Title        string     `json:"title"`
	Domain       string     `json:"domain"`
	Summary      []string   `json:"summary"`
	AmountLabel  string     `json:"amountLabel"`
	Pending      int64      `json:"pending"`
	Placeholder  string     `json:"placeholder"`
	HelpText     string     `json:"helpText"`
	CancelLabel  string     `json:"cancelLabel"`
	ConfirmLabel string     `json:"confirmLabel"`
}

// TabsView 是詳細資訊區塊
// Details 只在直購模式有值，Activity 只在拍賣模式有值
type TabsView struct {
	Active      Tab           `json:"active"`
	Items       []TabItem     `json:"items"`
	Description string        `json:"description"`
	Details     []models.Fact `json:"details,omitempty"`
	Activity    []BidRow      `json:"activity,omitempty"`
}

type TabItem struct {
	Tab    Tab    `json:"tab"`
	Key    string `json:"key"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// BidRow 是出價紀錄表格的一列
type BidRow struct {
	Bidder string `json:"bidder"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// BuyNow 在直購模式下回傳區塊，否則回傳 nil
func (p Page) BuyNow() *BuyNowPanel {
	panel, _ := p.Panel.(*BuyNowPanel)
	return panel
}

// Auction 在拍賣模式下回傳區塊，否則回傳 nil
func (p Page) Auction() *AuctionPanel {
	panel, _ := p.Panel.(*AuctionPanel)
	return panel
}

// Render 依目前狀態產生畫面內容，是 (mode, listing, 暫存狀態) 的純函數
func (v *View) Render() Page {
	return Page{
		SiteTitle:    SiteTitle,
		Domain:       v.listing.Domain,
		ThumbnailURL: v.options.thumbnailURL,
		Features:     v.listing.Features,
		Mode:         v.mode,
		Panel:        v.renderPanel(),
		Tabs:         v.renderTabs(),
	}
}

func (v *View) renderPanel() Panel {
	price := FormatPrice(v.listing.PriceValue())
	switch v.mode {
	case models.ModeAuction:
		endsIn := FormatCountdown(v.listing.Countdown)
		return &AuctionPanel{
			Badge:         "Live Auction",
			PriceLabel:    "Current Bid",
			Price:         price,
			EndsInLabel:   "Ends in",
			EndsIn:        endsIn,
			PlaceBidLabel: "Place Bid",
			Bid: v.renderDialog(v.bid, []string{
				"Current Bid: " + price,
				"Ends in: " + endsIn,
			}),
		}
	default:
		return &BuyNowPanel{
			Badge:          "Available for Purchase",
			PriceLabel:     "Price",
			Price:          price,
			BuyNowLabel:    "Buy Now",
			MakeOfferLabel: "Make Offer",
			Offer:          v.renderDialog(v.offer, []string{"Price: " + price}),
		}
	}
}

func (v *View) renderDialog(d *dialog, summary []string) DialogView {
	return DialogView{
		Kind:         d.spec.Kind,
		Open:         d.open,
		Title:        d.spec.Title,
		Domain:       v.listing.Domain,
		Summary:      summary,
		AmountLabel:  d.spec.AmountLabel,
		Pending:      d.pending,
		Placeholder:  d.spec.Placeholder,
		HelpText:     d.spec.HelpText,
		CancelLabel:  "Cancel",
		ConfirmLabel: d.spec.ConfirmLabel,
	}
}

func (v *View) renderTabs() TabsView {
	key, label := otherTab(v.mode)
	tabs := TabsView{
		Active: v.tab,
		Items: []TabItem{
			{Tab: TabDescription, Key: string(TabDescription), Label: "Description", Active: v.tab == TabDescription},
			{Tab: TabOther, Key: key, Label: label, Active: v.tab == TabOther},
		},
		Description: v.listing.DescriptionText(),
	}
	if v.mode == models.ModeAuction {
		tabs.Activity = lo.Map(v.listing.BidHistory, func(b models.BidRecord, _ int) BidRow {
			return BidRow{Bidder: b.Bidder, Date: b.Date, Amount: FormatPrice(b.Amount)}
		})
	} else {
		tabs.Details = v.listing.Facts
	}
	return tabs
}
