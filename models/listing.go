package models

import "fmt"

// Mode 代表商品頁的呈現模式
type Mode string

const (
	ModeBuyNow  Mode = "buy-now"
	ModeAuction Mode = "auction"
)

// ParseMode 將字串轉換為 Mode，只接受 buy-now 與 auction
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBuyNow, ModeAuction:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q", s)
	}
}

func (m Mode) Valid() bool {
	return m == ModeBuyNow || m == ModeAuction
}

// Listing 代表一筆待售網域的展示資料
// 由呼叫端提供，在頁面存續期間不會被修改。
// Price 與 Description 為 nil 表示未提供，0 與空字串是明確給定的值
type Listing struct {
	Domain       string      `mapstructure:"domain" json:"domain"`
	Price        *int64      `mapstructure:"price" json:"price"`
	Description  *string     `mapstructure:"description" json:"description"`
	Countdown    *Countdown  `mapstructure:"countdown" json:"countdown,omitempty"`
	BidHistory   []BidRecord `mapstructure:"bid-history" json:"bidHistory"`
	Facts        []Fact      `mapstructure:"facts" json:"facts"`
	Features     []Feature   `mapstructure:"features" json:"features"`
	ThumbnailKey string      `mapstructure:"thumbnail-key" json:"thumbnailKey,omitempty"`
}

// Countdown 是拍賣剩餘時間的靜態快照，不會隨時間遞減
type Countdown struct {
	Days    int `mapstructure:"days" json:"days"`
	Hours   int `mapstructure:"hours" json:"hours"`
	Minutes int `mapstructure:"minutes" json:"minutes"`
	Seconds int `mapstructure:"seconds" json:"seconds"`
}

// BidRecord 代表出價紀錄中的一列，切片順序即為顯示順序
type BidRecord struct {
	Bidder string `mapstructure:"bidder" json:"bidder"`
	Date   string `mapstructure:"date" json:"date"`
	Amount int64  `mapstructure:"amount" json:"amount"`
}

// Fact 是 Details 分頁中的一組 key/value
type Fact struct {
	Label string `mapstructure:"label" json:"label"`
	Value string `mapstructure:"value" json:"value"`
}

// Feature 是 "What's Included" 清單中的一項
type Feature struct {
	Icon string `mapstructure:"icon" json:"icon"`
	Text string `mapstructure:"text" json:"text"`
}
