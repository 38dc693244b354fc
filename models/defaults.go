package models

const (
	DefaultDomain      = "techstartup.com"
	DefaultPrice       = 8500
	DefaultDescription = "Perfect domain for technology startups and innovative companies. Short, memorable, and brandable with strong SEO potential."
)

// DefaultCountdown 回傳範例倒數時間
func DefaultCountdown() Countdown {
	return Countdown{Days: 1, Hours: 2, Minutes: 4, Seconds: 51}
}

// DefaultBidHistory 回傳範例出價紀錄 (新到舊)
func DefaultBidHistory() []BidRecord {
	return []BidRecord{
		{Bidder: "Bidder X", Date: "2025-06-26", Amount: 8500},
		{Bidder: "Bidder Y", Date: "2025-06-25", Amount: 8000},
		{Bidder: "Bidder Z", Date: "2025-06-25", Amount: 7500},
	}
}

func DefaultFacts() []Fact {
	return []Fact{
		{Label: "Established", Value: "2014"},
		{Label: "Monthly search traffic", Value: "1,200"},
		{Label: "Category", Value: "Technology"},
	}
}

func DefaultFeatures() []Feature {
	return []Feature{
		{Icon: "shield", Text: "Full ownership transfer"},
		{Icon: "zap", Text: "Escrow service"},
		{Icon: "trending-up", Text: "Strategic GTM plan"},
	}
}

// DefaultListing 回傳完整的範例商品資料
func DefaultListing() Listing {
	countdown := DefaultCountdown()
	price, description := int64(DefaultPrice), DefaultDescription
	return Listing{
		Domain:      DefaultDomain,
		Price:       &price,
		Description: &description,
		Countdown:   &countdown,
		BidHistory:  DefaultBidHistory(),
		Facts:       DefaultFacts(),
		Features:    DefaultFeatures(),
	}
}

// WithDefaults 將未提供的欄位補上範例預設值
func (l Listing) WithDefaults() Listing {
	if l.Domain == "" {
		l.Domain = DefaultDomain
	}
	if l.Price == nil {
		price := int64(DefaultPrice)
		l.Price = &price
	}
	if l.Description == nil {
		description := DefaultDescription
		l.Description = &description
	}
	if l.Countdown == nil {
		countdown := DefaultCountdown()
		l.Countdown = &countdown
	}
	if l.BidHistory == nil {
		l.BidHistory = DefaultBidHistory()
	}
	if l.Facts == nil {
		l.Facts = DefaultFacts()
	}
	if l.Features == nil {
		l.Features = DefaultFeatures()
	}
	return l
}

// PriceValue 回傳價格，未提供時為 0
func (l Listing) PriceValue() int64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// DescriptionText 回傳描述，未提供時為空字串
func (l Listing) DescriptionText() string {
	if l.Description == nil {
		return ""
	}
	return *l.Description
}
