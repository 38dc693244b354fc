package page

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount 表示輸入無法解析為正數
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrBelowMinimum 表示出價低於最低出價
	ErrBelowMinimum = errors.New("amount below minimum")
)

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount 將使用者輸入的文字轉為整數金額
// 空字串視為 0，小數部分四捨五入到整數美元
func ParseAmount(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	d = d.Round(0)
	if d.GreaterThan(maxAmount) || d.LessThan(minAmount) {
		return 0, ErrInvalidAmount
	}
	return d.IntPart(), nil
}

// CheckAmount 檢查送出前的金額，minimum 為 nil 表示沒有最低限制
func CheckAmount(amount int64, minimum *int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if minimum != nil && amount < *minimum {
		return ErrBelowMinimum
	}
	return nil
}
