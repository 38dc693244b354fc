package page

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"uncommon/models"
)

// FormatPrice 將整數金額轉成 en-US 美元格式，不含小數位
// e.g. 8500 -> "$8,500", -1200 -> "-$1,200"
func FormatPrice(amount int64) string {
	// message.Printer 不可並行使用，每次呼叫各自建立
	s := message.NewPrinter(language.AmericanEnglish).Sprintf("%d", amount)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-$" + rest
	}
	return "$" + s
}

// FormatCountdown 將倒數時間轉成 "{d}d {h}h {m}m {s}s"，數值原樣輸出不做進位
func FormatCountdown(countdown *models.Countdown) string {
	if countdown == nil {
		return ""
	}
	return fmt.Sprintf("%dd %dh %dm %ds", countdown.Days, countdown.Hours, countdown.Minutes, countdown.Seconds)
}
