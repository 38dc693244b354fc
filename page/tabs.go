package page

import (
	"fmt"

	"uncommon/models"
)

// Tab 是詳細資訊區塊的分頁
// 第二個分頁的標籤與內容依模式而定，但狀態本身只記錄是否為第二個分頁
type Tab string

const (
	TabDescription Tab = "description"
	TabOther       Tab = "other"
)

// ParseTab 接受狀態值以及畫面上使用的 details / activity 鍵
func ParseTab(s string) (Tab, error) {
	switch s {
	case string(TabDescription):
		return TabDescription, nil
	case string(TabOther), "details", "activity":
		return TabOther, nil
	default:
		return "", fmt.Errorf("invalid tab %q", s)
	}
}

func (t Tab) Valid() bool {
	return t == TabDescription || t == TabOther
}

// otherTab 回傳第二個分頁在該模式下的鍵與標籤
func otherTab(mode models.Mode) (key, label string) {
	if mode == models.ModeAuction {
		return "activity", "Activity"
	}
	return "details", "Details"
}
