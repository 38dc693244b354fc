package page

import (
	"fmt"

	"uncommon/models"
)

// State 是 View 的可序列化暫存狀態，讓傳輸層可以在同一次頁面瀏覽的多個請求間攜帶
type State struct {
	Mode         models.Mode `json:"mode" msgpack:"mode"`
	Tab          Tab         `json:"tab" msgpack:"tab"`
	BidOpen      bool        `json:"bidOpen" msgpack:"bid_open"`
	BidPending   int64       `json:"bidPending" msgpack:"bid_pending"`
	OfferOpen    bool        `json:"offerOpen" msgpack:"offer_open"`
	OfferPending int64       `json:"offerPending" msgpack:"offer_pending"`
}

// State 匯出目前狀態
func (v *View) State() State {
	return State{
		Mode:         v.mode,
		Tab:          v.tab,
		BidOpen:      v.bid.open,
		BidPending:   v.bid.pending,
		OfferOpen:    v.offer.open,
		OfferPending: v.offer.pending,
	}
}

// Restore 匯入先前匯出的狀態
func (v *View) Restore(state State) error {
	const op = "page.View.Restore"
	if !state.Mode.Valid() {
		return fmt.Errorf("%s: invalid mode %q", op, state.Mode)
	}
	if !state.Tab.Valid() {
		return fmt.Errorf("%s: invalid tab %q", op, state.Tab)
	}
	v.mode = state.Mode
	v.tab = state.Tab
	v.bid.open, v.bid.pending = state.BidOpen, state.BidPending
	v.offer.open, v.offer.pending = state.OfferOpen, state.OfferPending
	return nil
}
