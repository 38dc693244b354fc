package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uncommon/models"
	"uncommon/page"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

// deliverToast 執行等待通知的指令並將結果交給 Update
func deliverToast(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.Init()()
	require.IsType(t, toastMsg{}, msg)
	return press(t, m, msg)
}

func newTestModel(t *testing.T, mode models.Mode, opts ...page.ViewOption) Model {
	t.Helper()
	m, err := NewModel(models.DefaultListing(), mode, opts...)
	require.NoError(t, err)
	return m
}

func TestNewModel_InvalidMode(t *testing.T) {
	_, err := NewModel(models.DefaultListing(), models.Mode("lottery"))
	assert.ErrorContains(t, err, "tui.NewModel")
}

func TestModel_BidFlow(t *testing.T) {
	m := newTestModel(t, models.ModeAuction)

	m = press(t, m, runes("b"))
	require.True(t, m.dialogOpen())
	assert.Equal(t, "8600", m.input.Value())
	assert.Contains(t, m.View(), "Place Your Bid")

	// 非數字的輸入會被忽略
	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		runes("9"), runes("x"), runes("0"), runes("0"), runes("0"),
	)
	assert.Equal(t, "9000", m.input.Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.dialogOpen())
	m = deliverToast(t, m)
	require.NotNil(t, m.toast)
	assert.Equal(t, "Bid Placed!", m.toast.Title)
	assert.Contains(t, m.View(), "Your bid of $9,000 has been placed.")

	// 出價紀錄不變
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	view := m.View()
	assert.Contains(t, view, "Bidder X")
	assert.Contains(t, view, "Bidder Z")
	assert.Len(t, m.view.Listing().BidHistory, 3)
}

func TestModel_OfferFlow(t *testing.T) {
	m := newTestModel(t, models.ModeBuyNow)

	m = press(t, m, runes("o"))
	assert.Equal(t, "8500", m.input.Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverToast(t, m)
	assert.Equal(t, page.Notification{Title: "Offer Sent!", Message: "Your offer of $8,500 has been sent to the seller."}, *m.toast)
}

func TestModel_CancelResetsPending(t *testing.T) {
	m := newTestModel(t, models.ModeAuction)

	m = press(t, m, runes("b"), runes("5"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.dialogOpen())
	assert.Equal(t, int64(8600), m.view.PendingAmount(page.DialogBid))

	m = press(t, m, runes("b"))
	assert.Equal(t, "8600", m.input.Value())
}

func TestModel_ModeAndTabs(t *testing.T) {
	m := newTestModel(t, models.ModeBuyNow)
	assert.Contains(t, m.View(), "Available for Purchase")

	// 直購模式不能出價
	m = press(t, m, runes("b"))
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "bid is not available in buy-now mode")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Monthly search traffic")

	m = press(t, m, runes("m"))
	assert.Equal(t, models.ModeAuction, m.view.Mode())
	assert.Equal(t, page.TabOther, m.view.Tab())
	view := m.View()
	assert.Contains(t, view, "Live Auction")
	assert.Contains(t, view, "1d 2h 4m 51s")
	assert.Contains(t, view, "Activity")
}

func TestModel_ModeSwitchKeepsDialog(t *testing.T) {
	m := newTestModel(t, models.ModeBuyNow)

	m = press(t, m, runes("o"), runes("m"))
	assert.False(t, m.dialogOpen())
	assert.True(t, m.view.IsDialogOpen(page.DialogOffer))

	m = press(t, m, runes("m"))
	assert.True(t, m.dialogOpen())
	assert.Equal(t, "8500", m.input.Value())
}

func TestModel_StrictAmounts(t *testing.T) {
	m := newTestModel(t, models.ModeAuction, page.WithStrictAmounts(true))

	m = press(t, m, runes("b"),
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		runes("5"), runes("0"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.True(t, m.dialogOpen())
	assert.ErrorIs(t, m.err, page.ErrBelowMinimum)
}

func TestModel_LatestToastWins(t *testing.T) {
	m := newTestModel(t, models.ModeBuyNow)

	m = press(t, m, runes("o"), tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, runes("o"), runes("1"), tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverToast(t, m)
	assert.Contains(t, m.toast.Message, "$85,001")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, models.ModeBuyNow)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
