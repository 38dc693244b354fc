// Package tui renders the listing page in a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"uncommon/models"
	"uncommon/page"
)

var stripTags = bluemonday.StrictPolicy()

// plainText 去除描述中的 HTML 標籤以便在終端機顯示
func plainText(s string) string {
	return html.UnescapeString(stripTags.Sanitize(s))
}

// toastMsg 是確認對話框後收到的通知
type toastMsg page.Notification

// Model 是終端機版的頁面，狀態全部保存在 page.View
type Model struct {
	view     *page.View
	toasts   chan page.Notification
	input    textinput.Model
	help     help.Model
	keys     keyMap
	styles   Styles
	toast    *page.Notification
	err      error
	width    int
	quitting bool
}

// NewModel 建立終端機頁面，確認後的通知經由 notifier 回到畫面的狀態列
func NewModel(listing models.Listing, mode models.Mode, opts ...page.ViewOption) (Model, error) {
	const op = "tui.NewModel"
	toasts := make(chan page.Notification, 1)
	// 狀態列只顯示最新的一則通知，尚未顯示的舊通知直接捨棄
	notifier := page.NotifierFunc(func(_ context.Context, n page.Notification) error {
		for {
			select {
			case toasts <- n:
				return nil
			default:
				select {
				case <-toasts:
				default:
				}
			}
		}
	})

	view, err := page.NewView(listing, mode, append(opts, page.WithNotifier(notifier))...)
	if err != nil {
		return Model{}, fmt.Errorf("%s: %w", op, err)
	}

	input := textinput.New()
	input.CharLimit = 12
	input.Width = 16
	input.Prompt = "$ "

	return Model{
		view:   view,
		toasts: toasts,
		input:  input,
		help:   help.New(),
		keys:   keys,
		styles: DefaultStyles(),
	}, nil
}

func waitForToast(toasts <-chan page.Notification) tea.Cmd {
	return func() tea.Msg {
		return toastMsg(<-toasts)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForToast(m.toasts)
}

// activeKind 回傳目前模式下可以使用的對話框
func (m Model) activeKind() page.DialogKind {
	if m.view.Mode() == models.ModeAuction {
		return page.DialogBid
	}
	return page.DialogOffer
}

func (m Model) dialogOpen() bool {
	return m.view.IsDialogOpen(m.activeKind())
}

// syncInput 讓輸入框顯示目前對話框的待送出金額
func (m *Model) syncInput() tea.Cmd {
	if !m.dialogOpen() {
		m.input.Blur()
		return nil
	}
	m.input.SetValue(strconv.FormatInt(m.view.PendingAmount(m.activeKind()), 10))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case toastMsg:
		n := page.Notification(msg)
		m.toast = &n
		return m, waitForToast(m.toasts)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.dialogOpen() {
			return m.updateDialog(msg)
		}
		return m.updatePage(msg)
	}
	return m, nil
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Mode):
		next := models.ModeAuction
		if m.view.Mode() == models.ModeAuction {
			next = models.ModeBuyNow
		}
		m.err = m.view.SetMode(next)
		// 切換模式不會關閉另一個模式的對話框
		return m, m.syncInput()

	case key.Matches(msg, m.keys.Tab):
		next := page.TabOther
		if m.view.Tab() == page.TabOther {
			next = page.TabDescription
		}
		m.err = m.view.SelectTab(next)
		return m, nil

	case key.Matches(msg, m.keys.Bid):
		return m.openDialog(page.DialogBid)

	case key.Matches(msg, m.keys.Offer):
		return m.openDialog(page.DialogOffer)
	}
	return m, nil
}

func (m Model) openDialog(kind page.DialogKind) (tea.Model, tea.Cmd) {
	if err := m.view.OpenDialog(kind); err != nil {
		if errors.Is(err, page.ErrDialogUnavailable) {
			err = fmt.Errorf("%s is not available in %s mode", kind, m.view.Mode())
		}
		m.err = err
		return m, nil
	}
	m.toast = nil
	return m, m.syncInput()
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.activeKind()
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.err = m.view.CancelDialog(kind)
		return m, m.syncInput()

	case key.Matches(msg, m.keys.Mode):
		// 先保留輸入中的金額，切回來時可以繼續編輯
		if err := m.view.SetPendingAmount(kind, m.input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		return m.updatePage(msg)

	case key.Matches(msg, m.keys.Confirm):
		if err := m.view.SetPendingAmount(kind, m.input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		_, err := m.view.ConfirmDialog(context.Background(), kind)
		m.err = err
		return m, m.syncInput()
	}

	// 只接受數字與編輯鍵
	if msg.Type == tea.KeyRunes && strings.Trim(string(msg.Runes), "0123456789.") != "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	p := m.view.Render()
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(p.SiteTitle) + "\n\n")

	header := []string{s.Domain.Render(p.Domain), s.Muted.Render("thumbnail: " + p.ThumbnailURL)}
	for _, f := range p.Features {
		header = append(header, s.Muted.Render("• "+f.Text))
	}
	b.WriteString(s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, header...)) + "\n")

	switch panel := p.Panel.(type) {
	case *page.BuyNowPanel:
		b.WriteString(s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.BuyNowBadge.Render(panel.Badge),
			panel.PriceLabel+" "+s.Price.Render(panel.Price),
			s.Muted.Render(fmt.Sprintf("[%s]  [o] %s", panel.BuyNowLabel, panel.MakeOfferLabel)),
		)) + "\n")
		b.WriteString(m.renderDialog(panel.Offer))
	case *page.AuctionPanel:
		b.WriteString(s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.LiveBadge.Render(panel.Badge),
			panel.PriceLabel+" "+s.Price.Render(panel.Price),
			panel.EndsInLabel+" "+panel.EndsIn,
			s.Muted.Render("[b] "+panel.PlaceBidLabel),
		)) + "\n")
		b.WriteString(m.renderDialog(panel.Bid))
	}

	b.WriteString(m.renderTabs(p.Tabs) + "\n")

	switch {
	case m.err != nil:
		b.WriteString(s.Error.Render(m.err.Error()) + "\n")
	case m.toast != nil:
		b.WriteString(s.Toast.Render(m.toast.Title+" "+m.toast.Message) + "\n")
	}

	bindings := m.keys.pageHelp()
	if m.dialogOpen() {
		bindings = m.keys.dialogHelp()
	}
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}

func (m Model) renderDialog(d page.DialogView) string {
	if !d.Open {
		return ""
	}
	lines := []string{m.styles.Title.Render(d.Title), d.Domain}
	lines = append(lines, d.Summary...)
	lines = append(lines, d.AmountLabel, m.input.View(), m.styles.Muted.Render(d.HelpText))
	lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("[enter] %s  [esc] %s", d.ConfirmLabel, d.CancelLabel)))
	return m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

func (m Model) renderTabs(t page.TabsView) string {
	s := m.styles
	tabs := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		if item.Active {
			tabs = append(tabs, s.ActiveTab.Render(item.Label))
		} else {
			tabs = append(tabs, s.Tab.Render(item.Label))
		}
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, tabs...)}

	switch {
	case t.Active == page.TabDescription:
		lines = append(lines, plainText(t.Description))
	case t.Activity != nil:
		for _, row := range t.Activity {
			lines = append(lines, fmt.Sprintf("%-10s %-12s %s", row.Bidder, row.Date, row.Amount))
		}
	default:
		for _, fact := range t.Details {
			lines = append(lines, fmt.Sprintf("%-24s %s", fact.Label, fact.Value))
		}
	}
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
