package tui

import "github.com/charmbracelet/lipgloss"

// 與網頁版相同的配色
var (
	Primary    = lipgloss.Color("#8B5CF6")
	Live       = lipgloss.Color("#EF4444")
	Highlight  = lipgloss.Color("#FACC15")
	Muted      = lipgloss.Color("#C2C2C5")
	Card       = lipgloss.Color("#1C1C1F")
	Background = lipgloss.Color("#0E0E10")
)

type Styles struct {
	Title       lipgloss.Style
	Domain      lipgloss.Style
	BuyNowBadge lipgloss.Style
	LiveBadge   lipgloss.Style
	Price       lipgloss.Style
	Muted       lipgloss.Style
	Card        lipgloss.Style
	Dialog      lipgloss.Style
	ActiveTab   lipgloss.Style
	Tab         lipgloss.Style
	Toast       lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Domain:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")),
		BuyNowBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(Primary).Padding(0, 1),
		LiveBadge:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(Live).Padding(0, 1),
		Price:       lipgloss.NewStyle().Bold(true).Foreground(Highlight),
		Muted:       lipgloss.NewStyle().Foreground(Muted),
		Card:        lipgloss.NewStyle().Background(Card).Padding(0, 1).MarginBottom(1),
		Dialog:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Primary).Padding(0, 1),
		ActiveTab:   lipgloss.NewStyle().Foreground(Background).Background(Highlight).Padding(0, 1),
		Tab:         lipgloss.NewStyle().Foreground(Muted).Padding(0, 1),
		Toast:       lipgloss.NewStyle().Foreground(Highlight),
		Error:       lipgloss.NewStyle().Foreground(Live),
		Help:        lipgloss.NewStyle().Foreground(Muted).Faint(true),
	}
}
