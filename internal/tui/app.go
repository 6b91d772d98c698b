package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
)

// SignalsBrowser is the read surface the TUI browses.
type SignalsBrowser interface {
	GetTopSignals(ctx context.Context, direction domain.Direction, limit int) []domain.TokenSignal
	GetTokenDetail(ctx context.Context, symbol string) *domain.TokenDetail
	GetWatchlistTokens(ctx context.Context) []domain.TokenSignal
}

type WatchKeeper interface {
	Add(ctx context.Context, symbol string)
	Remove(ctx context.Context, symbol string)
	Contains(symbol string) bool
}

// CounterReader reads the on-chain counter. May be nil when chain features
// are not configured.
type CounterReader interface {
	CounterStatus(ctx context.Context) (*domain.CounterStatus, error)
}

type Services struct {
	Signals   SignalsBrowser
	Watchlist WatchKeeper
	Counter   CounterReader
	Username  string
}

const (
	tabGainers = iota
	tabLosers
	tabWatchlist
	tabCount
)

var tabNames = [tabCount]string{"Gainers", "Losers", "Watchlist"}

type signalsLoadedMsg struct {
	tab     int
	signals []domain.TokenSignal
}

type detailLoadedMsg struct {
	detail *domain.TokenDetail
}

type counterLoadedMsg struct {
	status *domain.CounterStatus
	err    error
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	gainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	detailStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
)

type AppModel struct {
	svc       Services
	tab       int
	table     table.Model
	signals   []domain.TokenSignal
	detail    *domain.TokenDetail
	counter   string
	width     int
	height    int
	statusMsg string
}

func NewAppModel(svc Services) *AppModel {
	columns := []table.Column{
		{Title: "Symbol", Width: 12},
		{Title: "Type", Width: 12},
		{Title: "Mom 6h", Width: 10},
		{Title: "Pred 6h", Width: 10},
		{Title: "Watch", Width: 6},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return &AppModel{svc: svc, table: t}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 10 {
		m.table.SetHeight(height - 8)
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadTab(m.tab), m.loadCounter())
}

func (m *AppModel) loadTab(tab int) tea.Cmd {
	svc := m.svc.Signals
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		var signals []domain.TokenSignal
		switch tab {
		case tabLosers:
			signals = svc.GetTopSignals(ctx, domain.DirectionLosers, 20)
		case tabWatchlist:
			signals = svc.GetWatchlistTokens(ctx)
		default:
			signals = svc.GetTopSignals(ctx, domain.DirectionGainers, 20)
		}
		return signalsLoadedMsg{tab: tab, signals: signals}
	}
}

func (m *AppModel) loadDetail(symbol string) tea.Cmd {
	svc := m.svc.Signals
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return detailLoadedMsg{detail: svc.GetTokenDetail(ctx, symbol)}
	}
}

func (m *AppModel) loadCounter() tea.Cmd {
	reader := m.svc.Counter
	if reader == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		status, err := reader.CounterStatus(ctx)
		return counterLoadedMsg{status: status, err: err}
	}
}

func (m *AppModel) selectedSymbol() string {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case signalsLoadedMsg:
		if msg.tab != m.tab {
			return m, nil
		}
		m.signals = msg.signals
		m.table.SetRows(m.rows())
		return m, nil

	case detailLoadedMsg:
		if msg.detail == nil {
			m.statusMsg = "no detail available for that token"
			return m, nil
		}
		m.detail = msg.detail
		return m, nil

	case counterLoadedMsg:
		if msg.err != nil {
			m.counter = ""
			return m, nil
		}
		if msg.status.AtMilestone {
			m.counter = fmt.Sprintf("counter %d, NFT mint available!", msg.status.Value)
		} else {
			m.counter = fmt.Sprintf("counter %d, next milestone %d", msg.status.Value, msg.status.NextMilestone)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail != nil {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "enter", "backspace":
			m.detail = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "l", "right":
		m.tab = (m.tab + 1) % tabCount
		m.statusMsg = ""
		return m, m.loadTab(m.tab)
	case "shift+tab", "h", "left":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.statusMsg = ""
		return m, m.loadTab(m.tab)
	case "enter":
		symbol := m.selectedSymbol()
		if symbol == "" {
			return m, nil
		}
		return m, m.loadDetail(symbol)
	case "w":
		symbol := m.selectedSymbol()
		if symbol == "" || m.svc.Watchlist == nil {
			return m, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if m.svc.Watchlist.Contains(symbol) {
			m.svc.Watchlist.Remove(ctx, symbol)
			m.statusMsg = symbol + " removed from watchlist"
		} else {
			m.svc.Watchlist.Add(ctx, symbol)
			m.statusMsg = symbol + " added to watchlist"
		}
		m.table.SetRows(m.rows())
		if m.tab == tabWatchlist {
			return m, m.loadTab(m.tab)
		}
		return m, nil
	case "r":
		m.statusMsg = "refreshing..."
		return m, tea.Batch(m.loadTab(m.tab), m.loadCounter())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AppModel) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.signals))
	for _, sig := range m.signals {
		watched := ""
		if m.svc.Watchlist != nil && m.svc.Watchlist.Contains(sig.Symbol) {
			watched = "*"
		}
		rows = append(rows, table.Row{
			sig.Symbol,
			string(sig.Type),
			fmt.Sprintf("%+.2f%%", sig.HxMom6),
			fmt.Sprintf("%+.2f%%", domain.MetricOrZero(sig.HxRet6)),
			watched,
		})
	}
	return rows
}

func (m *AppModel) View() string {
	if m.detail != nil {
		return m.detailView()
	}

	var tabs []string
	for i, name := range tabNames {
		if i == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Top Signals Browser"))
	b.WriteString("  ")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if len(m.signals) == 0 {
		if m.tab == tabWatchlist {
			b.WriteString("Watchlist is empty. Press w on any token to watch it.\n")
		} else {
			b.WriteString("No signals available right now.\n")
		}
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.counter != "" {
		b.WriteString(statusStyle.Render(m.counter))
		b.WriteString("\n")
	}
	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab: switch  enter: detail  w: watch  r: refresh  q: quit"))
	return b.String()
}

func (m *AppModel) detailView() string {
	d := m.detail
	style := lossStyle
	if d.HxMom6 > 0 {
		style = gainStyle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render(d.Symbol), string(d.Type))
	fmt.Fprintf(&b, "Momentum 6h      %s\n", style.Render(fmt.Sprintf("%+.2f%%", d.HxMom6)))
	fmt.Fprintf(&b, "Liquidity 6h     %+.2f%%\n", domain.MetricOrZero(d.HxLiq6))
	fmt.Fprintf(&b, "Social buzz 6h   %+.2f%%\n", domain.MetricOrZero(d.HxBuzz6))
	fmt.Fprintf(&b, "Sentiment 6h     %+.2f%%\n", domain.MetricOrZero(d.HxSent6))
	fmt.Fprintf(&b, "Rank improve 6h  %+.2f\n", domain.MetricOrZero(d.HxRank6))
	fmt.Fprintf(&b, "Galaxy change 6h %+.2f\n", domain.MetricOrZero(d.HxGal6))
	fmt.Fprintf(&b, "Predicted 6h     %+.2f%%\n", domain.MetricOrZero(d.HxRet6))
	fmt.Fprintf(&b, "Contributors     %+.2f%%\n", domain.MetricOrZero(d.Contribs))
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Description)
	}
	if d.Website != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Website)
	}
	b.WriteString("\n" + helpStyle.Render("esc: back  q: quit"))
	return detailStyle.Render(b.String())
}
