// Package tui provides the interactive Bubble Tea dashboard for rp.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/config"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"
	"github.com/nagaosooooooora-dev/roman-points/internal/store"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/components"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when a (re)load of the ledger completes.
type DataLoadedMsg struct {
	Txs      []model.Transaction
	Actions  []model.Action
	Options  []model.ActionOption
	Goals    []model.Goal
	Err      error
	LoadTime time.Duration
}

// WriteDoneMsg is sent after a mutation; Status is a one-line receipt
// for the status area, and the fresh data rides along.
type WriteDoneMsg struct {
	Status string
	Data   DataLoadedMsg
}

// App is the root Bubble Tea model.
type App struct {
	dbPath string
	today  time.Time

	// Data
	txs     []model.Transaction
	actions []model.Action
	options []model.ActionOption
	goals   []model.Goal

	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Pre-computed on every (re)load
	balance     int64
	monthEarned int64
	avgDaily    float64
	dailyNets   []int64 // window, oldest first
	series      []int64 // running balance over the window

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string // transient receipt after a write
	days      int

	// Per-tab state
	hist histState
	act  actState
	wish wishState
	sett settState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
	minContentHeight = 5
	scrollOverhead   = 6 // header + status bar height for paging calcs
)

// NewApp creates a new TUI app model. today is the injected reference
// day; the caller decides whether that is the wall clock.
func NewApp(dbPath string, days int, today time.Time) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		dbPath:    dbPath,
		days:      days,
		today:     ledger.Day(today),
		needSetup: !config.Exists(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath),
		a.spinner.Tick,
	)
}

// loadData reads the full ledger from the database. Used both as the
// initial load and as the reload after every write.
func loadData(dbPath string) DataLoadedMsg {
	start := time.Now()

	st, err := store.Open(dbPath)
	if err != nil {
		return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
	}
	defer st.Close()

	var msg DataLoadedMsg
	if msg.Txs, err = st.Transactions(); err != nil {
		return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
	}
	if msg.Actions, err = st.Actions(); err != nil {
		return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
	}
	if msg.Options, err = st.ActionOptions(); err != nil {
		return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
	}
	if msg.Goals, err = st.Goals(); err != nil {
		return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
	}
	msg.LoadTime = time.Since(start)
	return msg
}

func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		return loadData(dbPath)
	}
}

func (a *App) applyData(msg DataLoadedMsg) {
	a.loaded = true
	a.loadErr = msg.Err
	a.loadTime = msg.LoadTime
	if msg.Err != nil {
		return
	}
	a.txs = msg.Txs
	a.actions = msg.Actions
	a.options = msg.Options
	a.goals = msg.Goals
	a.recompute()
}

func (a *App) recompute() {
	live := ledger.Alive(a.txs)
	a.balance = ledger.SumAmounts(live)
	a.monthEarned = ledger.EarnedInMonth(a.txs, a.today)

	cfg := loadConfigOrDefault()
	a.avgDaily = ledger.AverageDailyEarn(a.txs, cfg.General.EarnLookbackDays, a.today)

	start := a.today.AddDate(0, 0, -(a.days - 1))
	net := ledger.DailyNet(a.txs, start, a.today)
	days := ledger.DaysInclusive(start, a.today)
	a.dailyNets = a.dailyNets[:0]
	for _, d := range days {
		a.dailyNets = append(a.dailyNets, net[ledger.DayKey(d)])
	}
	a.series = ledger.BalanceSeries(a.txs, start, a.today)

	// Clamp cursors to the new data
	if a.hist.cursor >= len(a.visibleHistory()) {
		a.hist.cursor = len(a.visibleHistory()) - 1
	}
	if a.hist.cursor < 0 {
		a.hist.cursor = 0
	}
	if a.act.cursor >= len(a.liveActions()) {
		a.act.cursor = len(a.liveActions()) - 1
	}
	if a.act.cursor < 0 {
		a.act.cursor = 0
	}
	if a.wish.cursor >= len(a.liveGoals()) {
		a.wish.cursor = len(a.liveGoals()) - 1
	}
	if a.wish.cursor < 0 {
		a.wish.cursor = 0
	}
}

// loadConfigOrDefault loads config, falling back to defaults so the
// TUI can always start even if the file is unreadable.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func (a App) liveActions() []model.Action {
	var out []model.Action
	for _, act := range a.actions {
		if !act.Deleted {
			out = append(out, act)
		}
	}
	model.SortActions(out)
	return out
}

func (a App) liveGoals() []model.Goal {
	var out []model.Goal
	for _, g := range a.goals {
		if !g.Deleted {
			out = append(out, g)
		}
	}
	return out
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabHistory && a.hist.cursor > 0 {
				a.hist.cursor--
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabHistory && a.hist.cursor < len(a.visibleHistory())-1 {
				a.hist.cursor++
			}
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case DataLoadedMsg:
		a.applyData(msg)
		if a.needSetup && a.loadErr == nil {
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case WriteDoneMsg:
		a.status = msg.Status
		a.applyData(msg.Data)
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Option picker intercepts keys while open
	if a.act.picking {
		return a.updateActionPicker(msg)
	}

	switch a.activeTab {
	case tabHistory:
		if m, cmd, handled := a.updateHistoryKeys(key); handled {
			return m, cmd
		}
	case tabActions:
		if m, cmd, handled := a.updateActionKeys(key); handled {
			return m, cmd
		}
	case tabWishlist:
		if m, cmd, handled := a.updateWishlistKeys(key); handled {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, handled := a.updateSettingsKeys(key); handled {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		a.status = ""
		return a, loadDataCmd(a.dbPath)
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  rp needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ rp"))
	b.WriteString(subtitleStyle.Render(" · Roman Points"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Opening ledger..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"o h a w x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"Enter", "Record selected action"},
		{"d", "Remove entry (History)"},
		{"u", "Restore entry (History)"},
		{"D", "Show removed entries"},
		{"t", "Cycle theme (Settings)"},
		{"r", "Reload data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	statusBar := components.RenderStatusBar(w, cli.FormatPoints(a.balance))

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if a.loadErr != nil {
		content = lipgloss.NewStyle().Foreground(t.Red).
			Render(fmt.Sprintf("\n  could not read the ledger: %v", a.loadErr))
	} else {
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabHistory:
			content = a.renderHistoryTab(cw, contentH)
		case tabActions:
			content = a.renderActionsTab(cw, contentH)
		case tabWishlist:
			content = a.renderWishlistTab(cw)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	if a.status != "" {
		content = lipgloss.NewStyle().Foreground(t.Green).Render(" "+a.status) + "\n" + content
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// Tab indices, matching components.Tabs order.
const (
	tabOverview = iota
	tabHistory
	tabActions
	tabWishlist
	tabSettings
)

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
