// Package tui provides the interactive Bubble Tea dashboard for pmlens.
package tui

import (
	"fmt"
	"strings"
	"time"

	"pmlens/internal/config"
	"pmlens/internal/model"
	"pmlens/internal/pipeline"
	"pmlens/internal/store"
	"pmlens/internal/tui/components"
	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the initial data load finishes.
type DataLoadedMsg struct {
	Snapshot  model.Snapshot
	RowErrors int
	FromCache bool
	LoadTime  time.Duration
	Err       error
}

// RefreshDataMsg is sent when a manual refresh completes.
type RefreshDataMsg struct {
	Snapshot  model.Snapshot
	RowErrors int
	FromCache bool
	LoadTime  time.Duration
	Err       error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	snapshot  model.Snapshot
	rowErrors int
	loaded    bool
	loadErr   error
	loadTime  time.Duration
	fromCache bool

	// Precomputed for the current filter. The TUI always recomputes with
	// a nil random source so redraws are stable frame to frame.
	view pipeline.DashboardView

	// Filter state
	year    int
	horizon int
	topN    int

	// Years observed in the data, for cycling with the y key.
	yearCycle []int

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	refreshing bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model

	dataDir string
}

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5
	maxHorizon       = 10
)

// NewApp creates a new TUI app model.
func NewApp(dataDir string, filter pipeline.Filter) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	horizon := filter.Horizon
	if horizon <= 0 {
		horizon = 3
	}

	return App{
		dataDir:   dataDir,
		year:      filter.Year,
		horizon:   horizon,
		topN:      filter.TopN,
		needSetup: !config.Exists(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.dataDir),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	filter := pipeline.Filter{Year: a.year, Horizon: a.horizon, TopN: a.topN}
	a.view = pipeline.Recompute(a.snapshot, filter, nil)

	a.yearCycle = a.yearCycle[:0]
	for _, ys := range a.view.Years {
		a.yearCycle = append(a.yearCycle, ys.Year)
	}
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

	case tea.KeyMsg:
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

		switch key {
		case "q":
			return a, tea.Quit

		case "y":
			a.year = a.nextYear()
			a.recompute()
			return a, nil

		case "+", "=":
			if a.horizon < maxHorizon {
				a.horizon++
				a.recompute()
			}
			return a, nil

		case "-", "_":
			if a.horizon > 1 {
				a.horizon--
				a.recompute()
			}
			return a, nil

		case "R":
			if !a.refreshing {
				a.refreshing = true
				return a, refreshDataCmd(a.dataDir)
			}
			return a, nil

		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		a.fromCache = msg.FromCache
		if msg.Err == nil {
			a.snapshot = msg.Snapshot
			a.rowErrors = msg.RowErrors
			a.recompute()
		}

		// Activate first-run setup after data loads
		if a.needSetup && msg.Err == nil {
			a.setupForm = newSetupForm(len(a.snapshot.Projects), a.dataDir, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		if msg.Err == nil {
			a.snapshot = msg.Snapshot
			a.rowErrors = msg.RowErrors
			a.loadTime = msg.LoadTime
			a.fromCache = msg.FromCache
			a.recompute()
		}
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

// nextYear cycles all years -> first observed -> ... -> last -> all.
func (a App) nextYear() int {
	if len(a.yearCycle) == 0 {
		return 0
	}
	if a.year == 0 {
		return a.yearCycle[0]
	}
	for i, y := range a.yearCycle {
		if y == a.year && i+1 < len(a.yearCycle) {
			return a.yearCycle[i+1]
		}
	}
	return 0
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
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

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
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

	if a.loadErr != nil {
		return a.viewLoadError()
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
		"\n  Terminal too narrow (%d cols)\n\n  pmlens needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)

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
	b.WriteString(logoStyle.Render("◈ pmlens"))
	b.WriteString(subtitleStyle.Render(" · Project Portfolio Analytics"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Parsing portfolio..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := titleStyle.Render("Could not load data") + "\n\n" +
		bodyStyle.Render(a.loadErr.Error()) + "\n\n" +
		bodyStyle.Render("Press q to quit")

	card := cardStyle.Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"o t r a", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"y", "Cycle year filter"},
		{"+ -", "Widen / Narrow forecast horizon"},
		{"R", "Reload data files"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar + filter pill
	pillDim := lipgloss.NewStyle().Foreground(t.TextDim)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	yearStr := "all years"
	if a.year != 0 {
		yearStr = fmt.Sprintf("%d", a.year)
	}
	filterStr := " " + pillAccent.Render(yearStr) +
		pillDim.Render(" │ ") + pillAccent.Render(fmt.Sprintf("+%dy", a.horizon)) +
		pillDim.Render(" │ ") + pillAccent.Render(fmt.Sprintf("top %d", a.topN))
	if a.rowErrors > 0 {
		filterStr += pillDim.Render(" │ ") +
			lipgloss.NewStyle().Foreground(t.Orange).Render(fmt.Sprintf("%d bad rows", a.rowErrors))
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Width(w).Render(filterStr)

	dataAge := fmt.Sprintf("%.1fs", a.loadTime.Seconds())
	statusBar := components.RenderStatusBar(w, dataAge, a.fromCache)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderTrendsTab(cw)
	case 2:
		content = a.renderRiskTab(cw, contentH)
	case 3:
		content = a.renderActionsTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// chartByTitle finds a chart spec by title prefix, nil when absent.
func (a App) chartByTitle(prefix string) *model.ChartSpec {
	for i := range a.view.Charts {
		if strings.HasPrefix(a.view.Charts[i].Title, prefix) {
			return &a.view.Charts[i]
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────

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

// loadDataCmd runs the load pipeline in the background, cache first
// with a fallback to a full parse.
func loadDataCmd(dataDir string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(dataDir, cache)
			_ = cache.Close()
			if loadErr == nil {
				return DataLoadedMsg{
					Snapshot:  cr.Snapshot,
					RowErrors: cr.RowErrors,
					FromCache: cr.FromCache,
					LoadTime:  time.Since(start),
				}
			}
		}

		result, err := pipeline.Load(dataDir)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		return DataLoadedMsg{
			Snapshot:  result.Snapshot,
			RowErrors: result.RowErrors,
			LoadTime:  time.Since(start),
		}
	}
}

func refreshDataCmd(dataDir string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(dataDir, cache)
			_ = cache.Close()
			if loadErr == nil {
				return RefreshDataMsg{
					Snapshot:  cr.Snapshot,
					RowErrors: cr.RowErrors,
					FromCache: cr.FromCache,
					LoadTime:  time.Since(start),
				}
			}
		}

		result, err := pipeline.Load(dataDir)
		if err != nil {
			return RefreshDataMsg{Err: err, LoadTime: time.Since(start)}
		}
		return RefreshDataMsg{
			Snapshot:  result.Snapshot,
			RowErrors: result.RowErrors,
			LoadTime:  time.Since(start),
		}
	}
}
