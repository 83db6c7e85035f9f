// Package app wires the virtualized list, scrollbar, and status bar into
// the root Bubble Tea model for the vscroll demo.
package app

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vscroll/vscroll/style"
	"github.com/vscroll/vscroll/ui/common"
	"github.com/vscroll/vscroll/ui/status"
	"github.com/vscroll/vscroll/ui/vlist"
)

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model.
type Model struct {
	list      vlist.Model
	scrollbar common.ScrollbarModel
	status    status.Model
	keys      KeyMap
	layout    Layout

	title  string
	width  int
	height int
}

// New builds the root model around the given items.
func New(title string, items []vlist.Item, minRowHeight int) Model {
	keys := DefaultKeyMap()

	st := status.New()
	st.SetHelp(common.KeyHelp(
		keys.ScrollDown, keys.ScrollUp, keys.ScrollBottom,
		keys.ToggleDetail, keys.Quit,
	))

	m := Model{
		list: vlist.New(
			vlist.WithMinRowHeight(minRowHeight),
		),
		status: st,
		keys:   keys,
		title:  title,
	}
	m.list.SetItems(items)
	return m
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tea.RequestWindowSize() }
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.applyLayout()
		return m, nil

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(v)
		m.syncChrome()
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(v)
	}

	return m, nil
}

// handleKey dispatches global keybindings.
func (m Model) handleKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches[tea.KeyPressMsg](k, m.keys.Quit):
		return m, tea.Quit

	case key.Matches[tea.KeyPressMsg](k, m.keys.ScrollUp):
		m.list.ScrollUp(1)
	case key.Matches[tea.KeyPressMsg](k, m.keys.ScrollDown):
		m.list.ScrollDown(1)
	case key.Matches[tea.KeyPressMsg](k, m.keys.HalfPageUp):
		m.list.HalfPageUp()
	case key.Matches[tea.KeyPressMsg](k, m.keys.HalfPageDown):
		m.list.HalfPageDown()
	case key.Matches[tea.KeyPressMsg](k, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches[tea.KeyPressMsg](k, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches[tea.KeyPressMsg](k, m.keys.ScrollTop):
		m.list.ScrollToTop()
	case key.Matches[tea.KeyPressMsg](k, m.keys.ScrollBottom):
		m.list.ScrollToBottom()

	case key.Matches[tea.KeyPressMsg](k, m.keys.ToggleDetail):
		m.status.ToggleDetail()
		m.applyLayout()

	case key.Matches[tea.KeyPressMsg](k, m.keys.ToggleTheme):
		if style.ThemeName() == "dark" {
			style.SetTheme("light")
		} else {
			style.SetTheme("dark")
		}
		m.list.InvalidateCache()
		m.applyLayout()
	}

	m.syncChrome()
	return m, nil
}

// applyLayout recomputes dimensions and resizes the list pane.
func (m *Model) applyLayout() {
	m.layout = ComputeLayout(m.width, m.height, m.status.Height())
	m.list.SetSize(m.layout.ListWidth, m.layout.ListHeight)
	m.status.SetWidth(m.width)
	m.syncChrome()
}

// syncChrome pushes the list's current position into the scrollbar and
// status bar after any scroll or resize.
func (m *Model) syncChrome() {
	m.scrollbar.SetDimensions(
		m.layout.ListHeight,
		float64(m.list.TotalHeight()),
		m.list.Offset(),
	)
	m.status.SetScroll(m.list.Offset(), float64(m.list.ScrollPercent()))
	m.status.SetEstimate(m.list.Len(), m.list.MeasuredCount(), m.list.Window())
}

// -- View ---------------------------------------------------------------------

// View assembles the frame. AltScreen and MouseMode are set on every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	bar := m.scrollbar.View()
	body := m.list.View()
	if bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", bar)
	}

	return strings.Join([]string{
		m.renderHeader(),
		body,
		m.status.View(),
	}, "\n")
}

// renderHeader draws the title line and a separator rule.
func (m Model) renderHeader() string {
	title := style.HeaderTitle.Render(m.title) +
		style.Faint.Render(fmt.Sprintf("  %d items", m.list.Len()))
	rule := style.HeaderSeparator.Render(strings.Repeat("─", max(m.width, 0)))
	return title + "\n" + rule
}
