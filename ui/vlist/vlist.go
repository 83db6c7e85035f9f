// Package vlist provides a virtualized scrollable list widget for very large
// collections of variable-height rows. It is the host component around the
// estimate package: rows are only rendered (and therefore measured) when the
// estimator places them inside the visible window, and blank placeholder
// lines stand in for everything else so scrollbar geometry stays stable.
//
// Key properties:
//   - Heights are terminal lines and are only known once a row has actually
//     been rendered at the current width; the per-item render cache doubles
//     as the measurement source the estimator samples from.
//   - The estimation state is threaded across scroll/resize events exactly as
//     the estimate package requires: the Model persists it, the estimator
//     ratchets it.
//   - An incomplete estimation is not an error. The Model renders the window
//     the estimator described — populating the cache — and re-runs it, up to
//     a small fixed number of passes per event.
//   - Lists too short to virtualize (estimate's degenerate guard) fall back
//     to plain line-offset scrolling over the naturally laid out content.
package vlist

import (
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/vscroll/vscroll/estimate"
)

// ---------------------------------------------------------------------------
// Public interfaces
// ---------------------------------------------------------------------------

// Item is anything the list can render.
type Item interface {
	// ID returns a unique, stable identifier used for cache keying and
	// targeted cache invalidation.
	ID() string

	// ContentVersion returns a monotonically increasing integer. When this
	// value changes the cached render for this item is discarded.
	ContentVersion() int

	// Render returns the rendered string for the given width. The result
	// must be stable for the same (width, ContentVersion) pair.
	Render(width int) string
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option is a functional option for New.
type Option func(*Model)

// WithWidth sets the initial viewport width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithHeight sets the initial viewport height (number of terminal lines
// visible at once).
func WithHeight(h int) Option {
	return func(m *Model) { m.height = h }
}

// WithMinRowHeight sets the smallest height any row may render at, in lines.
// It bounds the estimator's viewport capacity, so tighter is cheaper: a value
// well below the real minimum makes the bottom-anchor walk sample more rows
// than necessary. Values below 1 are ignored.
func WithMinRowHeight(h int) Option {
	return func(m *Model) {
		if h >= 1 {
			m.minRowHeight = h
		}
	}
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

type cachedRender struct {
	content string
	height  int
	width   int
	version int
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// refinePasses bounds estimator reruns per event. Two passes suffice once the
// tail is cached; three covers a cold cache plus one window shift.
const refinePasses = 3

// wheelScrollLines is the scroll distance of one mouse wheel notch.
const wheelScrollLines = 3

// Model is a virtualized scrollable list.
// The zero value is not usable; construct with New.
type Model struct {
	items  []Item
	width  int
	height int

	// minRowHeight is the estimator's lower bound for row heights, in lines.
	minRowHeight int

	// offset is the scroll position in lines within the virtual document.
	offset int

	// est is the estimation state threaded across calls; zero until the
	// first reflow.
	est estimate.State

	// cache stores rendered output keyed by item ID. A valid entry at the
	// current width is what makes a row "measured".
	cache map[string]cachedRender
}

// New constructs a Model with the supplied options.
func New(opts ...Option) Model {
	m := Model{
		minRowHeight: 1,
		cache:        make(map[string]cachedRender),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetSize updates the viewport dimensions. A width change invalidates the
// render cache and resets the estimation state: heights measured at another
// width must never feed the ratchet.
func (m *Model) SetSize(w, h int) {
	if w != m.width {
		m.cache = make(map[string]cachedRender)
		m.est = estimate.State{}
	}
	m.width = w
	m.height = h
	m.reflow()
}

// SetItems replaces the item slice wholesale. The render cache is preserved —
// items whose ID+version are unchanged stay measured — but a length change
// invalidates the estimated extent, so the next reflow recomputes it.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.reflow()
}

// AppendItem adds a single item to the end of the list.
func (m *Model) AppendItem(item Item) {
	m.items = append(m.items, item)
	m.reflow()
}

// UpdateItem replaces the item with the given id in-place and invalidates its
// cache entry. If the id is not found, the call is a no-op.
func (m *Model) UpdateItem(id string, item Item) {
	for i, existing := range m.items {
		if existing.ID() == id {
			m.items[i] = item
			delete(m.cache, id)
			m.reflow()
			return
		}
	}
}

// InvalidateCache forces all cached renders (and measurements) to be
// discarded. The estimation state is kept: the ratchet survives re-renders.
func (m *Model) InvalidateCache() {
	m.cache = make(map[string]cachedRender)
	m.reflow()
}

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// ScrollDown scrolls toward the end of the list by n lines.
func (m *Model) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	m.offset += n
	m.reflow()
}

// ScrollUp scrolls toward the start of the list by n lines.
func (m *Model) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	m.offset -= n
	if m.offset < 0 {
		m.offset = 0
	}
	m.reflow()
}

// PageDown scrolls down by one full viewport height.
func (m *Model) PageDown() { m.ScrollDown(m.height) }

// PageUp scrolls up by one full viewport height.
func (m *Model) PageUp() { m.ScrollUp(m.height) }

// HalfPageDown scrolls down by half the viewport height.
func (m *Model) HalfPageDown() { m.ScrollDown(m.height / 2) }

// HalfPageUp scrolls up by half the viewport height.
func (m *Model) HalfPageUp() { m.ScrollUp(m.height / 2) }

// ScrollToTop jumps to the very first row.
func (m *Model) ScrollToTop() {
	m.offset = 0
	m.reflow()
}

// ScrollToBottom jumps to the very last row.
func (m *Model) ScrollToBottom() {
	m.offset = m.maxOffset() + m.height // clamped by reflow
	m.reflow()
}

// AtTop reports whether the viewport shows the start of the list.
func (m Model) AtTop() bool { return m.offset == 0 }

// AtBottom reports whether the viewport shows the end of the list.
func (m Model) AtBottom() bool { return m.offset >= m.maxOffset() }

// ScrollPercent returns the scroll position as a 0–100 percentage.
func (m Model) ScrollPercent() int {
	maxOff := m.maxOffset()
	if maxOff <= 0 {
		return 0
	}
	pct := m.offset * 100 / maxOff
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Len returns the number of items in the list.
func (m Model) Len() int { return len(m.items) }

// Offset returns the current scroll offset in lines.
func (m Model) Offset() int { return m.offset }

// TotalHeight returns the estimated height of the whole list in lines: the
// estimator's target height, or the natural content height when the list is
// too short to virtualize.
func (m Model) TotalHeight() int {
	if m.est.TargetHeight > 0 {
		return int(math.Round(m.est.TargetHeight))
	}
	return m.naturalHeight()
}

// Window returns the current estimation state, for diagnostics displays.
func (m Model) Window() estimate.State { return m.est }

// MeasuredCount returns how many items have a cached render, and therefore a
// known height, at the current width.
func (m Model) MeasuredCount() int { return len(m.cache) }

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles mouse wheel events. Callers forward whichever tea.Msg events
// they want the list to respond to; keyboard navigation is the caller's
// responsibility via the scroll methods.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if wheel, ok := msg.(tea.MouseWheelMsg); ok {
		switch wheel.Button {
		case tea.MouseWheelUp:
			m.ScrollUp(wheelScrollLines)
		case tea.MouseWheelDown:
			m.ScrollDown(wheelScrollLines)
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Estimation plumbing
// ---------------------------------------------------------------------------

// measuredHeight is the MeasureFunc handed to the estimator: the height of a
// row's cached render at the current width, or 0 when the row has never been
// rendered there.
func (m *Model) measuredHeight(i int) float64 {
	if i < 0 || i >= len(m.items) {
		return 0
	}
	item := m.items[i]
	if cr, ok := m.cache[item.ID()]; ok {
		if cr.width == m.width && cr.version == item.ContentVersion() {
			return float64(cr.height)
		}
	}
	return 0
}

// reflow re-runs the estimator for the current offset, rendering the window
// it describes between passes so the rows it needs become measurable. Stops
// on the first complete result.
func (m *Model) reflow() {
	if m.width <= 0 || m.height <= 0 || len(m.items) == 0 {
		m.est = estimate.State{}
		m.offset = 0
		return
	}

	in := estimate.Input{
		TotalItems:     len(m.items),
		MinRowHeight:   float64(m.minRowHeight),
		ViewportHeight: float64(m.height),
	}
	for pass := 0; pass < refinePasses; pass++ {
		m.clampOffset()
		in.ScrollOffset = float64(m.offset)
		res := estimate.Estimate(in, m.est, m.measuredHeight)
		m.est = res.State
		m.renderWindow()
		if res.Complete {
			break
		}
	}
	m.clampOffset()
}

// renderWindow renders every row in the estimator's current window,
// populating the cache that backs measuredHeight.
func (m *Model) renderWindow() {
	if m.est.TargetHeight == 0 {
		// Degenerate short list: all rows render anyway.
		for _, it := range m.items {
			m.renderItem(it)
		}
		return
	}
	for i := m.est.FirstMiddleItem; i < m.est.FirstMiddleItem+m.est.MiddleItemCount; i++ {
		m.renderItem(m.items[i])
	}
	for i := len(m.items) - m.est.LastItemCount; i < len(m.items); i++ {
		if i >= 0 {
			m.renderItem(m.items[i])
		}
	}
}

// maxOffset returns the largest valid scroll offset in lines.
func (m Model) maxOffset() int {
	maxOff := m.TotalHeight() - m.height
	if maxOff < 0 {
		return 0
	}
	return maxOff
}

func (m *Model) clampOffset() {
	if maxOff := m.maxOffset(); m.offset > maxOff {
		m.offset = maxOff
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the visible slice of the virtual document: placeholder lines
// where the estimator placed placeholders, real rows where it placed windows.
// The result never exceeds the viewport height.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 || len(m.items) == 0 {
		return ""
	}
	if m.est.TargetHeight == 0 {
		return m.viewNatural()
	}
	return m.viewVirtual()
}

// viewNatural lays out every row and slices the viewport window out of the
// result. Only reachable for lists the degenerate guard deemed too short to
// virtualize, so rendering everything is cheap.
func (m Model) viewNatural() string {
	var lines []string
	for _, it := range m.items {
		lines = append(lines, splitLines(m.renderItem(it))...)
	}

	start := m.offset
	if start > len(lines) {
		start = len(lines)
	}
	end := start + m.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// viewVirtual walks the virtual document — top placeholder, middle window,
// middle placeholder, trailing window — emitting only the lines that fall
// inside [offset, offset+height).
func (m Model) viewVirtual() string {
	lines := make([]string, 0, m.height)
	skip := m.offset
	remaining := m.height

	takeBlank := func(n int) {
		if remaining <= 0 || n <= 0 {
			return
		}
		if skip >= n {
			skip -= n
			return
		}
		n -= skip
		skip = 0
		if n > remaining {
			n = remaining
		}
		for range n {
			lines = append(lines, "")
		}
		remaining -= n
	}
	take := func(segLines []string) {
		if remaining <= 0 {
			return
		}
		if skip >= len(segLines) {
			skip -= len(segLines)
			return
		}
		seg := segLines[skip:]
		skip = 0
		if len(seg) > remaining {
			seg = seg[:remaining]
		}
		lines = append(lines, seg...)
		remaining -= len(seg)
	}

	takeBlank(int(math.Round(m.est.TopPlaceholderHeight)))
	for i := m.est.FirstMiddleItem; i < m.est.FirstMiddleItem+m.est.MiddleItemCount; i++ {
		if remaining <= 0 {
			break
		}
		take(splitLines(m.renderItem(m.items[i])))
	}
	takeBlank(int(math.Round(m.est.MiddlePlaceholderHeight)))
	for i := len(m.items) - m.est.LastItemCount; i < len(m.items); i++ {
		if remaining <= 0 {
			break
		}
		if i >= 0 {
			take(splitLines(m.renderItem(m.items[i])))
		}
	}

	// Pad when the estimate undershot the real content near the bottom.
	for remaining > 0 {
		lines = append(lines, "")
		remaining--
	}
	return strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Render cache
// ---------------------------------------------------------------------------

// renderItem returns the cached or freshly rendered content for an item.
// The cache map is shared across Model copies, so value receivers on the
// View path still populate it.
func (m Model) renderItem(item Item) string {
	if m.width <= 0 {
		return ""
	}
	id := item.ID()
	ver := item.ContentVersion()
	if cr, ok := m.cache[id]; ok {
		if cr.width == m.width && cr.version == ver {
			return cr.content
		}
	}
	rendered := item.Render(m.width)
	h := countLines(rendered)
	if h < m.minRowHeight {
		// The measurement contract promises heights >= the minimum. Pad the
		// content to match so the virtual document and the estimator's
		// arithmetic agree line for line.
		rendered += strings.Repeat("\n", m.minRowHeight-h)
		h = m.minRowHeight
	}
	m.cache[id] = cachedRender{
		content: rendered,
		height:  h,
		width:   m.width,
		version: ver,
	}
	return rendered
}

// naturalHeight sums the rendered heights of all rows. Only used for short
// lists in the degenerate regime.
func (m Model) naturalHeight() int {
	total := 0
	for _, it := range m.items {
		total += countLines(m.renderItem(it))
	}
	return total
}

// ---------------------------------------------------------------------------
// String helpers
// ---------------------------------------------------------------------------

// splitLines splits a rendered string into individual lines.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// countLines counts the number of rendered lines in a string (number of \n + 1).
func countLines(s string) int {
	if s == "" {
		return 1
	}
	return strings.Count(s, "\n") + 1
}
