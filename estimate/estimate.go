// Package estimate implements the scroll window estimator at the heart of the
// virtualized list: given the current scroll position, the heights of rows
// that have already been rendered, and the state returned by the previous
// call, it decides which slice of a very large list should be rendered and
// how tall the surrounding placeholders must be so the scrollbar geometry
// stays stable.
//
// Architecture — three algorithms run in sequence inside a single call:
//
//	bottom-anchor sampler — walks backward from the last item to establish a
//	                        reference average row height and the fractional
//	                        scrollable extent in item units
//	window locator        — converts the pixel scroll offset into a first
//	                        visible item index and a sub-item offset
//	placeholder sizer     — sums the real heights of the rows about to be
//	                        rendered and derives exact placeholder heights,
//	                        or reports an incomplete result when a required
//	                        row has not been measured yet
//
// The estimator is a pure function. It owns no state: callers persist the
// returned State and thread it back in on the next call. Convergence happens
// across calls — an incomplete result means "render the window described so
// far, let the new rows measure themselves, and call again".
package estimate

import "math"

// ---------------------------------------------------------------------------
// Public types
// ---------------------------------------------------------------------------

// MeasureFunc reports the current rendered height of the item at index, or 0
// when the item has not been rendered (and therefore measured) yet. Non-zero
// values must be at least the MinRowHeight supplied in the Input.
type MeasureFunc func(index int) float64

// Input carries the per-call parameters. It is never mutated.
type Input struct {
	// TotalItems is the length of the backing list.
	TotalItems int
	// MinRowHeight is the smallest height any row may have. It is the
	// divisor for viewport capacity and the stand-in height for unmeasured
	// rows during the bottom-anchor walk, so it must be positive.
	MinRowHeight float64
	// ViewportHeight is the visible height of the scroll container.
	ViewportHeight float64
	// ScrollOffset is the current scroll position, >= 0.
	ScrollOffset float64
}

// State is the estimation record threaded across calls. The caller stores
// the State returned by one call and passes it back verbatim as the previous
// state of the next call; a zero State is the correct starting point.
type State struct {
	// AverageRowHeight is the running estimate of a typical row height. It
	// only ever ratchets upward for a given list: accepting a smaller value
	// would shrink placeholders that earlier calls sized with the larger
	// average and make the scrollbar jump.
	AverageRowHeight float64
	// ScrollHeightInItems is the estimated scrollable extent expressed in
	// item units. Fractional: the tail correction accounts for the part of
	// the last sampled row that pokes out of the viewport.
	ScrollHeightInItems float64
	// LastItemsTotalHeight is the summed height of the sampled tail window.
	LastItemsTotalHeight float64

	// TargetHeight is the total height the scroll container should report.
	// 0 means the list is too short to virtualize: render everything and
	// let natural layout determine the height.
	TargetHeight float64
	// TopPlaceholderHeight is the height of the spacer standing in for all
	// rows before FirstMiddleItem.
	TopPlaceholderHeight float64
	// MiddlePlaceholderHeight is the height of the spacer between the
	// middle window and the trailing window. 0 in the tail-adjacent case.
	MiddlePlaceholderHeight float64
	// FirstMiddleItem and MiddleItemCount describe the middle window: the
	// rows rendered at the current scroll position.
	FirstMiddleItem int
	MiddleItemCount int
	// LastItemCount is the number of trailing rows rendered at the end of
	// the list.
	LastItemCount int
}

// Result pairs the new state with a completeness flag.
//
// Complete=false is not an error: a row the sizer needed was unmeasured, so
// refinement is deferred. The host should render the window described by
// State — which includes the unmeasured rows — and call Estimate again once
// they have heights.
type Result struct {
	State
	Complete bool
}

// ---------------------------------------------------------------------------
// Per-call working record
// ---------------------------------------------------------------------------

// working holds intermediates that never cross the call boundary.
type working struct {
	viewportItems  int     // max rows that can possibly be visible at once
	lastVisible    int     // rows consumed by the backward tail walk
	firstVisible   int     // index of the first visible row
	offsetFraction float64 // sub-row scroll position within firstVisible
}

// ---------------------------------------------------------------------------
// Estimate — the pipeline
// ---------------------------------------------------------------------------

// Estimate runs the full estimation pipeline and returns the new state. prev
// must be the State of the previous call for the same list, or a zero State
// on first use.
func Estimate(in Input, prev State, measure MeasureFunc) Result {
	st := prev

	w := working{}
	if in.MinRowHeight > 0 {
		w.viewportItems = int(math.Ceil(in.ViewportHeight / in.MinRowHeight))
	}

	// Degenerate guard: lists shorter than two viewports gain nothing from
	// virtualization. Runs before any sampling so small lists never pay for
	// the backward walk. Also the catch-all for zero-height viewports and
	// invalid minimum heights.
	if w.viewportItems <= 0 || 2*w.viewportItems >= in.TotalItems {
		st.TargetHeight = 0
		st.TopPlaceholderHeight = 0
		st.MiddlePlaceholderHeight = 0
		st.FirstMiddleItem = 0
		st.MiddleItemCount = 0
		st.LastItemCount = max(in.TotalItems, 0)
		return Result{State: st, Complete: true}
	}

	sampleBottom(in, &st, &w, measure)
	locateWindow(in, &st, &w, measure)

	if w.firstVisible+w.viewportItems >= in.TotalItems-w.viewportItems {
		return sizeTail(in, st, w, measure)
	}
	return sizeMiddle(in, st, w, measure)
}

// ---------------------------------------------------------------------------
// Bottom-anchor sampler
// ---------------------------------------------------------------------------

// sampleBottom establishes the reference average by measuring real rows near
// the end of the list. The end is an arbitrary but consistent anchor: it is
// rendered as part of the trailing window on every call, so its rows are the
// first to have real measurements.
func sampleBottom(in Input, st *State, w *working, measure MeasureFunc) {
	acc := 0.0
	lastSize := in.MinRowHeight
	i := in.TotalItems - 1

	// Walk backward until a viewport's worth of height is covered.
	// Unmeasured or undersized rows count as exactly MinRowHeight, which
	// also keeps the divisor below non-zero.
	for acc < in.ViewportHeight && i >= 0 {
		h := measure(i)
		if h < in.MinRowHeight {
			h = in.MinRowHeight
		}
		acc += h
		lastSize = h
		w.lastVisible++
		i--
	}

	// Fractional tail correction: only (lastSize-excess)/lastSize of the
	// final sampled row is inside the viewport, so the scrollable extent
	// reflects the measured tail precisely instead of rounding to whole
	// rows.
	excess := acc - in.ViewportHeight
	st.ScrollHeightInItems = float64(in.TotalItems-w.lastVisible) + excess/lastSize

	// Extend the sample to a full viewport capacity of rows; the average
	// over that window is the conversion ratio for the locator.
	for w.lastVisible < w.viewportItems && i >= 0 {
		h := measure(i)
		if h < in.MinRowHeight {
			h = in.MinRowHeight
		}
		acc += h
		w.lastVisible++
		i--
	}
	st.LastItemsTotalHeight = acc

	// Ratchet: accept the new average only if it is larger. Past calls
	// sized placeholders with the old average; letting it regress would
	// shrink them and make the view jump.
	if avg := acc / float64(w.lastVisible); avg > st.AverageRowHeight {
		st.AverageRowHeight = avg
	}
}

// ---------------------------------------------------------------------------
// Window locator
// ---------------------------------------------------------------------------

// locateWindow converts the pixel scroll offset into a row index plus a
// sub-row offset, and sizes the top placeholder.
func locateWindow(in Input, st *State, w *working, measure MeasureFunc) {
	st.TargetHeight = st.AverageRowHeight*st.ScrollHeightInItems + in.ViewportHeight

	fraction := 0.0
	if scrollRange := st.TargetHeight - in.ViewportHeight; scrollRange > 0 {
		fraction = in.ScrollOffset / scrollRange
	}
	if fraction > 1 {
		// The real content is taller than the estimate. Clamp; the average
		// self-corrects on a later call once more rows are measured.
		fraction = 1
	}

	firstFloat := fraction * st.ScrollHeightInItems
	w.firstVisible = int(firstFloat)
	w.offsetFraction = firstFloat - float64(w.firstVisible)

	h := measure(w.firstVisible)
	if h <= 0 {
		h = st.AverageRowHeight
	}
	top := in.ScrollOffset - h*w.offsetFraction
	if top < 0 {
		top = 0
	}
	st.TopPlaceholderHeight = top
}

// ---------------------------------------------------------------------------
// Placeholder sizer — tail-adjacent regime
// ---------------------------------------------------------------------------

// sizeTail handles windows close enough to the end of the list that a single
// trailing block suffices: everything from the first visible row to the last
// row is rendered, with no middle placeholder.
func sizeTail(in Input, st State, w working, measure MeasureFunc) Result {
	st.FirstMiddleItem = 0
	st.MiddleItemCount = 0
	st.MiddlePlaceholderHeight = 0
	st.LastItemCount = in.TotalItems - w.firstVisible

	// Refine the average with the rows ahead of the sampled tail window.
	// Every row in this span is part of the trailing block, so a missing
	// measurement just postpones the refinement to the next call.
	sum := 0.0
	count := 0
	for i := w.firstVisible; i < in.TotalItems-w.lastVisible; i++ {
		h := measure(i)
		if h <= 0 {
			return Result{State: st}
		}
		sum += h
		count++
	}
	if count > 0 {
		avg := (sum + st.LastItemsTotalHeight) / float64(count+w.lastVisible)
		if avg > st.AverageRowHeight {
			st.AverageRowHeight = avg
		}
	}
	return Result{State: st, Complete: true}
}

// ---------------------------------------------------------------------------
// Placeholder sizer — two-placeholder regime
// ---------------------------------------------------------------------------

// sizeMiddle handles the general case: a middle window at the scroll
// position, a trailing window keeping the bottom anchor measured, and two
// placeholders filling the gaps.
func sizeMiddle(in Input, st State, w working, measure MeasureFunc) Result {
	st.FirstMiddleItem = w.firstVisible
	st.MiddleItemCount = w.viewportItems
	st.LastItemCount = w.viewportItems

	sum := 0.0
	for i := w.firstVisible; i < w.firstVisible+w.viewportItems; i++ {
		h := measure(i)
		if h <= 0 {
			return Result{State: st}
		}
		sum += h
	}

	middle := st.TargetHeight - sum - st.LastItemsTotalHeight - st.TopPlaceholderHeight
	if middle < 0 {
		middle = 0
	}
	st.MiddlePlaceholderHeight = middle

	// Corrected average over every row rendered this call, ratchet-up only.
	avg := (sum + st.LastItemsTotalHeight) / float64(st.MiddleItemCount+w.lastVisible)
	if avg > st.AverageRowHeight {
		st.AverageRowHeight = avg
	}
	return Result{State: st, Complete: true}
}
