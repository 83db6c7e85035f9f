package estimate

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// uniform returns a MeasureFunc reporting the same height for every row.
func uniform(h float64) MeasureFunc {
	return func(int) float64 { return h }
}

// unmeasured reports every row as not yet rendered.
func unmeasured(int) float64 { return 0 }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// ---------------------------------------------------------------------------
// Degenerate guard
// ---------------------------------------------------------------------------

func TestEstimate_DegenerateSmallList(t *testing.T) {
	// viewportItemCount = ceil(500/60) = 9; 2*9 >= 10, so no virtualization.
	in := Input{TotalItems: 10, MinRowHeight: 60, ViewportHeight: 500}
	res := Estimate(in, State{}, unmeasured)

	if !res.Complete {
		t.Error("degenerate result must be complete")
	}
	if res.LastItemCount != 10 {
		t.Errorf("want LastItemCount=10, got %d", res.LastItemCount)
	}
	if res.TargetHeight != 0 {
		t.Errorf("want TargetHeight=0, got %v", res.TargetHeight)
	}
	if res.MiddleItemCount != 0 || res.TopPlaceholderHeight != 0 || res.MiddlePlaceholderHeight != 0 {
		t.Errorf("degenerate state must carry no placeholders: %+v", res.State)
	}
}

func TestEstimate_DegenerateZeroViewport(t *testing.T) {
	in := Input{TotalItems: 1000, MinRowHeight: 1, ViewportHeight: 0}
	res := Estimate(in, State{}, uniform(1))
	if !res.Complete || res.LastItemCount != 1000 || res.TargetHeight != 0 {
		t.Errorf("zero viewport must fall back to render-everything, got %+v", res)
	}
}

func TestEstimate_DegenerateEmptyList(t *testing.T) {
	in := Input{TotalItems: 0, MinRowHeight: 1, ViewportHeight: 10}
	res := Estimate(in, State{}, unmeasured)
	if !res.Complete || res.LastItemCount != 0 || res.TargetHeight != 0 {
		t.Errorf("empty list must render nothing, got %+v", res)
	}
}

// ---------------------------------------------------------------------------
// Uniform-row scenario (fully measured list)
// ---------------------------------------------------------------------------

func TestEstimate_UniformRows_Converged(t *testing.T) {
	in := Input{
		TotalItems:     10000,
		MinRowHeight:   50,
		ViewportHeight: 500,
		ScrollOffset:   250025,
	}
	res := Estimate(in, State{}, uniform(50))

	if !res.Complete {
		t.Fatal("fully measured list must produce a complete result")
	}
	if !almostEqual(res.AverageRowHeight, 50) {
		t.Errorf("want AverageRowHeight=50, got %v", res.AverageRowHeight)
	}
	// Tail walk consumes 10 rows exactly, no excess: 10000 - 10 + 0.
	if !almostEqual(res.ScrollHeightInItems, 9990) {
		t.Errorf("want ScrollHeightInItems=9990, got %v", res.ScrollHeightInItems)
	}
	// 50*9990 + 500.
	if !almostEqual(res.TargetHeight, 500000) {
		t.Errorf("want TargetHeight=500000, got %v", res.TargetHeight)
	}
	// fraction = 250025/499500 = 0.5005..; firstFloat = fraction*9990 = 5000.5.
	if res.FirstMiddleItem != 5000 {
		t.Errorf("want FirstMiddleItem=5000, got %d", res.FirstMiddleItem)
	}
	if res.MiddleItemCount != 10 || res.LastItemCount != 10 {
		t.Errorf("want 10-row middle and last windows, got middle=%d last=%d",
			res.MiddleItemCount, res.LastItemCount)
	}
	// scrollOffset - 50*0.5 = 250000.
	if !almostEqual(res.TopPlaceholderHeight, 250000) {
		t.Errorf("want TopPlaceholderHeight=250000, got %v", res.TopPlaceholderHeight)
	}
	// target - middleSum - lastItemsTotal - top = 500000-500-500-250000.
	if !almostEqual(res.MiddlePlaceholderHeight, 249000) {
		t.Errorf("want MiddlePlaceholderHeight=249000, got %v", res.MiddlePlaceholderHeight)
	}
}

func TestEstimate_UniformRows_WindowsFillVirtualHeight(t *testing.T) {
	// The virtual document (top + middle rows + middle placeholder + last
	// rows) must sum to exactly TargetHeight in the two-placeholder regime.
	in := Input{
		TotalItems:     10000,
		MinRowHeight:   50,
		ViewportHeight: 500,
		ScrollOffset:   123456,
	}
	res := Estimate(in, State{}, uniform(50))
	if !res.Complete {
		t.Fatal("want complete result")
	}

	total := res.TopPlaceholderHeight +
		float64(res.MiddleItemCount)*50 +
		res.MiddlePlaceholderHeight +
		float64(res.LastItemCount)*50
	if !almostEqual(total, res.TargetHeight) {
		t.Errorf("virtual document height %v != TargetHeight %v", total, res.TargetHeight)
	}
}

// ---------------------------------------------------------------------------
// Idempotence
// ---------------------------------------------------------------------------

func TestEstimate_IdempotentOnceConverged(t *testing.T) {
	in := Input{
		TotalItems:     10000,
		MinRowHeight:   50,
		ViewportHeight: 500,
		ScrollOffset:   250025,
	}
	first := Estimate(in, State{}, uniform(50))
	second := Estimate(in, first.State, uniform(50))

	if !second.Complete {
		t.Fatal("second call must also be complete")
	}
	if first.State != second.State {
		t.Errorf("converged state must be a fixed point:\nfirst  %+v\nsecond %+v",
			first.State, second.State)
	}
}

// ---------------------------------------------------------------------------
// Monotonic average (ratchet)
// ---------------------------------------------------------------------------

func TestEstimate_AverageNeverRegresses(t *testing.T) {
	in := Input{TotalItems: 1000, MinRowHeight: 10, ViewportHeight: 100}

	// Bootstrap: nothing measured, the average falls back to the minimum.
	res := Estimate(in, State{}, unmeasured)
	if !almostEqual(res.AverageRowHeight, 10) {
		t.Fatalf("bootstrap average must equal MinRowHeight, got %v", res.AverageRowHeight)
	}

	// Rows turn out to be 30 tall: the average ratchets up.
	res2 := Estimate(in, res.State, uniform(30))
	if !almostEqual(res2.AverageRowHeight, 30) {
		t.Fatalf("want average=30 after measurement, got %v", res2.AverageRowHeight)
	}

	// Rows now report 20 (heights shrank): the ratchet holds at 30.
	res3 := Estimate(in, res2.State, uniform(20))
	if res3.AverageRowHeight < res2.AverageRowHeight {
		t.Errorf("average regressed from %v to %v", res2.AverageRowHeight, res3.AverageRowHeight)
	}
}

func TestEstimate_AverageMonotonicAcrossSequence(t *testing.T) {
	in := Input{TotalItems: 5000, MinRowHeight: 5, ViewportHeight: 50}

	heights := []float64{0, 5, 12, 9, 20, 14, 20}
	prev := State{}
	last := 0.0
	for i, h := range heights {
		var m MeasureFunc
		if h == 0 {
			m = unmeasured
		} else {
			m = uniform(h)
		}
		res := Estimate(in, prev, m)
		if res.AverageRowHeight < last {
			t.Fatalf("call %d: average regressed from %v to %v", i, last, res.AverageRowHeight)
		}
		last = res.AverageRowHeight
		prev = res.State
	}
}

// ---------------------------------------------------------------------------
// Non-negativity and clamps
// ---------------------------------------------------------------------------

func TestEstimate_NonNegativePlaceholders(t *testing.T) {
	in := Input{TotalItems: 2000, MinRowHeight: 8, ViewportHeight: 96}
	prev := State{}
	for _, offset := range []float64{0, 1, 95, 1000, 7777, 1e7} {
		in.ScrollOffset = offset
		res := Estimate(in, prev, uniform(8))
		if res.TopPlaceholderHeight < 0 {
			t.Errorf("offset %v: negative TopPlaceholderHeight %v", offset, res.TopPlaceholderHeight)
		}
		if res.MiddlePlaceholderHeight < 0 {
			t.Errorf("offset %v: negative MiddlePlaceholderHeight %v", offset, res.MiddlePlaceholderHeight)
		}
		if res.TargetHeight < in.ViewportHeight {
			t.Errorf("offset %v: TargetHeight %v below viewport %v", offset, res.TargetHeight, in.ViewportHeight)
		}
		prev = res.State
	}
}

func TestEstimate_ScrollPastEstimateClampsToEnd(t *testing.T) {
	// A scroll offset far beyond the estimated extent lands in the
	// tail-adjacent regime with the window pinned at the end.
	in := Input{TotalItems: 1000, MinRowHeight: 10, ViewportHeight: 100, ScrollOffset: 1e9}
	res := Estimate(in, State{}, uniform(10))
	if !res.Complete {
		t.Fatal("want complete result")
	}
	if res.MiddleItemCount != 0 {
		t.Errorf("want tail regime (no middle window), got MiddleItemCount=%d", res.MiddleItemCount)
	}
	if res.LastItemCount <= 0 || res.LastItemCount > 1000 {
		t.Errorf("LastItemCount out of range: %d", res.LastItemCount)
	}
}

// ---------------------------------------------------------------------------
// Window coverage
// ---------------------------------------------------------------------------

func TestEstimate_WindowsNeverOverlap(t *testing.T) {
	in := Input{TotalItems: 3000, MinRowHeight: 4, ViewportHeight: 60}
	prev := State{}
	for offset := 0.0; offset < 12000; offset += 571 {
		in.ScrollOffset = offset
		res := Estimate(in, prev, uniform(4))
		prev = res.State

		if res.MiddleItemCount > 0 {
			middleEnd := res.FirstMiddleItem + res.MiddleItemCount
			lastStart := in.TotalItems - res.LastItemCount
			if middleEnd > lastStart {
				t.Fatalf("offset %v: middle window [%d,%d) overlaps last window starting at %d",
					offset, res.FirstMiddleItem, middleEnd, lastStart)
			}
		}
		if res.FirstMiddleItem+res.MiddleItemCount > in.TotalItems {
			t.Fatalf("offset %v: middle window exceeds list bounds: %+v", offset, res.State)
		}
		if res.LastItemCount > in.TotalItems {
			t.Fatalf("offset %v: LastItemCount exceeds list: %d", offset, res.LastItemCount)
		}
	}
}

// ---------------------------------------------------------------------------
// Tail-adjacent regime
// ---------------------------------------------------------------------------

func TestEstimate_TailRegimeAtBottom(t *testing.T) {
	// 40 rows of height 20 with a 100px viewport and MinRowHeight 10:
	// viewportItemCount=10, tail walk covers 5 rows, extent = 35 items,
	// target = 20*35+100 = 800, max offset = 700.
	in := Input{TotalItems: 40, MinRowHeight: 10, ViewportHeight: 100, ScrollOffset: 700}
	res := Estimate(in, State{}, uniform(20))

	if !res.Complete {
		t.Fatal("want complete result")
	}
	if !almostEqual(res.ScrollHeightInItems, 35) {
		t.Errorf("want ScrollHeightInItems=35, got %v", res.ScrollHeightInItems)
	}
	if !almostEqual(res.TargetHeight, 800) {
		t.Errorf("want TargetHeight=800, got %v", res.TargetHeight)
	}
	if res.MiddleItemCount != 0 || res.MiddlePlaceholderHeight != 0 {
		t.Errorf("tail regime must not use a middle window: %+v", res.State)
	}
	if res.LastItemCount != 5 {
		t.Errorf("want LastItemCount=5 (rows 35..39), got %d", res.LastItemCount)
	}
}

func TestEstimate_TailRegimeRefinesAverage(t *testing.T) {
	// Rows before the sampled tail are taller than the tail itself; entering
	// the tail regime must ratchet the average up using their measurements.
	measure := func(i int) float64 {
		if i < 30 {
			return 40
		}
		return 10
	}
	in := Input{TotalItems: 40, MinRowHeight: 10, ViewportHeight: 100}

	// Pin the window at the very bottom first: the refinement span is empty
	// there, so the average stays at the sampled tail's 10.
	in.ScrollOffset = 1e9
	res := Estimate(in, State{}, measure)
	if !almostEqual(res.AverageRowHeight, 10) {
		t.Fatalf("bottom-pinned average should be 10, got %v", res.AverageRowHeight)
	}

	// Scroll up into the taller rows, still within the tail-adjacent band.
	// fraction = 250/300, firstVisible ≈ 25, span [25,30) measures 40s.
	in.ScrollOffset = 250
	res = Estimate(in, res.State, measure)
	if !res.Complete {
		t.Fatal("want complete result")
	}
	if res.MiddleItemCount != 0 {
		t.Fatalf("want tail regime, got middle window of %d", res.MiddleItemCount)
	}
	if res.AverageRowHeight <= 10 {
		t.Errorf("tail refinement did not raise the average: %v", res.AverageRowHeight)
	}
}

// ---------------------------------------------------------------------------
// Deferred refinement (missing measurements)
// ---------------------------------------------------------------------------

func TestEstimate_MissingMiddleMeasurementDefers(t *testing.T) {
	in := Input{
		TotalItems:     10000,
		MinRowHeight:   50,
		ViewportHeight: 500,
		ScrollOffset:   250025,
	}
	converged := Estimate(in, State{}, uniform(50))

	// One row in the new middle window has never been rendered.
	hole := func(i int) float64 {
		if i == 5005 {
			return 0
		}
		return 50
	}
	res := Estimate(in, converged.State, hole)

	if res.Complete {
		t.Fatal("a missing middle measurement must defer refinement")
	}
	// The window fields are populated so the host can render (and thereby
	// measure) the missing row.
	if res.FirstMiddleItem != 5000 || res.MiddleItemCount != 10 || res.LastItemCount != 10 {
		t.Errorf("deferred result must still describe the window: %+v", res.State)
	}
	// Fields past the failed lookup are carried from the previous state,
	// never fabricated.
	if res.MiddlePlaceholderHeight != converged.MiddlePlaceholderHeight {
		t.Errorf("MiddlePlaceholderHeight changed on deferred call: %v -> %v",
			converged.MiddlePlaceholderHeight, res.MiddlePlaceholderHeight)
	}
	if res.AverageRowHeight != converged.AverageRowHeight {
		t.Errorf("average changed on deferred call: %v -> %v",
			converged.AverageRowHeight, res.AverageRowHeight)
	}
}

func TestEstimate_BootstrapConvergesViaHostLoop(t *testing.T) {
	// Emulate the host render cycle: each pass renders the rows the
	// estimator asked for, making them measurable on the next pass.
	const total = 5000
	rowHeight := func(i int) float64 { return 10 + float64(i%4)*5 }

	rendered := make(map[int]bool)
	measure := func(i int) float64 {
		if rendered[i] {
			return rowHeight(i)
		}
		return 0
	}
	renderWindow := func(st State) {
		for i := st.FirstMiddleItem; i < st.FirstMiddleItem+st.MiddleItemCount; i++ {
			rendered[i] = true
		}
		for i := total - st.LastItemCount; i < total; i++ {
			rendered[i] = true
		}
	}

	in := Input{TotalItems: total, MinRowHeight: 10, ViewportHeight: 120, ScrollOffset: 4321}
	prev := State{}
	complete := false
	for pass := 0; pass < 4; pass++ {
		res := Estimate(in, prev, measure)
		prev = res.State
		renderWindow(res.State)
		if res.Complete {
			complete = true
			break
		}
	}
	if !complete {
		t.Fatal("estimation did not converge within 4 host passes")
	}
	if prev.AverageRowHeight < 10 {
		t.Errorf("converged average below minimum: %v", prev.AverageRowHeight)
	}
	if prev.TargetHeight < in.ViewportHeight {
		t.Errorf("TargetHeight %v below viewport", prev.TargetHeight)
	}
}
