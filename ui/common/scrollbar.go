// Package common holds small shared UI components.
package common

import (
	"math"
	"strings"

	"github.com/vscroll/vscroll/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// ScrollbarModel renders a vertical scrollbar for a virtualized list. The
// content height is a float because it comes from the height estimator and
// refines over time; the offset is in the same unit (terminal lines).
type ScrollbarModel struct {
	viewportHeight int
	contentHeight  float64
	offset         int
}

// NewScrollbar creates a ScrollbarModel with the given dimensions.
func NewScrollbar(viewportHeight int, contentHeight float64, offset int) ScrollbarModel {
	return ScrollbarModel{
		viewportHeight: viewportHeight,
		contentHeight:  contentHeight,
		offset:         offset,
	}
}

// SetDimensions updates the scrollbar dimensions.
func (s *ScrollbarModel) SetDimensions(viewportHeight int, contentHeight float64, offset int) {
	s.viewportHeight = viewportHeight
	s.contentHeight = contentHeight
	s.offset = offset
}

// View renders a vertical scrollbar as a single column of characters.
//
// The track occupies viewportHeight rows. The thumb is positioned and sized
// proportionally to the visible region within the estimated content height.
// When the content fits within the viewport the returned string is empty.
func (s ScrollbarModel) View() string {
	vh := s.viewportHeight
	ch := int(math.Round(s.contentHeight))

	if vh <= 0 || ch <= vh {
		return ""
	}

	// Thumb height — at least 1 row.
	thumbH := vh * vh / ch
	if thumbH < 1 {
		thumbH = 1
	}
	if thumbH > vh {
		thumbH = vh
	}

	// Thumb top position within the track. The offset can briefly exceed
	// the scrollable range while the estimate is still refining, so clamp.
	scrollable := ch - vh
	offset := min(max(s.offset, 0), scrollable)
	thumbTop := 0
	if scrollable > 0 {
		thumbTop = (offset * (vh - thumbH)) / scrollable
	}
	if thumbTop+thumbH > vh {
		thumbTop = vh - thumbH
	}
	if thumbTop < 0 {
		thumbTop = 0
	}

	rows := make([]string, vh)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// Scrollbar is a convenience function that builds a one-shot scrollbar string
// without creating a persistent model.
func Scrollbar(viewportHeight int, contentHeight float64, offset int) string {
	m := NewScrollbar(viewportHeight, contentHeight, offset)
	return m.View()
}
