package app

const (
	// listMinWidth is enforced even on very narrow terminals so rows stay
	// readable.
	listMinWidth = 20

	// listMinHeight keeps the viewport usable when the status area grows.
	listMinHeight = 3

	// scrollbarWidth is the column reserved for the scrollbar (plus a gap).
	scrollbarWidth = 2
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // title line + separator
	StatusHeight int
	ListWidth    int // width available for the list pane
	ListHeight   int // height available for the list pane
}

// ComputeLayout calculates dimensions from the terminal size. The list gets
// everything the header, status area, and scrollbar column do not claim.
func ComputeLayout(termW, termH, statusLines int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: 2, // title line + separator
	}

	l.StatusHeight = statusLines
	if l.StatusHeight < 1 {
		l.StatusHeight = 1
	}

	l.ListWidth = termW - scrollbarWidth
	if l.ListWidth < listMinWidth {
		l.ListWidth = listMinWidth
	}

	l.ListHeight = termH - l.HeaderHeight - l.StatusHeight
	if l.ListHeight < listMinHeight {
		l.ListHeight = listMinHeight
	}

	return l
}
