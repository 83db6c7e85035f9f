// Package row provides the demo list items rendered by the virtualized
// list. Each row carries a markdown body of varying length so row heights
// differ and the height estimator has real work to do.
package row

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vscroll/vscroll/style"
	"github.com/vscroll/vscroll/ui/vlist"
)

// ---------------------------------------------------------------------------
// Row
// ---------------------------------------------------------------------------

// Row is a single demo item: an index label, a title, and a markdown body.
type Row struct {
	Index   int
	Title   string
	Body    string
	version int
}

// ID returns a stable identifier for render caching.
func (r *Row) ID() string {
	return fmt.Sprintf("row-%d", r.Index)
}

// ContentVersion changes whenever the row's content changes.
func (r *Row) ContentVersion() int {
	return r.version
}

// SetBody replaces the markdown body and bumps the content version so
// cached renders are invalidated.
func (r *Row) SetBody(body string) {
	r.Body = body
	r.version++
}

// Render produces the row's display string at the given width.
func (r *Row) Render(width int) string {
	label := style.RowIndex.Render(fmt.Sprintf("#%d", r.Index))
	title := style.RowTitle.Render(r.Title)
	head := label + " " + title

	cw := max(width-2, 10)
	body := renderMarkdown(r.Body, cw)

	block := head
	if body != "" {
		block += "\n" + body
	}
	return style.RowBorder.Width(cw).Render(block)
}

// ---------------------------------------------------------------------------
// Markdown rendering
// ---------------------------------------------------------------------------

// renderMarkdown renders markdown text using glamour, falling back to plain text on error.
func renderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// ---------------------------------------------------------------------------
// Generation
// ---------------------------------------------------------------------------

var sampleTitles = []string{
	"Release notes",
	"Deployment checklist",
	"Incident report",
	"Design review",
	"Weekly summary",
	"Migration plan",
	"Benchmark results",
	"API changelog",
}

var sampleSentences = []string{
	"The rollout completed without errors across all regions.",
	"Latency improved after the cache layer was widened.",
	"A follow-up is scheduled to remove the temporary flag.",
	"Throughput held steady under twice the usual load.",
	"The schema change is backward compatible with v3 clients.",
	"Retries now use exponential backoff with jitter.",
}

var sampleBullets = []string{
	"verify backups before cutover",
	"rotate credentials after the migration",
	"pin the client library to a tagged release",
	"watch the error budget for 24 hours",
	"archive the old dashboards",
}

// Generate builds n rows with deterministic, seed-driven variety in body
// length, so repeated runs with the same seed produce identical heights.
func Generate(n int, seed int64) []vlist.Item {
	rng := rand.New(rand.NewSource(seed))
	items := make([]vlist.Item, n)
	for i := range items {
		items[i] = &Row{
			Index: i,
			Title: sampleTitles[rng.Intn(len(sampleTitles))],
			Body:  randomBody(rng),
		}
	}
	return items
}

// randomBody assembles a small markdown document: zero to two sentences,
// sometimes a bullet list. Roughly a quarter of rows have no body at all.
func randomBody(rng *rand.Rand) string {
	if rng.Intn(4) == 0 {
		return ""
	}
	var b strings.Builder
	for i, n := 0, 1+rng.Intn(2); i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sampleSentences[rng.Intn(len(sampleSentences))])
	}
	if rng.Intn(3) == 0 {
		b.WriteString("\n")
		for i, n := 0, 1+rng.Intn(3); i < n; i++ {
			b.WriteString("\n- ")
			b.WriteString(sampleBullets[rng.Intn(len(sampleBullets))])
		}
	}
	return b.String()
}
