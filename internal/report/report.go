// Package report owns the persisted artifact: rendering a summary document to
// markdown, writing it to the timeframe-keyed file, and parsing it back into
// sections for the UI. The heading / ### date / bullet structure is a stable
// contract; the renderer on the other side recovers sections from it.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/deusflow/newsflow/internal/news"
	"github.com/deusflow/newsflow/internal/summarize"
)

// noResultsBody is what an empty pipeline result renders as. An empty result
// is a valid outcome, not an error.
const noResultsBody = "# No news found\n(No articles returned for this category and time range.)"

// Render produces the markdown body: one ### section per date, one bullet per
// story.
func Render(doc summarize.Document) string {
	if doc.Empty() {
		return noResultsBody
	}

	var lines []string
	for _, section := range doc.Sections {
		lines = append(lines, fmt.Sprintf("### %s", section.Date))
		for _, item := range section.Items {
			lines = append(lines, fmt.Sprintf("- **%s**: %s [Read full story](%s)", item.Title, item.Body, item.URL))
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Writer persists rendered documents under Dir. The path is keyed by
// timeframe only, so a run for one category replaces whatever the previous
// run wrote for that timeframe regardless of its category. That overwrite is
// a documented limitation of the artifact contract, not something this layer
// papers over.
type Writer struct {
	Dir string
}

// Write renders doc and replaces the artifact for tf. A write failure is a
// hard failure of the run; no partial document is guaranteed.
func (w Writer) Write(tf news.Timeframe, doc summarize.Document) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.Dir, tf.FileName())
	content := "# " + tf.Heading() + "\n\n" + Render(doc)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write summary %s: %w", path, err)
	}
	return path, nil
}

// Read loads and parses the artifact for tf, if present.
func (w Writer) Read(tf news.Timeframe) (string, summarize.Document, error) {
	data, err := os.ReadFile(filepath.Join(w.Dir, tf.FileName()))
	if err != nil {
		return "", summarize.Document{}, err
	}
	heading, doc := Parse(string(data))
	return heading, doc, nil
}

var bulletRe = regexp.MustCompile(`^- \*\*(.+?)\*\*: (.*) \[Read full story\]\((.+?)\)$`)

// Parse recovers the heading and section structure from a persisted artifact.
// Lines that do not fit the contract are ignored rather than failing the
// parse, mirroring how the pipeline treats malformed input everywhere else.
func Parse(content string) (string, summarize.Document) {
	var (
		heading string
		doc     summarize.Document
		current *summarize.Section
	)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "### "):
			doc.Sections = append(doc.Sections, summarize.Section{Date: strings.TrimPrefix(line, "### ")})
			current = &doc.Sections[len(doc.Sections)-1]
		case strings.HasPrefix(line, "# "):
			if heading == "" {
				heading = strings.TrimPrefix(line, "# ")
			}
		case strings.HasPrefix(line, "- "):
			if current == nil {
				continue
			}
			m := bulletRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current.Items = append(current.Items, summarize.Summary{
				Date:  current.Date,
				Title: m[1],
				Body:  m[2],
				URL:   m[3],
			})
		}
	}
	return heading, doc
}
