package search

import (
	"fmt"
	"io"
	"strings"
)

// RenderText implements output.Renderable for text output.
func (r *Report) RenderText(w io.Writer, colored bool) error {
	fmt.Fprintf(w, "Keyword Search (%d matches)\n", len(r.Matches))
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Keywords: %s\n", strings.Join(r.Keywords, ", "))
	fmt.Fprintf(w, "Files:    %d scanned, %d skipped\n", r.FilesScanned, r.FilesSkipped)
	fmt.Fprintln(w)

	if len(r.Matches) == 0 {
		fmt.Fprintln(w, "No matches found")
		return nil
	}

	for _, m := range r.Matches {
		fmt.Fprintf(w, "%s:%d  [%s]  %s\n", m.Path, m.Line, m.Keyword, m.Snippet)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (r *Report) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Keyword Search (%d matches)\n\n", len(r.Matches))
	fmt.Fprintf(w, "**Keywords:** %s\n\n", strings.Join(r.Keywords, ", "))

	if len(r.Matches) == 0 {
		fmt.Fprintln(w, "No matches found")
		return nil
	}

	fmt.Fprintln(w, "| File | Line | Keyword | Snippet |")
	fmt.Fprintln(w, "|------|------|---------|---------|")
	for _, m := range r.Matches {
		snippet := strings.ReplaceAll(m.Snippet, "|", "\\|")
		fmt.Fprintf(w, "| %s | %d | %s | %s |\n", m.Path, m.Line, m.Keyword, snippet)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (r *Report) RenderData() any {
	return r
}
