// Package render formats materialized patch commits for terminal display.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/patchkit/patchkit/pkg/patch"
)

// Status letters mirror the short form used by version control summaries.
const (
	StatusAdded    = "A"
	StatusModified = "M"
	StatusDeleted  = "D"
	StatusRenamed  = "R"
)

// Renderer colorizes change summaries and diff previews. Styling degrades to
// plain text when the terminal profile does not support color.
type Renderer struct {
	added   lipgloss.Style
	removed lipgloss.Style
	renamed lipgloss.Style
	dim     lipgloss.Style
}

// New creates a renderer tuned to the current terminal profile.
func New() *Renderer {
	if termenv.EnvNoColor() {
		plain := lipgloss.NewStyle()
		return &Renderer{added: plain, removed: plain, renamed: plain, dim: plain}
	}
	return &Renderer{
		added:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		removed: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		renamed: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

// Status returns the one-letter status for a change.
func Status(change patch.FileChange) string {
	switch change.Type {
	case patch.ActionAdd:
		return StatusAdded
	case patch.ActionDelete:
		return StatusDeleted
	case patch.ActionUpdate:
		if change.MovePath != "" {
			return StatusRenamed
		}
		return StatusModified
	}
	return "?"
}

// Summary renders one line per change, ordered by path so output is stable
// across runs.
func (r *Renderer) Summary(commit *patch.Commit) string {
	paths := make([]string, 0, len(commit.Changes))
	for path := range commit.Changes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var lines []string
	for _, path := range paths {
		change := commit.Changes[path]
		status := Status(change)
		var style lipgloss.Style
		switch status {
		case StatusAdded:
			style = r.added
		case StatusDeleted:
			style = r.removed
		case StatusRenamed:
			style = r.renamed
		default:
			style = r.dim
		}
		line := fmt.Sprintf("%s %s", style.Render(status), path)
		if change.MovePath != "" {
			line += " -> " + change.MovePath
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// DiffPreview renders a line-oriented old/new comparison for one change.
// The diff is computed for display only; the engine never consults it when
// locating hunks.
func (r *Renderer) DiffPreview(change patch.FileChange) string {
	dmp := diffmatchpatch.New()
	oldChars, newChars, lineIndex := dmp.DiffLinesToChars(change.OldContent, change.NewContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lineIndex)

	var out []string
	for _, diff := range diffs {
		prefix := " "
		style := r.dim
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			style = r.added
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			style = r.removed
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			out = append(out, style.Render(prefix+line))
		}
	}
	return strings.Join(out, "\n")
}

// MarkdownSummary renders the commit as a fenced markdown document suitable
// for glamour rendering in the interactive review screen.
func (r *Renderer) MarkdownSummary(commit *patch.Commit) string {
	paths := make([]string, 0, len(commit.Changes))
	for path := range commit.Changes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("# Pending changes\n\n")
	for _, path := range paths {
		change := commit.Changes[path]
		title := path
		if change.MovePath != "" {
			title = path + " -> " + change.MovePath
		}
		fmt.Fprintf(&b, "## %s %s\n\n", Status(change), title)
		switch change.Type {
		case patch.ActionDelete:
			b.WriteString("File will be deleted.\n\n")
		default:
			b.WriteString("```diff\n")
			b.WriteString(plainDiff(change))
			b.WriteString("\n```\n\n")
		}
	}
	return b.String()
}

// plainDiff is DiffPreview without styling, for embedding in markdown.
func plainDiff(change patch.FileChange) string {
	dmp := diffmatchpatch.New()
	oldChars, newChars, lineIndex := dmp.DiffLinesToChars(change.OldContent, change.NewContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lineIndex)

	var out []string
	for _, diff := range diffs {
		prefix := " "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			out = append(out, prefix+line)
		}
	}
	return strings.Join(out, "\n")
}
