package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patchkit/patchkit/pkg/patch"
)

func sampleCommit() *patch.Commit {
	return &patch.Commit{Changes: map[string]patch.FileChange{
		"b.txt": {Type: patch.ActionUpdate, OldContent: "x\n", NewContent: "y\n"},
		"a.txt": {Type: patch.ActionAdd, NewContent: "hello"},
		"c.txt": {Type: patch.ActionDelete, OldContent: "gone\n"},
		"d.txt": {Type: patch.ActionUpdate, OldContent: "x\n", NewContent: "x\n", MovePath: "e.txt"},
	}}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, StatusAdded, Status(patch.FileChange{Type: patch.ActionAdd}))
	require.Equal(t, StatusDeleted, Status(patch.FileChange{Type: patch.ActionDelete}))
	require.Equal(t, StatusModified, Status(patch.FileChange{Type: patch.ActionUpdate}))
	require.Equal(t, StatusRenamed, Status(patch.FileChange{Type: patch.ActionUpdate, MovePath: "b"}))
}

func TestSummaryIsSortedByPath(t *testing.T) {
	t.Parallel()

	summary := New().Summary(sampleCommit())
	lines := strings.Split(summary, "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "a.txt")
	require.Contains(t, lines[1], "b.txt")
	require.Contains(t, lines[2], "c.txt")
	require.Contains(t, lines[3], "d.txt -> e.txt")
}

func TestDiffPreviewMarksInsertionsAndDeletions(t *testing.T) {
	t.Parallel()

	preview := New().DiffPreview(patch.FileChange{
		Type:       patch.ActionUpdate,
		OldContent: "a\nb\nc\n",
		NewContent: "a\nx\nc\n",
	})

	require.Contains(t, preview, "-b")
	require.Contains(t, preview, "+x")
	require.Contains(t, preview, " a")
}

func TestMarkdownSummaryIncludesDiffFences(t *testing.T) {
	t.Parallel()

	md := New().MarkdownSummary(sampleCommit())
	require.Contains(t, md, "# Pending changes")
	require.Contains(t, md, "```diff")
	require.Contains(t, md, "## D c.txt")
	require.Contains(t, md, "File will be deleted.")
	require.Contains(t, md, "## R d.txt -> e.txt")
}
