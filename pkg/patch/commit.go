package patch

import (
	"fmt"
	"strings"
)

// FileChange is the materialized effect for one path: the concrete old and
// new content the filesystem transition needs, plus an optional rename
// target for updates.
type FileChange struct {
	Type       ActionType
	OldContent string
	NewContent string
	MovePath   string
}

// Commit maps file paths to their materialized changes. It is a complete,
// side-effect-free description of what must happen; only the applicator
// performs effects.
type Commit struct {
	Changes map[string]FileChange
}

// ToCommit derives the concrete per-file changes from a parsed patch and the
// snapshot it was parsed against. The derivation is pure: no injected
// operation is invoked and no partial commit is returned on failure.
func ToCommit(p *Patch, orig map[string]string) (*Commit, error) {
	commit := &Commit{Changes: make(map[string]FileChange, len(p.Actions))}
	for path, action := range p.Actions {
		switch action.Type {
		case ActionDelete:
			commit.Changes[path] = FileChange{Type: ActionDelete, OldContent: orig[path]}
		case ActionAdd:
			commit.Changes[path] = FileChange{Type: ActionAdd, NewContent: action.NewFile}
		case ActionUpdate:
			newContent, err := updatedFile(orig[path], action, path)
			if err != nil {
				return nil, err
			}
			commit.Changes[path] = FileChange{
				Type:       ActionUpdate,
				OldContent: orig[path],
				NewContent: newContent,
				MovePath:   action.MovePath,
			}
		default:
			return nil, fmt.Errorf("unsupported action type for %s: %s", path, action.Type)
		}
	}
	return commit, nil
}

// updatedFile rebuilds the full content of one file by splicing each chunk's
// insert lines into a working copy. Every chunk is located against the
// pristine original line sequence, never the working buffer, so chunks within
// one file must target non-overlapping regions.
func updatedFile(text string, action Action, path string) (string, error) {
	if action.Type != ActionUpdate {
		return "", fmt.Errorf("invalid action type for %s: %s", path, action.Type)
	}

	lines := splitLines(text)
	working := append([]string(nil), lines...)

	for _, chunk := range action.Chunks {
		start, end, err := findContext(lines, chunk.DelLines, 0, false)
		if err != nil {
			return "", &Error{
				Code:    CodeContextNotFound,
				Path:    path,
				Message: fmt.Sprintf("Failed to apply chunk in %s", path),
			}
		}
		working = splice(working, start, end, chunk.InsLines)
	}

	rebuilt := strings.Join(working, "\n")
	if strings.HasSuffix(text, "\n") {
		rebuilt += "\n"
	}
	return rebuilt, nil
}

// splice replaces target[start:end] with replacement, clamping the range to
// the slice bounds.
func splice(target []string, start, end int, replacement []string) []string {
	if start < 0 {
		start = 0
	}
	if start > len(target) {
		start = len(target)
	}
	if end < start {
		end = start
	}
	if end > len(target) {
		end = len(target)
	}
	result := make([]string, 0, len(target)-(end-start)+len(replacement))
	result = append(result, target[:start]...)
	result = append(result, replacement...)
	result = append(result, target[end:]...)
	return result
}
