package patch

import "strings"

// ReadFunc returns the full current content of path, failing when the path
// does not exist.
type ReadFunc func(path string) (string, error)

// WriteFunc replaces or creates path with content.
type WriteFunc func(path, content string) error

// RemoveFunc deletes path.
type RemoveFunc func(path string) error

// FileOps bundles the three injected operations the engine delegates its
// effects to. The engine is agnostic of the storage medium behind them.
type FileOps struct {
	Read   ReadFunc
	Write  WriteFunc
	Remove RemoveFunc
}

// StatusDone is returned by Process and ApplyCommit on full application.
const StatusDone = "Done!"

// IdentifyFilesNeeded extracts the paths referenced by Update and Delete
// directives without parsing or applying the patch. Callers use it to
// pre-fetch a snapshot before constructing the Patch.
func IdentifyFilesNeeded(text string) []string {
	var files []string
	for _, line := range splitLines(text) {
		if path, ok := strings.CutPrefix(line, updateDirective); ok {
			files = append(files, path)
		} else if path, ok := strings.CutPrefix(line, deleteDirective); ok {
			files = append(files, path)
		}
	}
	return files
}

// IdentifyFilesAdded extracts the paths that Add directives will create.
func IdentifyFilesAdded(text string) []string {
	var files []string
	for _, line := range splitLines(text) {
		if path, ok := strings.CutPrefix(line, addDirective); ok {
			files = append(files, path)
		}
	}
	return files
}

// Process is the top-level entry point: it snapshots the referenced files via
// ops.Read, parses the patch against that snapshot, materializes the commit
// and applies it. It returns StatusDone on success or the first structured
// error encountered.
func Process(text string, ops FileOps) (string, error) {
	if !strings.HasPrefix(text, beginMarker) {
		return "", malformedHeaderError()
	}

	orig := make(map[string]string)
	for _, path := range IdentifyFilesNeeded(text) {
		content, err := ops.Read(path)
		if err != nil {
			// Absent paths stay out of the snapshot; the parser reports
			// them as missing-file errors with the offending directive.
			continue
		}
		orig[path] = content
	}

	p, _, err := ParsePatch(text, orig)
	if err != nil {
		return "", err
	}

	commit, err := ToCommit(p, orig)
	if err != nil {
		return "", err
	}

	return ApplyCommit(commit, ops)
}

// ApplyCommit walks the commit's changes and invokes the injected operations.
// Renames write the new path before removing the original. The walk is
// non-atomic: the first operation failure is returned as-is and changes
// applied before it remain in place.
func ApplyCommit(commit *Commit, ops FileOps) (string, error) {
	for path, change := range commit.Changes {
		switch change.Type {
		case ActionDelete:
			if err := ops.Remove(path); err != nil {
				return "", err
			}
		case ActionAdd:
			if err := ops.Write(path, change.NewContent); err != nil {
				return "", err
			}
		case ActionUpdate:
			if change.MovePath != "" {
				if err := ops.Write(change.MovePath, change.NewContent); err != nil {
					return "", err
				}
				if err := ops.Remove(path); err != nil {
					return "", err
				}
				continue
			}
			if err := ops.Write(path, change.NewContent); err != nil {
				return "", err
			}
		}
	}
	return StatusDone, nil
}
