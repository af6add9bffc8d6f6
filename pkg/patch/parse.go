package patch

import (
	"fmt"
	"strings"
)

// ActionType identifies the kind of change described by a patch action.
type ActionType string

const (
	// ActionAdd represents an "*** Add File" directive.
	ActionAdd ActionType = "add"
	// ActionUpdate represents an "*** Update File" directive.
	ActionUpdate ActionType = "update"
	// ActionDelete represents an "*** Delete File" directive.
	ActionDelete ActionType = "delete"
)

// Chunk captures one edit inside an Update action: the lines expected at the
// edit point and the lines that replace them. Shared context lines appear in
// both slices so they can anchor the match.
type Chunk struct {
	DelLines []string
	InsLines []string
}

// Action describes the change requested for a single file path.
//
// NewFile is populated for Add actions, Chunks and MovePath for Update
// actions. Delete actions carry no payload beyond the type.
type Action struct {
	Type     ActionType
	NewFile  string
	Chunks   []Chunk
	MovePath string
}

// Patch is the parsed form of a payload: one Action per file path. Paths are
// unique; the parser rejects a path that appears under two directives.
type Patch struct {
	Actions map[string]Action
}

const (
	beginMarker     = "*** Begin Patch"
	endMarker       = "*** End Patch"
	updateDirective = "*** Update File: "
	addDirective    = "*** Add File: "
	deleteDirective = "*** Delete File: "
	moveDirective   = "*** Move to: "
)

// parser walks the payload lines with an explicit cursor so directive and
// hunk boundaries can look ahead without consuming input.
type parser struct {
	current map[string]string
	lines   []string
	index   int
	patch   *Patch
	fuzz    int
}

func (p *parser) done(prefixes ...string) bool {
	if p.index >= len(p.lines) {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(p.lines[p.index], prefix) {
			return true
		}
	}
	return false
}

func (p *parser) startsWith(prefix string) bool {
	if p.index >= len(p.lines) {
		return false
	}
	return strings.HasPrefix(p.lines[p.index], prefix)
}

// readString consumes the current line and returns the remainder after prefix
// when it matches; otherwise the cursor stays put and the empty string is
// returned.
func (p *parser) readString(prefix string) string {
	if p.index >= len(p.lines) {
		return ""
	}
	if rest, ok := strings.CutPrefix(p.lines[p.index], prefix); ok {
		p.index++
		return rest
	}
	return ""
}

func (p *parser) readLine() string {
	line := p.lines[p.index]
	p.index++
	return line
}

func (p *parser) parse() error {
	if p.startsWith(beginMarker) {
		p.index++
	}

	for !p.done(endMarker) {
		if path := p.readString(updateDirective); path != "" {
			if _, ok := p.patch.Actions[path]; ok {
				return duplicatePathError("Update File", path)
			}
			moveTo := p.readString(moveDirective)
			if _, ok := p.current[path]; !ok {
				return missingFileError("Update File", path)
			}
			action, err := p.parseUpdate(path)
			if err != nil {
				return err
			}
			action.MovePath = moveTo
			p.patch.Actions[path] = action
			continue
		}

		if path := p.readString(addDirective); path != "" {
			if _, ok := p.patch.Actions[path]; ok {
				return duplicatePathError("Add File", path)
			}
			p.patch.Actions[path] = p.parseAdd()
			continue
		}

		if path := p.readString(deleteDirective); path != "" {
			if _, ok := p.patch.Actions[path]; ok {
				return duplicatePathError("Delete File", path)
			}
			if _, ok := p.current[path]; !ok {
				return missingFileError("Delete File", path)
			}
			p.patch.Actions[path] = Action{Type: ActionDelete}
			continue
		}

		if p.index >= len(p.lines) {
			return &Error{
				Code:    CodeUnrecognizedDirective,
				Message: "Parse Error: unexpected end of patch",
			}
		}

		if strings.TrimSpace(p.lines[p.index]) == "" {
			p.index++
			continue
		}

		line := p.lines[p.index]
		return &Error{
			Code:    CodeUnrecognizedDirective,
			Line:    line,
			Message: fmt.Sprintf("Parse Error: %s", line),
		}
	}

	return nil
}

// parseUpdate consumes the hunks belonging to one Update directive. Each hunk
// opens with an "@@" header whose text is discarded; body lines are classified
// by their first character.
func (p *parser) parseUpdate(path string) (Action, error) {
	action := Action{Type: ActionUpdate}

	for !p.done("*** ") {
		if !p.startsWith("@@") {
			line := p.lines[p.index]
			return Action{}, &Error{
				Code:    CodeUnrecognizedDirective,
				Path:    path,
				Line:    line,
				Message: fmt.Sprintf("Parse Error: expected @@ hunk header in %s: %s", path, line),
			}
		}
		p.index++

		chunk := Chunk{}
		for !p.done("@@", "*** ") {
			line := p.readLine()
			switch {
			case strings.HasPrefix(line, "-"):
				chunk.DelLines = append(chunk.DelLines, line[1:])
			case strings.HasPrefix(line, "+"):
				chunk.InsLines = append(chunk.InsLines, line[1:])
			default:
				chunk.DelLines = append(chunk.DelLines, line)
				chunk.InsLines = append(chunk.InsLines, line)
			}
		}
		action.Chunks = append(action.Chunks, chunk)
	}

	return action, nil
}

// parseAdd collects the literal body of an Add directive. Lines are joined
// with "\n" and no trailing newline is forced, matching the wire format's
// treatment of Add bodies.
func (p *parser) parseAdd() Action {
	var lines []string
	for !p.done("*** ") {
		if line := p.readLine(); line != "" {
			lines = append(lines, line)
		}
	}
	return Action{Type: ActionAdd, NewFile: strings.Join(lines, "\n")}
}

// ParsePatch converts patch text into a Patch given a snapshot of the current
// file contents. The snapshot is consulted to reject Update and Delete
// directives that target unknown paths.
//
// The second return value is the accumulated fuzz. Matching is exact, so it
// is always zero today; it is kept in the signature for callers that want to
// surface it alongside the patch.
func ParsePatch(text string, orig map[string]string) (*Patch, int, error) {
	if !strings.HasPrefix(text, beginMarker) {
		return nil, 0, malformedHeaderError()
	}

	p := &parser{
		current: orig,
		lines:   splitLines(text),
		patch:   &Patch{Actions: make(map[string]Action)},
	}
	if err := p.parse(); err != nil {
		return nil, 0, err
	}
	return p.patch, p.fuzz, nil
}

// splitLines normalizes line terminators and splits without producing a
// phantom empty line for content that ends with a newline.
func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
