// Package approvals decides whether commands and file edits may run without
// an explicit human decision.
package approvals

import "fmt"

// Mode selects how aggressively the tool auto-approves work.
type Mode string

const (
	// ModeSuggest asks for approval for everything.
	ModeSuggest Mode = "suggest"
	// ModeAutoEdit auto-approves file edits but asks for commands.
	ModeAutoEdit Mode = "auto-edit"
	// ModeFullAuto auto-approves everything.
	ModeFullAuto Mode = "full-auto"
)

// ParseMode converts user input into a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeSuggest, ModeAutoEdit, ModeFullAuto:
		return Mode(value), nil
	}
	return "", fmt.Errorf("unknown approval mode: %q (expected suggest, auto-edit or full-auto)", value)
}

// PatchCommand describes a pending apply-patch invocation submitted for
// review.
type PatchCommand struct {
	Filename string
	Patch    string
}

// Review is the decision produced for a command.
type Review struct {
	Approved bool
	Message  string
}

// Policy evaluates whether commands and edits may proceed under a Mode.
type Policy struct {
	mode Mode
}

// NewPolicy creates a policy for the given mode. An empty mode falls back to
// ModeSuggest.
func NewPolicy(mode Mode) Policy {
	if mode == "" {
		mode = ModeSuggest
	}
	return Policy{mode: mode}
}

// Mode reports the mode the policy was created with.
func (p Policy) Mode() Mode {
	return p.mode
}

// AutoApprovesEdit reports whether file edits run without explicit approval.
func (p Policy) AutoApprovesEdit() bool {
	return p.mode == ModeAutoEdit || p.mode == ModeFullAuto
}

// AutoApprovesCommand reports whether shell commands run without explicit
// approval.
func (p Policy) AutoApprovesCommand() bool {
	return p.mode == ModeFullAuto
}

// ReviewCommand evaluates one command. A non-nil patch marks the command as a
// file edit, which auto-approves under auto-edit and full-auto; plain
// commands auto-approve only under full-auto. Anything else requires an
// explicit decision from the caller.
func (p Policy) ReviewCommand(command []string, patch *PatchCommand) Review {
	if patch != nil && p.AutoApprovesEdit() {
		return Review{Approved: true}
	}
	if patch == nil && p.AutoApprovesCommand() {
		return Review{Approved: true}
	}
	return Review{Approved: false, Message: "explicit approval required"}
}
