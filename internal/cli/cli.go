// Package cli wires the patch engine, approval policy and terminal output
// into the patchkit command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/patchkit/patchkit/internal/approvals"
	"github.com/patchkit/patchkit/internal/logging"
	"github.com/patchkit/patchkit/internal/metrics"
	"github.com/patchkit/patchkit/internal/render"
	"github.com/patchkit/patchkit/internal/toolcall"
	"github.com/patchkit/patchkit/internal/tui"
	"github.com/patchkit/patchkit/pkg/patch"
)

// Run executes the patchkit command using the provided CLI arguments.
// It returns a POSIX-style exit code indicating whether execution succeeded.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	defaultApproval := os.Getenv("PATCHKIT_APPROVAL")
	if defaultApproval == "" {
		defaultApproval = string(approvals.ModeSuggest)
	}
	defaultDir := os.Getenv("PATCHKIT_DIR")
	defaultLogLevel := os.Getenv("PATCHKIT_LOG_LEVEL")
	if defaultLogLevel == "" {
		defaultLogLevel = "warn"
	}

	flagSet := flag.NewFlagSet("patchkit", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	patchFile := flagSet.String("patch", "-", "file containing the patch payload, or - for stdin")
	toolResponse := flagSet.String("tool-response", "", "extract the patch from an LLM tool-call response JSON file instead of -patch")
	dir := flagSet.String("dir", defaultDir, "working directory the patch paths are resolved against")
	approvalMode := flagSet.String("approval", defaultApproval, "approval mode: suggest, auto-edit or full-auto")
	interactive := flagSet.Bool("interactive", false, "review the pending changes in an interactive screen before applying")
	dryRun := flagSet.Bool("dry-run", false, "compute and print the changes without applying them")
	assumeYes := flagSet.Bool("yes", false, "apply without asking even in suggest mode")
	quiet := flagSet.Bool("quiet", false, "suppress the per-file change summary")
	logLevel := flagSet.String("log-level", defaultLogLevel, "minimum log level: debug, info, warn or error")

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	logger := newLogger(*logLevel, stderr)
	ctx = logging.WithTraceID(ctx, logging.NewTraceID())

	mode, err := approvals.ParseMode(*approvalMode)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var text string
	if *toolResponse != "" {
		text, err = patchFromToolResponse(*toolResponse)
	} else {
		text, err = readPatchText(*patchFile, stdin)
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to read patch: %v\n", err)
		return 1
	}

	ops, err := patch.DirOps(*dir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	commit, err := buildCommit(text, ops)
	if err != nil {
		reportPatchError(stderr, err)
		return 1
	}

	renderer := render.New()
	if !*quiet {
		if summary := renderer.Summary(commit); summary != "" {
			fmt.Fprintln(stdout, summary)
		}
	}

	if *dryRun {
		logger.Info(ctx, "dry run, nothing applied", logging.Field("files", len(commit.Changes)))
		return 0
	}

	approved, code := resolveApproval(ctx, commit, text, approvals.NewPolicy(mode), *interactive, *assumeYes, logger, stderr)
	if !approved {
		return code
	}

	collector := metrics.NewInMemoryMetrics()
	started := time.Now()
	status, err := patch.ApplyCommit(commit, ops)
	collector.RecordApplication(time.Since(started), err == nil)
	if err != nil {
		logger.Error(ctx, "patch application failed", err)
		reportPatchError(stderr, err)
		return 1
	}

	for _, change := range commit.Changes {
		collector.RecordChange(change.Type, change.MovePath != "")
	}
	snap := collector.GetSnapshot()
	logger.Info(ctx, "patch applied",
		logging.Field("added", snap.FilesAdded),
		logging.Field("updated", snap.FilesUpdated),
		logging.Field("deleted", snap.FilesDeleted),
		logging.Field("moved", snap.FilesMoved),
		logging.Field("duration", snap.Applications.TotalTime),
	)

	fmt.Fprintln(stdout, status)
	return 0
}

// buildCommit snapshots the referenced files, parses the payload and
// materializes the commit without touching anything.
func buildCommit(text string, ops patch.FileOps) (*patch.Commit, error) {
	orig := make(map[string]string)
	for _, path := range patch.IdentifyFilesNeeded(text) {
		content, err := ops.Read(path)
		if err != nil {
			continue
		}
		orig[path] = content
	}

	parsed, _, err := patch.ParsePatch(text, orig)
	if err != nil {
		return nil, err
	}
	return patch.ToCommit(parsed, orig)
}

func resolveApproval(ctx context.Context, commit *patch.Commit, text string, policy approvals.Policy, interactive, assumeYes bool, logger logging.Logger, stderr io.Writer) (bool, int) {
	review := policy.ReviewCommand(nil, &approvals.PatchCommand{Patch: text})
	if review.Approved || assumeYes {
		return true, 0
	}
	if interactive {
		approved, err := tui.Review(commit)
		if err != nil {
			fmt.Fprintf(stderr, "review failed: %v\n", err)
			return false, 1
		}
		if !approved {
			logger.Info(ctx, "patch rejected by reviewer")
			fmt.Fprintln(stderr, "Rejected, nothing applied.")
			return false, 1
		}
		return true, 0
	}
	fmt.Fprintln(stderr, "Approval required: re-run with --yes, --interactive or --approval auto-edit.")
	return false, 1
}

// patchFromToolResponse pulls the apply_patch payload out of a recorded LLM
// response, validating the tool arguments before trusting them.
func patchFromToolResponse(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	calls, err := toolcall.FromResponse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse tool response: %w", err)
	}
	for _, call := range calls {
		if call.Name != toolcall.ApplyPatchToolName {
			continue
		}
		return toolcall.PatchArgument(call.Arguments)
	}
	return "", fmt.Errorf("no %s call found in %s", toolcall.ApplyPatchToolName, path)
}

func readPatchText(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			return "", fmt.Errorf("no patch input available")
		}
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func newLogger(level string, stderr io.Writer) logging.Logger {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logging.NewStdLogger(logging.LevelDebug, stderr)
	case "info":
		return logging.NewStdLogger(logging.LevelInfo, stderr)
	case "error":
		return logging.NewStdLogger(logging.LevelError, stderr)
	default:
		return logging.NewStdLogger(logging.LevelWarn, stderr)
	}
}

func reportPatchError(stderr io.Writer, err error) {
	var perr *patch.Error
	if errors.As(err, &perr) {
		fmt.Fprintf(stderr, "%s: %s\n", perr.Code, perr.Error())
		return
	}
	fmt.Fprintln(stderr, err)
}
