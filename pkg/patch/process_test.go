package patch

import (
	"errors"
	"fmt"
	"testing"
)

func TestProcessUpdatesFile(t *testing.T) {
	t.Parallel()

	files := map[string]string{"a.py": "x\ny\nz\n"}
	text := patchText(
		"*** Begin Patch",
		"*** Update File: a.py",
		"@@ ",
		"x",
		"-y",
		"+w",
		"z",
		"*** End Patch",
	)

	status, err := Process(text, MemoryOps(files))
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if status != StatusDone {
		t.Fatalf("unexpected status: %q", status)
	}
	if got, want := files["a.py"], "x\nw\nz\n"; got != want {
		t.Fatalf("content mismatch: got %q want %q", got, want)
	}
}

func TestProcessAddsFile(t *testing.T) {
	t.Parallel()

	files := map[string]string{}
	text := patchText(
		"*** Begin Patch",
		"*** Add File: greeting.txt",
		"hello",
		"*** End Patch",
	)

	if _, err := Process(text, MemoryOps(files)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if got := files["greeting.txt"]; got != "hello" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestProcessDeletesFile(t *testing.T) {
	t.Parallel()

	files := map[string]string{"gone.txt": "x\n"}
	text := patchText(
		"*** Begin Patch",
		"*** Delete File: gone.txt",
		"*** End Patch",
	)

	if _, err := Process(text, MemoryOps(files)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if _, ok := files["gone.txt"]; ok {
		t.Fatalf("file still present after delete")
	}
}

func TestProcessRenameWritesBeforeRemoving(t *testing.T) {
	t.Parallel()

	files := map[string]string{"a.py": "x\n"}
	var calls []string
	base := MemoryOps(files)
	ops := FileOps{
		Read: base.Read,
		Write: func(path, content string) error {
			calls = append(calls, "write:"+path)
			return base.Write(path, content)
		},
		Remove: func(path string) error {
			calls = append(calls, "remove:"+path)
			return base.Remove(path)
		},
	}

	text := patchText(
		"*** Begin Patch",
		"*** Update File: a.py",
		"*** Move to: b.py",
		"@@ ",
		"-x",
		"+y",
		"*** End Patch",
	)

	if _, err := Process(text, ops); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "write:b.py" || calls[1] != "remove:a.py" {
		t.Fatalf("unexpected operation order: %v", calls)
	}
	if got := files["b.py"]; got != "y\n" {
		t.Fatalf("renamed content mismatch: %q", got)
	}
	if _, ok := files["a.py"]; ok {
		t.Fatalf("original path still present after rename")
	}
}

func TestProcessReportsMissingFile(t *testing.T) {
	t.Parallel()

	text := patchText(
		"*** Begin Patch",
		"*** Update File: absent.py",
		"@@ ",
		"-x",
		"+y",
		"*** End Patch",
	)

	_, err := Process(text, MemoryOps(map[string]string{}))
	perr := assertCode(t, err, CodeMissingFile)
	if perr.Path != "absent.py" {
		t.Fatalf("expected offending path, got %q", perr.Path)
	}
}

func TestProcessContextNotFoundLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	files := map[string]string{"a.py": "x\ny\n"}
	text := patchText(
		"*** Begin Patch",
		"*** Update File: a.py",
		"@@ ",
		"-nope",
		"+yes",
		"*** End Patch",
	)

	_, err := Process(text, MemoryOps(files))
	assertCode(t, err, CodeContextNotFound)
	if got := files["a.py"]; got != "x\ny\n" {
		t.Fatalf("file mutated despite failure: %q", got)
	}
}

func TestProcessPropagatesOperationFailure(t *testing.T) {
	t.Parallel()

	opErr := fmt.Errorf("disk full")
	files := map[string]string{"a.py": "x\n"}
	base := MemoryOps(files)
	ops := FileOps{
		Read:   base.Read,
		Write:  func(string, string) error { return opErr },
		Remove: base.Remove,
	}

	text := patchText(
		"*** Begin Patch",
		"*** Update File: a.py",
		"@@ ",
		"-x",
		"+y",
		"*** End Patch",
	)

	_, err := Process(text, ops)
	if !errors.Is(err, opErr) {
		t.Fatalf("expected injected failure to surface, got %v", err)
	}
	var perr *Error
	if errors.As(err, &perr) {
		t.Fatalf("operation failures must not be converted to *Error: %v", err)
	}
}

func TestIdentifyFiles(t *testing.T) {
	t.Parallel()

	text := patchText(
		"*** Begin Patch",
		"*** Update File: test1.py",
		"@@ ",
		"a",
		"-b",
		"+c",
		"*** Delete File: test2.py",
		"*** Add File: test3.py",
		"new content",
		"*** End Patch",
	)

	needed := IdentifyFilesNeeded(text)
	if len(needed) != 2 || needed[0] != "test1.py" || needed[1] != "test2.py" {
		t.Fatalf("unexpected needed files: %v", needed)
	}

	added := IdentifyFilesAdded(text)
	if len(added) != 1 || added[0] != "test3.py" {
		t.Fatalf("unexpected added files: %v", added)
	}
}

func TestProcessInMemoryCopiesInput(t *testing.T) {
	t.Parallel()

	initial := map[string]string{"a.py": "x\n"}
	text := patchText(
		"*** Begin Patch",
		"*** Update File: a.py",
		"@@ ",
		"-x",
		"+y",
		"*** End Patch",
	)

	updated, status, err := ProcessInMemory(text, initial)
	if err != nil {
		t.Fatalf("ProcessInMemory returned error: %v", err)
	}
	if status != StatusDone {
		t.Fatalf("unexpected status: %q", status)
	}
	if updated["a.py"] != "y\n" {
		t.Fatalf("updated content mismatch: %q", updated["a.py"])
	}
	if initial["a.py"] != "x\n" {
		t.Fatalf("input snapshot mutated: %q", initial["a.py"])
	}
}

func TestMemoryOpsRemoveMissing(t *testing.T) {
	t.Parallel()

	ops := MemoryOps(map[string]string{})
	if err := ops.Remove("missing.txt"); err == nil {
		t.Fatalf("expected error when removing missing file")
	}
}
