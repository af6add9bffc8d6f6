package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirOps returns FileOps that resolve relative paths beneath dir and touch
// the local filesystem. Parent directories are created on write. An empty dir
// falls back to the process working directory.
func DirOps(dir string) (FileOps, error) {
	workingDir := strings.TrimSpace(dir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return FileOps{}, fmt.Errorf("failed to determine working directory: %w", err)
		}
		workingDir = wd
	}
	if abs, err := filepath.Abs(workingDir); err == nil {
		workingDir = abs
	}

	resolve := func(path string) (string, error) {
		rel := strings.TrimSpace(path)
		if rel == "" {
			return "", fmt.Errorf("invalid patch path")
		}
		cleaned := filepath.Clean(rel)
		if filepath.IsAbs(cleaned) {
			return cleaned, nil
		}
		return filepath.Join(workingDir, cleaned), nil
	}

	return FileOps{
		Read: func(path string) (string, error) {
			abs, err := resolve(path)
			if err != nil {
				return "", err
			}
			content, err := os.ReadFile(abs)
			if err != nil {
				return "", fmt.Errorf("failed to read %s: %w", path, err)
			}
			return string(content), nil
		},
		Write: func(path, content string) error {
			abs, err := resolve(path)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", path, err)
			}
			if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			return nil
		},
		Remove: func(path string) error {
			abs, err := resolve(path)
			if err != nil {
				return err
			}
			if err := os.Remove(abs); err != nil {
				return fmt.Errorf("failed to delete %s: %w", path, err)
			}
			return nil
		},
	}, nil
}

// ProcessInDir applies patch text to files beneath dir.
func ProcessInDir(text, dir string) (string, error) {
	ops, err := DirOps(dir)
	if err != nil {
		return "", err
	}
	return Process(text, ops)
}
