package patch

import "fmt"

// MemoryOps returns FileOps backed by the provided map. The map is mutated in
// place; use ProcessInMemory for copy-on-write semantics.
func MemoryOps(files map[string]string) FileOps {
	return FileOps{
		Read: func(path string) (string, error) {
			content, ok := files[path]
			if !ok {
				return "", fmt.Errorf("failed to read %s: file does not exist", path)
			}
			return content, nil
		},
		Write: func(path, content string) error {
			files[path] = content
			return nil
		},
		Remove: func(path string) error {
			if _, ok := files[path]; !ok {
				return fmt.Errorf("failed to delete %s: file does not exist", path)
			}
			delete(files, path)
			return nil
		},
	}
}

// ProcessInMemory applies patch text to a copy of files and returns the
// updated snapshot along with the engine's status token. The input map is
// never mutated.
func ProcessInMemory(text string, files map[string]string) (map[string]string, string, error) {
	snapshot := make(map[string]string, len(files))
	for k, v := range files {
		snapshot[k] = v
	}
	status, err := Process(text, MemoryOps(snapshot))
	if err != nil {
		return nil, "", err
	}
	return snapshot, status, nil
}
