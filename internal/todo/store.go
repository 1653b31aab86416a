package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is the storage file location relative to the working directory.
const DefaultPath = "storage/todo-file.json"

// Load reads the task list from path. A missing file is not an error: the
// parent directory and an empty-array file are created so later saves need
// no existence checks, and an empty list is returned. Any other read
// failure, and any malformed content, propagates to the caller.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		list := List{}
		if err := list.Save(path); err != nil {
			return nil, fmt.Errorf("bootstrap todo file: %w", err)
		}
		return list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}
	if list == nil {
		list = List{}
	}

	return list, nil
}

// Save writes the task list to path with 2-space indentation, replacing the
// file in full. The parent directory is created if needed.
func (l List) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todo file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}

	return nil
}
