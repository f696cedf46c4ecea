package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// writeJSONAtomic persists v as an indented JSON document using a temp file
// and rename, so readers never observe a torn write.
func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

// readJSON loads a JSON document into v. A missing file is not an error;
// the bool reports whether the file existed.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read document: %w", err)
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse document: %w", err)
	}
	return true, nil
}
