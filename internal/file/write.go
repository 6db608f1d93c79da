// Package file contains utilities related to file operations (e.g. reading
// and writing JSON state).
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vidpick/internal/domain/consts"
	"vidpick/internal/utils/logging"
)

// WriteJSONAtomic writes v as indented JSON to path, going through a
// temporary file in the same directory so a crash mid-write never leaves a
// truncated state file behind.
func WriteJSONAtomic(path string, v any, perms os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, consts.PermsHomeProgDir); err != nil {
		return fmt.Errorf("failed to make directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		// No-ops once the rename has happened.
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			logging.D(1, "failed to remove temp file %q: %v", tmpName, err)
		}
	}()

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perms); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %q: %w", path, err)
	}
	return nil
}
