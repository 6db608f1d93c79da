package file

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadJSON loads the JSON file at path into v. Missing files surface as
// os.ErrNotExist so callers can treat "no saved state" separately from a
// corrupt file.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return nil
}
