package probedock

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultSnapshotFile is where the local copy of the report goes unless told otherwise.
const DefaultSnapshotFile = "test-run-dump.json"

// WriteSnapshot overwrites path with the report as indented JSON. The file is only meant
// for people inspecting a run after the fact; nothing reads it back.
func WriteSnapshot(path string, report RunReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &SnapshotWriteError{Path: path, Err: err}
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return &SnapshotWriteError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &SnapshotWriteError{Path: path, Err: err}
	}
	return nil
}
