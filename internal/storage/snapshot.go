package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/happyhackingspace/wordalign/ibm"
)

// SaveSnapshot serializes a model snapshot to JSON.
func SaveSnapshot(path string, s *ibm.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot and rejects other schema versions.
// Its shape is checked against the corpus by the consuming model.
func LoadSnapshot(path string) (*ibm.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var s ibm.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	if s.Version != ibm.SnapshotVersion {
		return nil, fmt.Errorf("load snapshot %s: %w: got %d, want %d", path, ibm.ErrSnapshotVersion, s.Version, ibm.SnapshotVersion)
	}
	return &s, nil
}
