package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Snapshotter writes the collection replaced by an overwrite import to
// <Dir>/<uuid>.json.
type Snapshotter struct {
	Dir string
	now func() time.Time
}

type snapshotFile struct {
	TakenAt time.Time `json:"taken_at"`
	Data    any       `json:"data"`
}

func NewSnapshotter(dir string) *Snapshotter {
	return &Snapshotter{Dir: dir, now: time.Now}
}

// SaveJSON stores data and returns the generated file name, relative to Dir.
func (s *Snapshotter) SaveJSON(data any) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	payload, err := json.MarshalIndent(snapshotFile{TakenAt: s.now().UTC(), Data: data}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	name := uuid.NewString() + ".json"
	if err := os.WriteFile(filepath.Join(s.Dir, name), payload, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return name, nil
}

// Path resolves a name returned by SaveJSON.
func (s *Snapshotter) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}
