package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"dinotrek.io/internal/sim/tuning"
)

const sessionFile = "session.yaml"

// Session records what a journal needs to be replayed: the resolved seed
// and the exact tuning and catalogs the world ran with.
type Session struct {
	WorldID       string        `yaml:"world_id"`
	Seed          int64         `yaml:"seed"`
	CatalogDigest string        `yaml:"catalog_digest"`
	ConfigDir     string        `yaml:"config_dir"`
	StartedAt     time.Time     `yaml:"started_at"`
	Tuning        tuning.Tuning `yaml:"tuning"`
}

func WriteSession(worldDir string, s Session) error {
	if err := os.MkdirAll(worldDir, 0o755); err != nil {
		return err
	}
	raw, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	tmp := filepath.Join(worldDir, sessionFile+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(worldDir, sessionFile))
}

func ReadSession(worldDir string) (Session, error) {
	var s Session
	raw, err := os.ReadFile(filepath.Join(worldDir, sessionFile))
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", sessionFile, err)
	}
	return s, nil
}
