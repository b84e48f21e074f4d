package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/hkroes/aquanet/pkg/constraints"
	"github.com/hkroes/aquanet/pkg/logging"
)

// Write validates the model and persists it into directory dir as
// "<name>.toml" plus "<name>.db". The write is refused entirely if the
// configuration or the network is invalid; no partial bundle is ever left
// behind. Row order is canonicalized before writing.
func (m *Model) Write(dir string) error {
	start := time.Now()
	if err := m.Config.Validate(); err != nil {
		return err
	}
	result := m.Validate()
	if !result.Valid {
		return &constraints.ValidationError{Result: result}
	}
	m.Sort()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if m.Config.Database == "" {
		m.Config.Database = m.Name + ".db"
	}
	if err := m.writeTOML(filepath.Join(dir, m.Name+".toml")); err != nil {
		return err
	}
	if err := m.writeDatabase(filepath.Join(dir, m.Config.Database)); err != nil {
		return err
	}
	m.logger.Info("model written",
		logging.String("dir", dir),
		logging.Int("nodes", m.nodes.Len()),
		logging.Int("edges", m.edges.Len()),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

func (m *Model) writeTOML(path string) error {
	data, err := toml.Marshal(m.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}

// Read loads a model from its TOML configuration file. The model name is the
// file stem; the table container is resolved relative to the file. The
// loaded network is not validated implicitly: call Validate to obtain the
// punch list for a hand-edited bundle.
func Read(tomlPath string) (*Model, error) {
	data, err := os.ReadFile(tomlPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", tomlPath, err)
	}

	name := strings.TrimSuffix(filepath.Base(tomlPath), filepath.Ext(tomlPath))
	m := New(name, config)
	dbPath := filepath.Join(filepath.Dir(tomlPath), config.Database)
	if err := m.readDatabase(dbPath); err != nil {
		return nil, err
	}
	m.logger.Info("model read",
		logging.String("path", tomlPath),
		logging.Int("nodes", m.nodes.Len()),
		logging.Int("edges", m.edges.Len()))
	return m, nil
}
