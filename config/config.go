// Package config loads and persists the host settings that feed the
// SDSS dynamic record: settings version, run mode, startup counter and
// node identity.
package config

import (
	"fmt"
	"os"

	"github.com/gofrs/uuid"
	"github.com/google/renameio/v2"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/blueql-db/blueql/storage/sdss"
)

// Config is the on-disk host settings file.
type Config struct {
	// SettingsVersion is bumped by operators when the host settings
	// materially change; it is stamped into every SDSS header.
	SettingsVersion uint32 `yaml:"settings_version"`
	// RunMode is "dev" or "prod".
	RunMode string `yaml:"run_mode"`
	// DataDir holds the journals.
	DataDir string `yaml:"data_dir"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// NodeID identifies this host across restarts; minted on first run.
	NodeID string `yaml:"node_id"`
	// StartupCounter counts process starts; bumped by Bootstrap before
	// any SDSS file is opened.
	StartupCounter uint64 `yaml:"startup_counter"`
}

// Default returns the settings a fresh host starts with.
func Default() Config {
	return Config{
		SettingsVersion: 1,
		RunMode:         "dev",
		DataDir:         "data",
		LogLevel:        "info",
	}
}

// Load reads the settings file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, pkgerrors.Wrap(err, "config")
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, pkgerrors.Wrap(err, "config")
	}
	return c, nil
}

// Save writes the settings atomically: the file is never observable
// half-written, even across a crash.
func (c Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, raw, 0o644)
}

// Bootstrap loads the settings at path, creating them with defaults on
// first run, mints the node id if absent, bumps the startup counter and
// persists the result. The returned config is the one the process runs
// with.
func Bootstrap(path string) (Config, error) {
	c, err := Load(path)
	if os.IsNotExist(pkgerrors.Cause(err)) {
		c = Default()
	} else if err != nil {
		return Config{}, err
	}
	if c.NodeID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return Config{}, err
		}
		c.NodeID = id.String()
	}
	c.StartupCounter++
	if err := c.Save(path); err != nil {
		return Config{}, err
	}
	return c, nil
}

// HostRunMode maps the textual run mode to its SDSS header encoding.
func (c Config) HostRunMode() (sdss.HostRunMode, error) {
	switch c.RunMode {
	case "dev", "":
		return sdss.RunModeDev, nil
	case "prod":
		return sdss.RunModeProd, nil
	default:
		return 0, fmt.Errorf("config: unknown run mode %q", c.RunMode)
	}
}
