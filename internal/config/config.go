package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = ".chunkflow"
	defaultConfigDir  = ".chunkflow"
)

// Manager handles chunkflow configuration
type Manager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &Config{},
	}
}

// Load loads the configuration from file, environment and defaults
func (m *Manager) Load() (*Config, error) {
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		// Check ~/.chunkflow/.chunkflow.yaml, then ~/.chunkflow.yaml
		m.viper.AddConfigPath(filepath.Join(home, defaultConfigDir))
		m.viper.AddConfigPath(home)
		m.viper.SetConfigName(defaultConfigName)
		m.viper.SetConfigType("yaml")
	}

	m.viper.SetEnvPrefix("CHUNKFLOW")
	m.viper.AutomaticEnv()

	m.config = &Config{}

	if err := m.viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		m.applyDefaults()
		return m.config, nil
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.applyDefaults()

	return m.config, nil
}

// Save writes the current configuration to file
func (m *Manager) Save() error {
	if m.configPath == "" {
		m.configPath = m.viper.ConfigFileUsed()
	}
	if m.configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		m.configPath = filepath.Join(home, defaultConfigName+".yaml")
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.viper.Set("defaults", m.config.Defaults)
	m.viper.Set("profiles", m.config.Profiles)

	if err := m.viper.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigFileUsed returns the path of the file that was loaded, if any
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// GetProfile returns the preset registered under name
func (m *Manager) GetProfile(name string) (ProfileConfig, bool) {
	if m.config.Profiles == nil {
		return ProfileConfig{}, false
	}

	p, ok := m.config.Profiles[name]
	return p, ok
}

// SetProfile validates and stores a preset
func (m *Manager) SetProfile(name string, p ProfileConfig) error {
	if name == "" {
		return util.NewValidationError("profile", name, "name must not be empty")
	}
	if _, err := chunk.Parse(p.Partitioner, p.ChunkSize); err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}

	if m.config.Profiles == nil {
		m.config.Profiles = make(map[string]ProfileConfig)
	}
	m.config.Profiles[name] = p
	return nil
}

// RemoveProfile deletes a preset
func (m *Manager) RemoveProfile(name string) {
	delete(m.config.Profiles, name)
}

// ProfileNames returns the sorted preset names
func (m *Manager) ProfileNames() []string {
	names := make([]string, 0, len(m.config.Profiles))
	for name := range m.config.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Partitioner resolves a partitioner from a profile, or from the defaults when profile is empty
func (m *Manager) Partitioner(profile string) (chunk.Partitioner, error) {
	if profile != "" {
		p, ok := m.GetProfile(profile)
		if !ok {
			return nil, util.NewValidationError("profile", profile, "no such profile")
		}
		return chunk.Parse(p.Partitioner, p.ChunkSize)
	}

	d := m.config.Defaults
	if chunk.Kind(d.Partitioner) == chunk.KindDynamic {
		return chunk.Parse(d.Partitioner, d.MinChunkSize)
	}
	return chunk.Parse(d.Partitioner, d.ChunkSize)
}

// Validate checks the loaded configuration
func (m *Manager) Validate() error {
	d := m.config.Defaults
	errs := &util.MultiError{}

	if d.Workers < 1 {
		errs.Add(util.NewValidationError("defaults.workers", d.Workers, "must be at least 1"))
	}
	if d.Size < 0 {
		errs.Add(util.NewValidationError("defaults.size", d.Size, "must not be negative"))
	}
	switch d.OutputFormat {
	case "table", "json", "yaml":
	default:
		errs.Add(util.NewValidationError("defaults.outputFormat", d.OutputFormat, "must be one of: table, json, yaml"))
	}
	if _, err := m.Partitioner(""); err != nil {
		errs.Add(err)
	}
	for _, name := range m.ProfileNames() {
		if _, err := m.Partitioner(name); err != nil {
			errs.Add(fmt.Errorf("profile %q: %w", name, err))
		}
	}

	return errs.ErrorOrNil()
}

// applyDefaults sets default values for configuration
func (m *Manager) applyDefaults() {
	if m.config == nil {
		return
	}

	d := &m.config.Defaults

	if d.Workers == 0 {
		d.Workers = runtime.NumCPU()
	}

	if d.Partitioner == "" {
		d.Partitioner = string(chunk.KindStatic)
	}

	if d.MinChunkSize == 0 {
		d.MinChunkSize = 1
	}

	if d.Size == 0 {
		d.Size = 1000
	}

	if d.Timeout == 0 {
		d.Timeout = 30 * time.Second
	}

	if d.OutputFormat == "" {
		d.OutputFormat = "table"
	}
}
