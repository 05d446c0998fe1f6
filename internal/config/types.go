package config

import "time"

// Config represents the chunkflow configuration file structure
type Config struct {
	// Defaults contains default settings for kernel runs
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`

	// Profiles maps a profile name to a partitioner preset
	Profiles map[string]ProfileConfig `yaml:"profiles,omitempty" json:"profiles,omitempty"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Workers is the executor size
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	// Partitioner is the default strategy (static, dynamic)
	Partitioner string `yaml:"partitioner,omitempty" json:"partitioner,omitempty"`

	// ChunkSize is the static chunk size (0 = auto)
	ChunkSize int `yaml:"chunkSize,omitempty" json:"chunkSize,omitempty"`

	// MinChunkSize is the dynamic minimum chunk size
	MinChunkSize int `yaml:"minChunkSize,omitempty" json:"minChunkSize,omitempty"`

	// Size is the number of elements for synthetic runs
	Size int `yaml:"size,omitempty" json:"size,omitempty"`

	// Timeout bounds a single command
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`
}

// ProfileConfig is a named partitioner preset
type ProfileConfig struct {
	// Partitioner is the strategy (static, dynamic)
	Partitioner string `yaml:"partitioner" json:"partitioner"`

	// ChunkSize is the chunk size for static or the minimum chunk size for dynamic
	ChunkSize int `yaml:"chunkSize" json:"chunkSize"`

	// Description is free text shown by `config view`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}
