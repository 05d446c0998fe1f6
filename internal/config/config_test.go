package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aryankumar/chunkflow/internal/util"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestManager_Load(t *testing.T) {
	tests := []struct {
		name            string
		configContent   string
		wantErr         bool
		wantWorkers     int
		wantPartitioner string
		wantTimeout     time.Duration
		wantProfiles    int
	}{
		{
			name: "full config",
			configContent: `
defaults:
  workers: 8
  partitioner: dynamic
  minChunkSize: 62
  size: 1000
  timeout: 60s
  outputFormat: json
profiles:
  fine:
    partitioner: dynamic
    chunkSize: 1
  coarse:
    partitioner: static
    chunkSize: 0
    description: one chunk per worker
`,
			wantWorkers:     8,
			wantPartitioner: "dynamic(62)",
			wantTimeout:     60 * time.Second,
			wantProfiles:    2,
		},
		{
			name: "minimal config with defaults",
			configContent: `
defaults:
  workers: 3
`,
			wantWorkers:     3,
			wantPartitioner: "static(auto)",
			wantTimeout:     30 * time.Second,
		},
		{
			name:            "empty config",
			configContent:   "",
			wantWorkers:     runtime.NumCPU(),
			wantPartitioner: "static(auto)",
			wantTimeout:     30 * time.Second,
		},
		{
			name:          "invalid yaml",
			configContent: "defaults: [unclosed",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := NewManager(writeConfig(t, tt.configContent))
			cfg, err := mgr.Load()

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cfg.Defaults.Workers != tt.wantWorkers {
				t.Errorf("expected %d workers, got %d", tt.wantWorkers, cfg.Defaults.Workers)
			}
			if cfg.Defaults.Timeout != tt.wantTimeout {
				t.Errorf("expected timeout %v, got %v", tt.wantTimeout, cfg.Defaults.Timeout)
			}
			if len(cfg.Profiles) != tt.wantProfiles {
				t.Errorf("expected %d profiles, got %d", tt.wantProfiles, len(cfg.Profiles))
			}

			part, err := mgr.Partitioner("")
			if err != nil {
				t.Fatalf("Partitioner() failed: %v", err)
			}
			if part.String() != tt.wantPartitioner {
				t.Errorf("expected partitioner %s, got %s", tt.wantPartitioner, part)
			}

			if err := mgr.Validate(); err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
		})
	}
}

func TestManager_Load_MissingFile(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg, err := mgr.Load()
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
	if cfg.Defaults.OutputFormat != "table" {
		t.Errorf("expected default output table, got %q", cfg.Defaults.OutputFormat)
	}
	if cfg.Defaults.Size != 1000 {
		t.Errorf("expected default size 1000, got %d", cfg.Defaults.Size)
	}
}

func TestManager_Profiles(t *testing.T) {
	mgr := NewManager(writeConfig(t, ""))
	if _, err := mgr.Load(); err != nil {
		t.Fatal(err)
	}

	if err := mgr.SetProfile("guided", ProfileConfig{Partitioner: "dynamic", ChunkSize: 16}); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}
	if err := mgr.SetProfile("auto", ProfileConfig{Partitioner: "static"}); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}

	if names := mgr.ProfileNames(); len(names) != 2 || names[0] != "auto" || names[1] != "guided" {
		t.Errorf("unexpected profile names %v", names)
	}

	part, err := mgr.Partitioner("guided")
	if err != nil {
		t.Fatal(err)
	}
	if part.String() != "dynamic(16)" {
		t.Errorf("expected dynamic(16), got %s", part)
	}

	if _, err := mgr.Partitioner("nope"); !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown profile, got %v", err)
	}

	err = mgr.SetProfile("broken", ProfileConfig{Partitioner: "dynamic", ChunkSize: 0})
	if !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for bad profile, got %v", err)
	}
	if err := mgr.SetProfile("", ProfileConfig{Partitioner: "static"}); err == nil {
		t.Error("expected error for empty profile name")
	}

	mgr.RemoveProfile("guided")
	if _, ok := mgr.GetProfile("guided"); ok {
		t.Error("profile should be removed")
	}
}

func TestManager_Validate(t *testing.T) {
	mgr := NewManager(writeConfig(t, `
defaults:
  workers: -1
  outputFormat: xml
  partitioner: guided
`))
	if _, err := mgr.Load(); err != nil {
		t.Fatal(err)
	}

	err := mgr.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var multi *util.MultiError
	if !errors.As(err, &multi) {
		t.Fatalf("expected MultiError, got %T", err)
	}
	if len(multi.Errors) != 3 {
		t.Errorf("expected 3 validation errors, got %d: %v", len(multi.Errors), err)
	}
	if !errors.Is(err, util.ErrInvalidConfig) {
		t.Error("expected errors to match ErrInvalidConfig")
	}
}

func TestManager_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	mgr := NewManager(path)
	if _, err := mgr.Load(); err != nil {
		t.Fatal(err)
	}
	mgr.GetConfig().Defaults.Workers = 6
	if err := mgr.SetProfile("fine", ProfileConfig{Partitioner: "dynamic", ChunkSize: 4}); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewManager(path)
	cfg, err := reloaded.Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cfg.Defaults.Workers != 6 {
		t.Errorf("expected 6 workers after reload, got %d", cfg.Defaults.Workers)
	}
	p, ok := reloaded.GetProfile("fine")
	if !ok || p.ChunkSize != 4 || p.Partitioner != "dynamic" {
		t.Errorf("unexpected reloaded profile %+v (found=%v)", p, ok)
	}
	if reloaded.ConfigFileUsed() != path {
		t.Errorf("expected config file %s, got %s", path, reloaded.ConfigFileUsed())
	}
}
