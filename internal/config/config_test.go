package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("load TOML config", func(t *testing.T) {
		path := writeFile(t, "sheesh.toml", `
[log]
level = "debug"
format = "json"

[output]
format = "yaml"
color = false
comments = true
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("log: got %+v", cfg.Log)
		}
		if cfg.Output.Format != "yaml" || !cfg.Output.Comments {
			t.Errorf("output: got %+v", cfg.Output)
		}
		if cfg.UseColor() {
			t.Error("expected color to be off")
		}
	})

	t.Run("load YAML config", func(t *testing.T) {
		path := writeFile(t, "sheesh.yml", `
log:
  level: warn
output:
  format: json
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Log.Level != "warn" {
			t.Errorf("Expected level 'warn', got '%s'", cfg.Log.Level)
		}
		if cfg.Log.Format != "text" {
			t.Errorf("Expected default log format 'text', got '%s'", cfg.Log.Format)
		}
		if cfg.Output.Format != "json" {
			t.Errorf("Expected output format 'json', got '%s'", cfg.Output.Format)
		}
		if !cfg.UseColor() {
			t.Error("expected color to default to on")
		}
	})

	t.Run("empty file gets defaults", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "empty.yaml", ""))
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if *cfg != *Default() {
			t.Errorf("got %+v, want defaults %+v", cfg, Default())
		}
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown extension", "sheesh.ini", "level=debug", "unsupported config format"},
		{"bad toml", "bad.toml", "[log\nlevel = ", "failed to parse config"},
		{"bad yaml", "bad.yaml", "log: [", "failed to parse config"},
		{"bad level", "lvl.toml", "[log]\nlevel = \"loud\"", "log.level"},
		{"bad log format", "lf.yaml", "log:\n  format: xml", "log.format"},
		{"bad output format", "of.toml", "[output]\nformat = \"xml\"", "output.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestResolve(t *testing.T) {
	explicit := writeFile(t, "a.toml", "[log]\nlevel = \"error\"")
	fromEnv := writeFile(t, "b.yaml", "log:\n  level: debug")

	t.Run("explicit path wins", func(t *testing.T) {
		t.Setenv(EnvVar, fromEnv)
		cfg, err := Resolve(explicit)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Log.Level != "error" {
			t.Errorf("got level %q", cfg.Log.Level)
		}
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv(EnvVar, fromEnv)
		cfg, err := Resolve("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("got level %q", cfg.Log.Level)
		}
	})

	t.Run("defaults when nothing is found", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		chdir(t, t.TempDir())
		cfg, err := Resolve("")
		if err != nil {
			t.Fatal(err)
		}
		if *cfg != *Default() {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("default file in working directory", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "sheesh.toml"), []byte("[output]\nformat = \"json\""), 0644); err != nil {
			t.Fatal(err)
		}
		chdir(t, dir)
		cfg, err := Resolve("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Output.Format != "json" {
			t.Errorf("got format %q", cfg.Output.Format)
		}
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
