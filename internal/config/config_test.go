package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.yml")
	cfg := &Config{
		SourceDir:   "src",
		OutputDir:   "out",
		Roots:       map[string]string{"lib": "../shared"},
		Defines:     map[string]string{"format": "latex"},
		MaxDepth:    50,
		MaxIncludes: 10,
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "scribe.yml"))
	assert.Error(t, err)
}

func TestLoadWithEnv_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "scribe.yml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.SourceDir)
	assert.Equal(t, "build", cfg.OutputDir)
}

func TestLoadWithEnv_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.yml")
	require.NoError(t, os.WriteFile(path, []byte("source_dir: [broken"), 0644))

	_, err := LoadWithEnv(path)
	assert.Error(t, err)
}

func TestLoadWithEnv_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.yml")
	require.NoError(t, (&Config{SourceDir: "src", OutputDir: "out"}).Save(path))

	t.Setenv("SCRIBE_SOURCE_DIR", "elsewhere")
	t.Setenv("SCRIBE_OUTPUT_DIR", "")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.SourceDir)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty is valid", Config{}, ""},
		{"negative depth", Config{MaxDepth: -1}, "max_depth"},
		{"negative includes", Config{MaxIncludes: -1}, "max_includes"},
		{"empty root name", Config{Roots: map[string]string{" ": "/x"}}, "roots"},
		{"empty define name", Config{Defines: map[string]string{"": "v"}}, "defines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
