package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

func TestLoad_CreatesDefaultFromEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, "VideoComments", cfg.CommentsRoot)
	assert.Equal(t, []model.Channel{"India", "Pakistan", "Bangladesh"}, cfg.Labels())
	assert.Equal(t, dataset.PolicyKeep, cfg.Policy())
	assert.Equal(t, 3, cfg.MaxChannelCount)
	assert.Equal(t, "clustering", cfg.Corpus.Mode)

	_, upgraded := cfg.Upgraded()
	assert.False(t, upgraded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	data := "comments_root: 'D:\\dumps\\yt'\n" +
		"channels:\n  - label: ' Nepal '\n  - label: ''\n" +
		"unknown_folders: SKIP\n" +
		"config_version: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "D:/dumps/yt", cfg.CommentsRoot)
	require.Len(t, cfg.Channels, 1)
	assert.Equal(t, "Nepal", cfg.Channels[0].Label)
	assert.Equal(t, []dataset.Rule{{Label: "Nepal"}}, cfg.Rules())
	assert.Equal(t, dataset.PolicySkip, cfg.Policy())
	assert.Equal(t, 10, cfg.TopUsers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MigratesLegacyCommentsFolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	data := "comments_folder: old/dumps\nconfig_version: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "old/dumps", cfg.CommentsRoot)
	assert.Empty(t, cfg.LegacyCommentsFolder)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)

	backup, upgraded := cfg.Upgraded()
	require.True(t, upgraded)
	orig, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, data, string(orig))

	// le fichier réécrit est à jour et ne contient plus la clé obsolète
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(b, &raw))
	assert.Equal(t, "old/dumps", raw["comments_root"])
	assert.Equal(t, CurrentConfigVersion, raw["config_version"])
	assert.NotContains(t, raw, "comments_folder")

	// second chargement : plus de migration
	again, err := Load(path)
	require.NoError(t, err)
	_, upgraded = again.Upgraded()
	assert.False(t, upgraded)
	assert.Equal(t, "old/dumps", again.CommentsRoot)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := defaultConfig()
	env := map[string]string{
		EnvRoot:      "/data/comments/",
		EnvLogLevel:  " DEBUG ",
		EnvOutputDir: "  ",
	}
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, "/data/comments", cfg.CommentsRoot)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ".", cfg.OutputDir)
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name     string
		mutate   func(c *Config)
		wantErr  bool
		warnings int
	}{
		{"ok", func(c *Config) {}, false, 0},
		{"missing root", func(c *Config) { c.CommentsRoot = filepath.Join(root, "absent") }, false, 1},
		{"root is a file", func(c *Config) { c.CommentsRoot = file }, true, 0},
		{"output is a file", func(c *Config) { c.OutputDir = file }, true, 0},
		{"bad policy", func(c *Config) { c.UnknownFolders = "drop" }, true, 0},
		{"bad corpus mode", func(c *Config) { c.Corpus.Mode = "fast" }, true, 0},
		{"duplicate label", func(c *Config) {
			c.Channels = append(c.Channels, ChannelRule{Label: "india"})
		}, true, 0},
		{"no rules", func(c *Config) { c.Channels = nil }, false, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := defaultConfig()
			c.CommentsRoot = root
			c.OutputDir = root
			tc.mutate(c)
			warnings, err := c.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, warnings, tc.warnings)
		})
	}
}
