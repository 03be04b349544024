package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "mfastboot", cfg.Tool)
	assert.Equal(t, "servicefile.xml", cfg.Document)
	assert.Equal(t, "flashfile.xml", cfg.FlashDocument)
	assert.True(t, cfg.Integrity.Enabled)
	assert.Equal(t, "md5", cfg.Integrity.Algorithm)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("defaults_without_directory", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "mfastboot", cfg.Tool)
		assert.Empty(t, cfg.Source)
	})

	t.Run("firmware_directory_file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".mflash.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
tool = "fastboot"

[integrity]
algorithm = "sha256"
`), 0644))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "fastboot", cfg.Tool)
		assert.Equal(t, "sha256", cfg.Integrity.Algorithm)
		assert.True(t, cfg.Integrity.Enabled, "unset keys keep their defaults")
		assert.Equal(t, path, cfg.Source)
	})

	t.Run("dotfile_wins_over_plain_name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".mflash.toml"), []byte(`tool = "dot"`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mflash.toml"), []byte(`tool = "plain"`), 0644))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "dot", cfg.Tool)
	})

	t.Run("environment_overrides_file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mflash.toml"), []byte(`tool = "fastboot"`), 0644))
		t.Setenv("MFLASH_TOOL", "/opt/moto/mfastboot")
		t.Setenv("MFLASH_INTEGRITY__ENABLED", "false")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "/opt/moto/mfastboot", cfg.Tool)
		assert.False(t, cfg.Integrity.Enabled)
	})

	t.Run("invalid_file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mflash.toml"), []byte("tool = ["), 0644))

		_, err := Load(dir)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestOverride(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	base.Source = "/fw/.mflash.toml"

	cfg, err := Override(base, map[string]interface{}{
		"integrity.enabled": false,
		"document":          "flashfile.xml",
	})
	require.NoError(t, err)
	assert.False(t, cfg.Integrity.Enabled)
	assert.Equal(t, "flashfile.xml", cfg.Document)
	assert.Equal(t, "mfastboot", cfg.Tool)
	assert.Equal(t, "/fw/.mflash.toml", cfg.Source)
	assert.True(t, base.Integrity.Enabled, "base is not modified")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty_tool", func(c *Config) { c.Tool = " " }},
		{"empty_document", func(c *Config) { c.Document = "" }},
		{"empty_flash_document", func(c *Config) { c.FlashDocument = "" }},
		{"unknown_algorithm", func(c *Config) { c.Integrity.Algorithm = "crc32" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigValid))
		})
	}
}

func TestToTOML(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	data, err := ToTOML(cfg)
	require.NoError(t, err)
	out := string(data)
	assert.Regexp(t, `tool = ['"]mfastboot['"]`, out)
	assert.Contains(t, out, "[integrity]")
	assert.NotContains(t, out, "Source")
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, `# tool = "mfastboot"`)
	assert.Contains(t, content, "\n[integrity]\n")
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line %q should be commented", line)
	}
}
