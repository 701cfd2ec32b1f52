package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/infohazards/indranet-explorer/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

type fixedConfigDir string

func (d fixedConfigDir) ConfigDir() (string, error) { return string(d), nil }

// newTestCommand returns a root command with flags bound and the working
// directory moved to an empty temp dir so "./config.yaml" is never picked up.
func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{"INDRANET_LOG_LEVEL", "INDRANET_LOG_FORMAT", "INDRANET_ATOMIC_WRITE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cmd := &cobra.Command{Use: "indranet-explorer"}
	BindFlags(cmd)
	return cmd
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestInitConfigDefaults tests that defaults apply without a config file
func TestInitConfigDefaults(t *testing.T) {
	cmd := newTestCommand(t)

	cfg, err := InitConfig(cmd, fixedConfigDir(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, model.DefaultConfig(), *cfg)
}

// TestInitConfigFromFile tests loading config.yaml from the config directory
func TestInitConfigFromFile(t *testing.T) {
	cmd := newTestCommand(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
log_level: debug
log_format: json
atomic_write: true
`)

	cfg, err := InitConfig(cmd, fixedConfigDir(dir))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.AtomicWrite)
}

// TestInitConfigAcceptsCamelCase tests camelCase key aliases
func TestInitConfigAcceptsCamelCase(t *testing.T) {
	cmd := newTestCommand(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
logLevel: warn
atomicWrite: true
`)

	cfg, err := InitConfig(cmd, fixedConfigDir(dir))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.AtomicWrite)
}

// TestInitConfigAcceptsFlagSpelling tests kebab-case keys matching the flags
func TestInitConfigAcceptsFlagSpelling(t *testing.T) {
	cmd := newTestCommand(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
log-level: warn
log-format: json
atomic-write: true
`)

	cfg, err := InitConfig(cmd, fixedConfigDir(dir))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.AtomicWrite)
}

func TestCheckConfigKeys(t *testing.T) {
	assert.NoError(t, checkConfigKeys(""))

	tests := []struct {
		name    string
		content string
		wantErr []string
	}{
		{name: "snake", content: "log_level: debug\n"},
		{name: "camel", content: "logFormat: json\n"},
		{name: "kebab", content: "atomic-write: true\n"},
		{name: "one key per style", content: "log_level: debug\nlogFormat: json\natomic-write: true\n"},
		{name: "empty file", content: ""},
		{
			name:    "kebab and snake",
			content: "log-level: warn\nlog_level: debug\n",
			wantErr: []string{`"log-level" (kebab-case)`, `"log_level" (snake_case)`},
		},
		{
			name:    "kebab and camel",
			content: "atomicWrite: true\natomic-write: false\n",
			wantErr: []string{`"atomic-write" (kebab-case)`, `"atomicWrite" (camelCase)`},
		},
		{
			name:    "unknown",
			content: "logLevels: debug\n",
			wantErr: []string{`invalid key "logLevels"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			err := checkConfigKeys(path)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

// TestInitConfigRejectsMixedNamingStyles tests duplicate key detection
func TestInitConfigRejectsMixedNamingStyles(t *testing.T) {
	cmd := newTestCommand(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
log_level: debug
logLevel: warn
`)

	cfg, err := InitConfig(cmd, fixedConfigDir(dir))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "logLevel")
}

// TestInitConfigRejectsUnknownKeys tests that typos are reported
func TestInitConfigRejectsUnknownKeys(t *testing.T) {
	cmd := newTestCommand(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
cache_dir: /tmp/elsewhere
`)

	_, err := InitConfig(cmd, fixedConfigDir(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid key "cache_dir"`)
}

// TestInitConfigInvalidYAML tests handling of a broken config file
func TestInitConfigInvalidYAML(t *testing.T) {
	cmd := newTestCommand(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
log_level: [invalid yaml syntax
`)

	_, err := InitConfig(cmd, fixedConfigDir(dir))
	assert.Error(t, err)
}

// TestInitConfigPriority tests flags over env over file
func TestInitConfigPriority(t *testing.T) {
	cmd := newTestCommand(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
log_level: debug
log_format: json
`)
	t.Setenv("INDRANET_LOG_LEVEL", "warn")
	t.Setenv("INDRANET_LOG_FORMAT", "text")
	require.NoError(t, cmd.PersistentFlags().Set("log-level", "error"))

	cfg, err := InitConfig(cmd, fixedConfigDir(dir))
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

// TestInitConfigExplicitFile tests --config
func TestInitConfigExplicitFile(t *testing.T) {
	cmd := newTestCommand(t)
	path := writeConfig(t, t.TempDir(), "atomic_write: true\n")
	require.NoError(t, cmd.PersistentFlags().Set("config", path))

	cfg, err := InitConfig(cmd, fixedConfigDir(t.TempDir()))
	require.NoError(t, err)
	assert.True(t, cfg.AtomicWrite)

	require.NoError(t, cmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))
	_, err = InitConfig(cmd, fixedConfigDir(t.TempDir()))
	assert.Error(t, err)
}

// TestInitConfigFile tests config file generation
func TestInitConfigFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "indranet-explorer")

	path, err := InitConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
	assert.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# indranet-explorer configuration file")

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, model.DefaultConfig(), cfg)

	// generated files pass validation
	assert.NoError(t, checkConfigKeys(path))

	// never overwritten
	_, err = InitConfigFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
