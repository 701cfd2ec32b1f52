package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/infohazards/indranet-explorer/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// configKeys maps every accepted spelling of a config file key to its
// snake_case name. A key may also be written in camelCase or in the
// kebab-case of its flag.
var configKeys = func() map[string]string {
	m := make(map[string]string, len(flagKeys)*3)
	for flag, key := range flagKeys {
		m[key] = key
		m[flag] = key
		m[camelCase(key)] = key
	}
	return m
}()

func camelCase(key string) string {
	parts := strings.Split(key, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func spelling(key string) string {
	switch {
	case strings.Contains(key, "_"):
		return "snake_case"
	case strings.Contains(key, "-"):
		return "kebab-case"
	default:
		return "camelCase"
	}
}

// aliasConfigKeys points the alternative spellings at the snake_case keys.
// Viper only moves values it has already loaded, so call it after reading.
func aliasConfigKeys(v *viper.Viper) {
	for alt, key := range configKeys {
		if alt != key {
			v.RegisterAlias(alt, key)
		}
	}
}

// checkConfigKeys rejects unknown keys and a key written in two spellings.
func checkConfigKeys(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var doc map[string]interface{}
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	written := make([]string, 0, len(doc))
	for k := range doc {
		written = append(written, k)
	}
	sort.Strings(written)

	first := make(map[string]string, len(written))
	for _, k := range written {
		key, ok := configKeys[k]
		if !ok {
			return fmt.Errorf("config file %s contains invalid key %q", path, k)
		}
		if prev, dup := first[key]; dup {
			return fmt.Errorf("config file %s sets %q twice, as %q (%s) and %q (%s)",
				path, key, prev, spelling(prev), k, spelling(k))
		}
		first[key] = k
	}
	return nil
}

// ConfigDirResolver locates the per-user configuration directory.
type ConfigDirResolver interface {
	ConfigDir() (string, error)
}

// getConfigPaths returns the config directory paths in priority order
func getConfigPaths(dirs ConfigDirResolver) []string {
	var paths []string
	if dir, err := dirs.ConfigDir(); err == nil {
		paths = append(paths, dir)
	} else {
		logrus.WithError(err).Debug("no per-user config directory")
	}
	paths = append(paths, ".")
	return paths
}

// InitConfig initializes Viper configuration with proper priority:
// 1. CLI flags (highest priority)
// 2. Environment variables
// 3. Config file (lowest priority)
func InitConfig(cmd *cobra.Command, dirs ConfigDirResolver) (*model.Config, error) {
	v := viper.New()

	explicit := ""
	if f := lookupFlag(cmd, "config"); f != nil {
		explicit = f.Value.String()
	}
	if explicit != "" {
		// a file asked for by name must exist
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, path := range getConfigPaths(dirs) {
			v.AddConfigPath(path)
		}
	}

	SetViperEnvSettings(v)
	SetViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// config file not found is ok, we'll use defaults + env vars + flags
	}

	if err := checkConfigKeys(v.ConfigFileUsed()); err != nil {
		return nil, err
	}
	aliasConfigKeys(v)

	for name, key := range flagKeys {
		f := lookupFlag(cmd, name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}

	var config model.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// InitConfigFile writes a default config file into dir and returns its path.
// An existing file is never overwritten.
func InitConfigFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, configFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	header := `# indranet-explorer configuration file
# Generated automatically - customize as needed
#
# log_level: trace, debug, info, warn, error
# log_format: text, json
# atomic_write: write data.json through a temporary file and rename
#

`

	if err := os.WriteFile(configPath, []byte(header+string(yamlData)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return configPath, nil
}
