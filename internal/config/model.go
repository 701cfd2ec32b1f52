package config

import (
	"strings"

	"github.com/infohazards/indranet-explorer/constant"
	"github.com/infohazards/indranet-explorer/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"log-format":   "log_format",
	"atomic-write": "atomic_write",
}

// BindFlags binds CLI flags to the cobra command
func BindFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()

	cmd.PersistentFlags().String("log-level", defaults.LogLevel, "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", defaults.LogFormat, "Log format (text, json)")
	cmd.PersistentFlags().Bool("atomic-write", defaults.AtomicWrite, "Write to a temporary file and rename it over the data file")
	cmd.PersistentFlags().String("config", "", "Config file to use instead of searching the config directory")
}

// SetViperDefaults sets default values in viper configuration
func SetViperDefaults(v *viper.Viper) {
	defaults := model.DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("atomic_write", defaults.AtomicWrite)
}

// SetViperEnvSettings configures viper environment variable settings
func SetViperEnvSettings(v *viper.Viper) {
	v.SetEnvPrefix(constant.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// lookupFlag finds name among the command's own, persistent and inherited
// flags; persistent flags are only merged into Flags() once cobra executes.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}
