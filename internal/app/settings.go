package app

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read as a setting, e.g. ALARM_BRIDGE_LOG_LEVEL.
const EnvPrefix = "ALARM_BRIDGE"

// Settings are the process-wide options. Per-run options (client, files, modes) are flags only.
type Settings struct {
	Log      LogSettings      `mapstructure:"log"`
	Profiles ProfileSettings  `mapstructure:"profiles"`
	DB       DatabaseSettings `mapstructure:"db"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `mapstructure:"level"`
}

// ProfileSettings locates an optional client profile file overlaid on the built-in profiles.
type ProfileSettings struct {
	File string `mapstructure:"file"`
}

// DatabaseSettings holds the connection string of the optional Postgres row source.
type DatabaseSettings struct {
	URL string `mapstructure:"url"`
}

// settingFlags maps setting keys to the persistent root flags that override them.
var settingFlags = map[string]string{
	"log.level":     "log-level",
	"profiles.file": "profiles",
	"db.url":        "source-db",
}

// LoadSettings resolves settings from defaults, the optional settings file, the environment
// and the command flags, in increasing priority.
func LoadSettings(cmd *cobra.Command, settingsFile string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("profiles.file", "")
	v.SetDefault("db.url", "")

	if settingsFile != "" {
		if _, err := osStatFunc(settingsFile); err != nil {
			if os.IsNotExist(err) {
				return nil, eris.Wrapf(ErrUsage, "settings file '%s' not found", settingsFile)
			}
			return nil, eris.Wrapf(err, "failed to stat settings file '%s'", settingsFile)
		}
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, eris.Wrapf(err, "failed to read settings file '%s'", settingsFile)
		}
	}

	for key, name := range settingFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, eris.Wrapf(err, "failed to bind flag --%s", name)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, eris.Wrap(err, "failed to decode settings")
	}
	return &s, nil
}
