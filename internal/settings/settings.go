// Package settings resolves invocation settings from defaults, the environment and flags.
package settings

import (
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every environment variable read by Settings.
const EnvPrefix = "CONDUCTOR"

// Setting keys. Flags with the same names are bound to them.
const (
	KeyConfig   = "config"
	KeyTags     = "tags"
	KeyVerbose  = "verbose"
	KeyLogLevel = "log_level"
)

// DefaultConfigFile is the config file name searched for when none is given.
const DefaultConfigFile = "conductor.yml"

// Settings layers defaults < CONDUCTOR_* environment < bound flags.
type Settings struct {
	v *viper.Viper
}

// New creates Settings with defaults and environment lookup configured.
func New() *Settings {
	v := viper.New()

	v.SetDefault(KeyConfig, DefaultConfigFile)
	v.SetDefault(KeyTags, []string{})
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Settings{v: v}
}

// BindFlags binds the flags named after the setting keys. Flags that are
// missing from fs are skipped.
func (s *Settings) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range []string{KeyConfig, KeyTags, KeyVerbose} {
		flag := fs.Lookup(key)
		if flag == nil {
			continue
		}
		if err := s.v.BindPFlag(key, flag); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to bind flag"), "flag", key)
		}
	}
	return nil
}

// ConfigFile returns the config file name or path.
func (s *Settings) ConfigFile() string {
	return s.v.GetString(KeyConfig)
}

// Tags returns the requested tags. Comma separated values are split, so
// CONDUCTOR_TAGS=api,web and --tags api --tags web are equivalent.
func (s *Settings) Tags() []string {
	var tags []string
	for _, item := range s.v.GetStringSlice(KeyTags) {
		for tag := range strings.SplitSeq(item, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// LogLevel returns debug when verbose is set and the configured level otherwise.
// Unknown level names fall back to info.
func (s *Settings) LogLevel() slog.Level {
	if s.v.GetBool(KeyVerbose) {
		return slog.LevelDebug
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s.v.GetString(KeyLogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
