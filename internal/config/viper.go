package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

const (
	keyCodeBonus      = "estimator.code_bonus"
	keyDocBonus       = "estimator.doc_bonus"
	keyCodeExtensions = "estimator.code_extensions"
	keyDocExtensions  = "estimator.doc_extensions"
	keyEntryCmd       = "settings.entry_cmd"
	keyWeekStart      = "settings.week_start"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// config file, writing the defaults on first run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		v.SetDefault(keyCodeBonus, c.Estimator.CodeBonus)
		v.SetDefault(keyDocBonus, c.Estimator.DocBonus)
		v.SetDefault(keyCodeExtensions, c.Estimator.CodeExtensions)
		v.SetDefault(keyDocExtensions, c.Estimator.DocExtensions)
		v.SetDefault(keyEntryCmd, c.Settings.EntryCmd)
		v.SetDefault(keyWeekStart, c.Settings.WeekStart)

		err := v.ReadInConfig()
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return errReadConfig.Wrap(err)
			}

			if err := v.WriteConfig(); err != nil {
				return errWriteConfig.Wrap(err)
			}
		}

		c.Estimator.CodeBonus = v.GetDuration(keyCodeBonus)
		c.Estimator.DocBonus = v.GetDuration(keyDocBonus)
		c.Estimator.CodeExtensions = v.GetStringSlice(keyCodeExtensions)
		c.Estimator.DocExtensions = v.GetStringSlice(keyDocExtensions)
		c.Settings.EntryCmd = v.GetString(keyEntryCmd)
		c.Settings.WeekStart = v.GetString(keyWeekStart)

		return nil
	}
}
