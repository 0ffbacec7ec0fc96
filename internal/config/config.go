// Package config loads timespan's configuration and resolves the filesystem
// paths for the config file, the database, and the log.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Estimator EstimatorConfig
		Settings  SettingsConfig
	}

	// EstimatorConfig is the weight table for the commit duration
	// estimator.
	EstimatorConfig struct {
		CodeBonus      time.Duration
		DocBonus       time.Duration
		CodeExtensions []string
		DocExtensions  []string
	}

	// SettingsConfig holds general behaviour settings.
	SettingsConfig struct {
		// EntryCmd is run after a time entry is recorded.
		EntryCmd  string
		WeekStart string
	}
)

const Version = "v0.3.0"

var (
	configDir      = "timespan"
	configFileName = "config.yml"
	dbFileName     = "timespan.db"
	logFileName    = "timespan.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the XDG paths for the config file, database, and
// log file. A TIMESPAN_ENV value isolates the files per environment.
func InitializePaths() {
	env := strings.TrimSpace(os.Getenv("TIMESPAN_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("timespan_%s.db", env)
		logFileName = fmt.Sprintf("timespan_%s.log", env)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	cfg.normalise()

	return cfg, nil
}

// Option is a function that modifies Config.
type Option func(*Config) error

func defaultConfig() *Config {
	return &Config{
		Estimator: EstimatorConfig{
			CodeBonus: 5 * time.Minute,
			DocBonus:  1 * time.Minute,
			CodeExtensions: []string{
				"go", "rs", "py", "js", "ts", "java", "c", "cpp", "h",
				"rb", "php", "cs", "kt", "swift",
			},
			DocExtensions: []string{
				"md", "txt", "rst", "adoc", "html", "css",
			},
		},
		Settings: SettingsConfig{
			WeekStart: "monday",
		},
	}
}

// normalise floors negative estimator weights at zero so a misconfigured
// weight table can never pull an estimate below the base duration.
func (c *Config) normalise() {
	if c.Estimator.CodeBonus < 0 {
		c.Estimator.CodeBonus = 0
	}

	if c.Estimator.DocBonus < 0 {
		c.Estimator.DocBonus = 0
	}
}

// WeekStart maps the configured week start day to a time.Weekday, defaulting
// to Monday for unrecognised values.
func (c *Config) WeekStart() time.Weekday {
	switch strings.ToLower(c.Settings.WeekStart) {
	case "sunday":
		return time.Sunday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}
