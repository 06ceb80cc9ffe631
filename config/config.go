// Package config is responsible for loading the program configuration
// from the config file and resolving the application file paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

const Version = "v1.0.0"

var (
	configDir      = "trainlog"
	configFileName = "config.yml"
	dbFileName     = "trainlog.db"
	statusFileName = "status.json"
	logFileName    = "trainlog.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

var once sync.Once

const (
	keyNotify           = "notify"
	keyWeightUnit       = "weight_unit"
	keySaveCmd          = "save_cmd"
	keyDarkTheme        = "dark_theme"
	keyCheckpointMaxAge = "checkpoint_max_age"
	keyPrograms         = "programs"
)

const defaultCheckpointMaxAge = 24 * time.Hour

// ProgramSpec is a user-defined training program from the config file.
type ProgramSpec struct {
	ID        string   `mapstructure:"id"`
	Name      string   `mapstructure:"name"`
	Exercises []string `mapstructure:"exercises"`
}

// Config represents the program configuration derived from the config
// file.
type Config struct {
	Notify           bool
	WeightUnit       string
	SaveCmd          string
	DarkTheme        bool
	CheckpointMaxAge time.Duration
	Programs         []ProgramSpec
	PathToConfig     string
	PathToDB         string
}

// DBFilePath returns the path to the database file.
func DBFilePath() string {
	return dbFilePath
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath() string {
	return configFilePath
}

// StatusFilePath returns the path to the status file.
func StatusFilePath() string {
	return statusFilePath
}

// LogFilePath returns the path to the log file.
func LogFilePath() string {
	return logFilePath
}

// InitializePaths resolves all application file paths through XDG. A
// TRAINLOG_ENV value suffixes the file names so that development data
// stays separate.
func InitializePaths() {
	appEnv := strings.TrimSpace(os.Getenv("TRAINLOG_ENV"))
	if appEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", appEnv)
		dbFileName = fmt.Sprintf("trainlog_%s.db", appEnv)
		statusFileName = fmt.Sprintf("status_%s.json", appEnv)
		logFileName = fmt.Sprintf("trainlog_%s.log", appEnv)
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
	statusFilePath = filepath.Join(dataDir, statusFileName)
	logFilePath = filepath.Join(dataDir, logFileName)
}

func setDefaults() {
	viper.SetDefault(keyNotify, true)
	viper.SetDefault(keyWeightUnit, "kg")
	viper.SetDefault(keySaveCmd, "")
	viper.SetDefault(keyDarkTheme, false)
	viper.SetDefault(keyCheckpointMaxAge, defaultCheckpointMaxAge)
}

// Init loads the configuration file, creating one with the defaults on
// first run.
func Init() (*Config, error) {
	var initErr error

	cfg := &Config{}

	once.Do(func() {
		InitializePaths()

		viper.SetConfigName(strings.TrimSuffix(configFileName, ".yml"))
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Dir(configFilePath))

		setDefaults()

		if err := viper.ReadInConfig(); err != nil {
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				initErr = err
				return
			}

			if err := viper.SafeWriteConfigAs(configFilePath); err != nil {
				initErr = err
				return
			}
		}
	})

	if initErr != nil {
		return nil, initErr
	}

	cfg.Notify = viper.GetBool(keyNotify)
	cfg.WeightUnit = viper.GetString(keyWeightUnit)
	cfg.SaveCmd = viper.GetString(keySaveCmd)
	cfg.DarkTheme = viper.GetBool(keyDarkTheme)
	cfg.CheckpointMaxAge = viper.GetDuration(keyCheckpointMaxAge)
	cfg.PathToConfig = configFilePath
	cfg.PathToDB = dbFilePath

	if cfg.CheckpointMaxAge <= 0 {
		cfg.CheckpointMaxAge = defaultCheckpointMaxAge
	}

	err := viper.UnmarshalKey(keyPrograms, &cfg.Programs)
	if err != nil {
		return nil, fmt.Errorf("invalid programs in config file: %w", err)
	}

	return cfg, nil
}
