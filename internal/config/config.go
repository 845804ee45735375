package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	fileName    = "config"
	fileType    = "yaml"
	homeDirName = ".oasref"
	envPrefix   = "OASREF"
)

// Keys recognized in the config file.
const (
	// KeyClassName overrides the default class name recorded on added
	// references.
	KeyClassName = "class-name"
	// KeyTimeout sets the download timeout, e.g. "45s".
	KeyTimeout = "timeout"
)

// settingChecks maps each recognized key to its value check. Keys outside
// this map are rejected by Set.
var settingChecks = map[string]func(string) error{
	KeyClassName: func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("class name must not be empty")
		}
		return nil
	},
	KeyTimeout: func(value string) error {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("timeout must be a duration such as %q: %w", "45s", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		return nil
	},
}

// KnownKeys lists the recognized config keys in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(settingChecks))
	for key := range settingChecks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ValidateKey rejects keys outside the recognized set.
func ValidateKey(key string) error {
	if _, ok := settingChecks[key]; !ok {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(KnownKeys(), ", "))
	}
	return nil
}

func validateSetting(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return settingChecks[key](value)
}

// Dir returns the path to the config directory (~/.oasref/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", homeDirName)
	}
	return filepath.Join(home, homeDirName)
}

// FilePath returns the full path to the config file (~/.oasref/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Duration returns a config value parsed as a duration, zero if not set.
func Duration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Set validates a key-value pair and saves it to the config file, creating
// the directory and file as needed.
func Set(key, value string) error {
	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", Dir(), err)
	}

	viper.Set(key, value)
	if err := viper.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
