// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/internal/workspace"
	"github.com/joomcode/errorx"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "COMET"

	// DefaultDownloadDirName is the workspace directory updates are downloaded to
	DefaultDownloadDirName = "Update"
	DefaultStateDirName    = "state"

	DefaultTimeout    = 30 * time.Minute
	DefaultRetryDelay = 2 * time.Second
	DefaultMaxRetries = 3
)

var supportedChecksumAlgorithms = []string{"md5", "sha256", "sha512"}

// Config holds the global configuration for the application.
type Config struct {
	Log    logx.LoggingConfig `yaml:"log" json:"log"`
	Update UpdateConfig       `yaml:"update" json:"update"`
}

// ChecksumConfig is the expected digest of the update package.
type ChecksumConfig struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"`
	Value     string `yaml:"value" json:"value"`
}

// UpdateConfig represents the `update` configuration block.
type UpdateConfig struct {
	Source         string         `yaml:"source" json:"source"`
	DownloadDir    string         `yaml:"downloadDir" json:"downloadDir"`
	ExecutablePath string         `yaml:"executablePath" json:"executablePath"`
	PackageFile    string         `yaml:"packageFile" json:"packageFile"`
	AutoUpdate     bool           `yaml:"autoUpdate" json:"autoUpdate"`
	Timeout        time.Duration  `yaml:"timeout" json:"timeout"`
	RetryDelay     time.Duration  `yaml:"retryDelay" json:"retryDelay"`
	MaxRetries     uint64         `yaml:"maxRetries" json:"maxRetries"`
	Checksum       ChecksumConfig `yaml:"checksum" json:"checksum"`
	LockFile       string         `yaml:"lockFile" json:"lockFile"`
	StateDir       string         `yaml:"stateDir" json:"stateDir"`
}

// Validate checks the fields that are not validated by the update session itself.
// The source is left to the session so that its errors are reported in order.
func (c UpdateConfig) Validate() error {
	for name, p := range map[string]string{
		"download directory": c.DownloadDir,
		"executable path":    c.ExecutablePath,
		"package file":       c.PackageFile,
		"lock file":          c.LockFile,
		"state directory":    c.StateDir,
	} {
		if p == "" {
			continue
		}
		if clean := filepath.Clean(p); clean == string(filepath.Separator) || clean == "." {
			return errorx.IllegalArgument.New("invalid %s: %s", name, p)
		}
	}

	if c.Timeout < 0 {
		return errorx.IllegalArgument.New("update timeout must not be negative: %s", c.Timeout)
	}

	if c.RetryDelay < 0 {
		return errorx.IllegalArgument.New("update retry delay must not be negative: %s", c.RetryDelay)
	}

	return c.Checksum.Validate()
}

// Validate requires both or neither of algorithm and value, and a supported algorithm.
func (c ChecksumConfig) Validate() error {
	if c.Algorithm == "" && c.Value == "" {
		return nil
	}

	if c.Algorithm == "" || c.Value == "" {
		return errorx.IllegalArgument.New("checksum algorithm and value must be set together")
	}

	for _, a := range supportedChecksumAlgorithms {
		if strings.EqualFold(a, c.Algorithm) {
			return nil
		}
	}

	return errorx.IllegalArgument.New("unsupported checksum algorithm: %s", c.Algorithm)
}

// Validate validates all configuration fields.
func (c Config) Validate() error {
	return c.Update.Validate()
}

// ResolveDefaults fills the fields that depend on the host. Empty download and state directories
// are placed below <tempRoot>/comet and an empty executable path becomes runningExecutable.
func ResolveDefaults(c UpdateConfig, tempRoot string, runningExecutable string) UpdateConfig {
	if strings.TrimSpace(c.DownloadDir) == "" {
		c.DownloadDir = workspace.TempPath(tempRoot, DefaultDownloadDirName)
	}

	if strings.TrimSpace(c.StateDir) == "" {
		c.StateDir = workspace.TempPath(tempRoot, DefaultStateDirName)
	}

	if strings.TrimSpace(c.ExecutablePath) == "" {
		c.ExecutablePath = runningExecutable
	}

	return c
}

var globalConfig = Config{
	Log: logx.LoggingConfig{
		Level:          "Info",
		ConsoleLogging: true,
		FileLogging:    false,
	},
	Update: UpdateConfig{
		AutoUpdate: false,
		Timeout:    DefaultTimeout,
		RetryDelay: DefaultRetryDelay,
		MaxRetries: DefaultMaxRetries,
	},
}

// Initialize loads the configuration from the specified file.
//
// Parameters:
//   - path: The path to the configuration file.
//
// Returns:
//   - An error if the configuration cannot be loaded.
func Initialize(path string) error {
	if path != "" {
		viper.Reset()
		viper.SetConfigFile(path)
		viper.SetEnvPrefix(EnvPrefix)
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		err := viper.ReadInConfig()
		if err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}

		cfg := defaults()
		if err := viper.Unmarshal(&cfg); err != nil {
			return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
				WithProperty(errorx.PropertyPayload(), path)
		}

		globalConfig = cfg
	}

	return nil
}

// Get returns the loaded configuration.
//
// Returns:
//   - The global configuration.
func Get() Config {
	return globalConfig
}

func Set(c *Config) error {
	if c == nil {
		return errorx.IllegalArgument.New("config cannot be nil")
	}

	globalConfig = *c
	return nil
}

// OverrideUpdateConfig updates the update configuration with provided overrides.
// Empty values are ignored (not applied); AutoUpdate is only ever switched on.
func OverrideUpdateConfig(overrides UpdateConfig) {
	if overrides.Source != "" {
		globalConfig.Update.Source = overrides.Source
	}
	if overrides.DownloadDir != "" {
		globalConfig.Update.DownloadDir = overrides.DownloadDir
	}
	if overrides.ExecutablePath != "" {
		globalConfig.Update.ExecutablePath = overrides.ExecutablePath
	}
	if overrides.PackageFile != "" {
		globalConfig.Update.PackageFile = overrides.PackageFile
	}
	if overrides.AutoUpdate {
		globalConfig.Update.AutoUpdate = true
	}
	if overrides.Timeout > 0 {
		globalConfig.Update.Timeout = overrides.Timeout
	}
	if overrides.Checksum.Algorithm != "" {
		globalConfig.Update.Checksum = overrides.Checksum
	}
	if overrides.LockFile != "" {
		globalConfig.Update.LockFile = overrides.LockFile
	}
	if overrides.StateDir != "" {
		globalConfig.Update.StateDir = overrides.StateDir
	}
}

func defaults() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Info",
			ConsoleLogging: true,
		},
		Update: UpdateConfig{
			Timeout:    DefaultTimeout,
			RetryDelay: DefaultRetryDelay,
			MaxRetries: DefaultMaxRetries,
		},
	}
}
