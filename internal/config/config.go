// Package config loads toolbox settings from an optional TOML file and TOOLBOX_*
// environment variables. Environment variables override the file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dendrascience/toolbox/menu"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// FileName is the name of the config file looked up in the home directory.
const FileName = ".toolbox.toml"

// Default values.
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultExitKey     = "x"
	DefaultPingTimeout = 5 * time.Second
	DefaultDownloadDir = "."
)

// Config holds all toolbox settings.
type Config struct {
	Log    LogConfig
	Prompt PromptConfig
	Net    NetConfig
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	// Level is a zap level name such as "debug" or "warn".
	Level string
	// Format is "console" or "json".
	Format string
}

// PromptConfig holds the defaults for interactive menus.
type PromptConfig struct {
	ExitKey         string
	OptionSeparator string
	CursorPrefix    string
	RetryOnInvalid  bool
}

// Options converts the settings into menu prompt options.
func (p PromptConfig) Options() []menu.PromptOption {
	return []menu.PromptOption{
		menu.WithExitKey(p.ExitKey),
		menu.WithOptionSeparator(p.OptionSeparator),
		menu.WithCursorPrefix(p.CursorPrefix),
		menu.WithRetryOnInvalid(p.RetryOnInvalid),
	}
}

// NetConfig holds the defaults for ping and download.
type NetConfig struct {
	PingTimeout time.Duration
	DownloadDir string
}

// fileConfig mirrors the TOML layout:
//
//	[log]
//	level = "debug"
//
//	[prompt]
//	exit_key = "q"
//	cursor_prefix = ""
//
//	[net]
//	ping_timeout = "2s"
type fileConfig struct {
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Prompt struct {
		ExitKey         string `toml:"exit_key"`
		OptionSeparator string `toml:"option_separator"`
		CursorPrefix    string `toml:"cursor_prefix"`
		RetryOnInvalid  bool   `toml:"retry_on_invalid"`
	} `toml:"prompt"`
	Net struct {
		PingTimeout string `toml:"ping_timeout"`
		DownloadDir string `toml:"download_dir"`
	} `toml:"net"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Prompt: PromptConfig{
			ExitKey:         DefaultExitKey,
			OptionSeparator: menu.DefaultOptionSeparator,
			CursorPrefix:    menu.DefaultCursorPrefix,
			RetryOnInvalid:  true,
		},
		Net: NetConfig{PingTimeout: DefaultPingTimeout, DownloadDir: DefaultDownloadDir},
	}
}

// DefaultPath returns $HOME/.toolbox.toml, or "" if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load builds the configuration from defaults, the file at path and the environment.
// With an empty path the default file is used if it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !os.IsNotExist(errors.Cause(err)) {
				return Config{}, err
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "config load failed (%s)", path)
	}
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return errors.Wrapf(err, "config parse failed (%s)", path)
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.TrimSpace(raw.Log.Format)
	}
	if meta.IsDefined("prompt", "exit_key") {
		cfg.Prompt.ExitKey = raw.Prompt.ExitKey
	}
	if meta.IsDefined("prompt", "option_separator") {
		cfg.Prompt.OptionSeparator = raw.Prompt.OptionSeparator
	}
	if meta.IsDefined("prompt", "cursor_prefix") {
		cfg.Prompt.CursorPrefix = raw.Prompt.CursorPrefix
	}
	if meta.IsDefined("prompt", "retry_on_invalid") {
		cfg.Prompt.RetryOnInvalid = raw.Prompt.RetryOnInvalid
	}
	if meta.IsDefined("net", "ping_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Net.PingTimeout))
		if err != nil {
			return errors.Wrapf(err, "parse net.ping_timeout (%s)", path)
		}
		cfg.Net.PingTimeout = d
	}
	if meta.IsDefined("net", "download_dir") {
		cfg.Net.DownloadDir = strings.TrimSpace(raw.Net.DownloadDir)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v, ok := os.LookupEnv("TOOLBOX_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("TOOLBOX_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	// An empty TOOLBOX_EXIT_KEY disables the exit key.
	if v, ok := os.LookupEnv("TOOLBOX_EXIT_KEY"); ok {
		c.Prompt.ExitKey = v
	}
	if v, ok := os.LookupEnv("TOOLBOX_RETRY_ON_INVALID"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "parse TOOLBOX_RETRY_ON_INVALID")
		}
		c.Prompt.RetryOnInvalid = b
	}
	if v, ok := os.LookupEnv("TOOLBOX_PING_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "parse TOOLBOX_PING_TIMEOUT")
		}
		c.Net.PingTimeout = d
	}
	if v, ok := os.LookupEnv("TOOLBOX_DOWNLOAD_DIR"); ok && v != "" {
		c.Net.DownloadDir = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Net.PingTimeout <= 0 {
		return errors.Errorf("net.ping_timeout must be positive, got %s", c.Net.PingTimeout)
	}
	if strings.TrimSpace(c.Net.DownloadDir) == "" {
		return errors.New("net.download_dir must not be empty")
	}
	return nil
}
