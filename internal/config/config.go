// Package config loads quill settings from defaults, an optional YAML file,
// QUILL_* environment variables and command-line flags, in that order of
// increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/rewrite"
)

const (
	EnvPrefix = "QUILL"

	defaultLogLevel     = "warn"
	defaultHistoryLimit = 1000
	defaultTabWidth     = 4
)

var ErrInvalid = errors.Base("invalid configuration")

type Config struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
	Retry  RetryConfig  `mapstructure:"retry"`
	Editor EditorConfig `mapstructure:"editor"`
	Log    LogConfig    `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type GeminiConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	// APIKeyEnv names the environment variable holding the credential.
	APIKeyEnv string        `mapstructure:"api_key_env"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type RetryConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

type EditorConfig struct {
	LineNumbers  bool   `mapstructure:"line_numbers"`
	HistoryLimit int    `mapstructure:"history_limit"`
	Wrap         string `mapstructure:"wrap"`
	TabWidth     int    `mapstructure:"tab_width"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// File is an explicit config path; it must exist when set.
	File string
	// SearchDir is scanned for config.yaml when File is empty. Defaults to
	// the user config dir joined with "quill".
	SearchDir string
	// Flags are bound by name: log-file, log-level, model.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-file":  "log.file",
	"log-level": "log.level",
	"model":     "gemini.model",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini.base_url", rewrite.DefaultBaseURL)
	v.SetDefault("gemini.model", rewrite.DefaultModel)
	v.SetDefault("gemini.api_key_env", rewrite.DefaultAPIKeyEnv)
	v.SetDefault("gemini.timeout", rewrite.DefaultTimeout)
	v.SetDefault("retry.attempts", rewrite.DefaultAttempts)
	v.SetDefault("retry.delay", rewrite.DefaultDelay)
	v.SetDefault("editor.line_numbers", false)
	v.SetDefault("editor.history_limit", defaultHistoryLimit)
	v.SetDefault("editor.wrap", editor.WrapWord.String())
	v.SetDefault("editor.tab_width", defaultTabWidth)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", defaultLogLevel)
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Errorf("%w: reading %s: %s", ErrInvalid, opts.File, err.Error())
		}
	} else {
		dir := opts.SearchDir
		if dir == "" {
			if base, err := os.UserConfigDir(); err == nil {
				dir = filepath.Join(base, "quill")
			}
		}
		if dir != "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(dir)
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return Config{}, errors.Errorf("%w: %s", ErrInvalid, err.Error())
				}
			}
		}
	}

	if opts.Flags != nil {
		for name, k := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return Config{}, errors.WithStack(err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Editor.Wrap {
	case "none", "word", "grapheme":
	default:
		return errors.Errorf("%w: editor.wrap must be none, word or grapheme, got %q", ErrInvalid, c.Editor.Wrap)
	}
	if c.Gemini.Timeout <= 0 {
		return errors.Errorf("%w: gemini.timeout must be positive", ErrInvalid)
	}
	if c.Retry.Attempts < 0 || c.Retry.Attempts > rewrite.DefaultAttempts {
		return errors.Errorf("%w: retry.attempts must be between 0 and %d, got %d", ErrInvalid, rewrite.DefaultAttempts, c.Retry.Attempts)
	}
	if c.Retry.Delay < 0 {
		return errors.Errorf("%w: retry.delay must not be negative", ErrInvalid)
	}
	if c.Gemini.APIKeyEnv == "" {
		return errors.Errorf("%w: gemini.api_key_env is empty", ErrInvalid)
	}
	return nil
}

func (c Config) LogLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.NoLevel, errors.Errorf("%w: log.level: %s", ErrInvalid, err.Error())
	}
	if lvl == zerolog.NoLevel {
		return zerolog.WarnLevel, nil
	}
	return lvl, nil
}

func (c Config) RewriteOptions() rewrite.Options {
	return rewrite.Options{
		BaseURL:   c.Gemini.BaseURL,
		Model:     c.Gemini.Model,
		APIKeyEnv: c.Gemini.APIKeyEnv,
		Timeout:   c.Gemini.Timeout,
	}
}

func (c Config) RetryPolicy() rewrite.Policy {
	return rewrite.Policy{Attempts: c.Retry.Attempts, Delay: c.Retry.Delay}
}

func (c Config) EditorConfig() editor.Config {
	return editor.Config{
		ShowLineNums: c.Editor.LineNumbers,
		HistoryLimit: c.Editor.HistoryLimit,
		WrapMode:     editor.ParseWrapMode(c.Editor.Wrap),
		TabWidth:     c.Editor.TabWidth,
	}
}

// YAML renders the effective configuration. Durations are written in
// time.Duration notation so the output can be read back.
func (c Config) YAML() ([]byte, error) {
	doc := map[string]any{
		"gemini": map[string]any{
			"base_url":    c.Gemini.BaseURL,
			"model":       c.Gemini.Model,
			"api_key_env": c.Gemini.APIKeyEnv,
			"timeout":     c.Gemini.Timeout.String(),
		},
		"retry": map[string]any{
			"attempts": c.Retry.Attempts,
			"delay":    c.Retry.Delay.String(),
		},
		"editor": map[string]any{
			"line_numbers":  c.Editor.LineNumbers,
			"history_limit": c.Editor.HistoryLimit,
			"wrap":          c.Editor.Wrap,
			"tab_width":     c.Editor.TabWidth,
		},
		"log": map[string]any{
			"file":  c.Log.File,
			"level": c.Log.Level,
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}
