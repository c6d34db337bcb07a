// Package config loads the generator settings shared by every CLI command:
// built-in defaults, an optional TOML file, STARTSCRIPT_* environment
// variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/sibikrish3000/startscript/internal/hostos"
	"github.com/sibikrish3000/startscript/pkg/escape"
	"github.com/sibikrish3000/startscript/pkg/launch"
)

const (
	// EnvPrefix prefixes every environment variable the tool reads.
	EnvPrefix = "STARTSCRIPT"
	// FileName is the config file looked up in the working directory.
	FileName = "startscript"
	// FileType is the only supported config format.
	FileType = "toml"
)

// Keys, shared with the CLI flag bindings.
const (
	KeyOutputDir      = "output_dir"
	KeyPlatforms      = "platforms"
	KeyWindowsCharset = "windows_charset"
	KeyConcurrency    = "concurrency"
	KeyLogLevel       = "log_level"
)

// Config holds the resolved settings.
type Config struct {
	// OutputDir is the distribution root scripts are written under.
	OutputDir string `mapstructure:"output_dir" validate:"required"`

	// Platforms lists interpreter families by name; "auto" and "all" allowed.
	Platforms []string `mapstructure:"platforms" validate:"min=1,dive,required"`

	// WindowsCharset is the charset batch files are written in.
	WindowsCharset string `mapstructure:"windows_charset" validate:"required"`

	// Concurrency bounds parallel generation. Zero means one worker per CPU.
	Concurrency int `mapstructure:"concurrency" validate:"gte=0"`

	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error fatal"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		OutputDir:      "build/install",
		Platforms:      []string{"auto"},
		WindowsCharset: launch.CharsetUTF8,
		Concurrency:    0,
		LogLevel:       "info",
	}
}

// New returns a viper instance preloaded with defaults and bound to the
// STARTSCRIPT_* environment. Callers bind flags to it before calling Load.
func New(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}

	d := DefaultConfig()
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyPlatforms, d.Platforms)
	v.SetDefault(KeyWindowsCharset, d.WindowsCharset)
	v.SetDefault(KeyConcurrency, d.Concurrency)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetConfigType(FileType)
	return v
}

// Load reads the config file, if any, and returns the validated settings.
// An explicit path must exist; otherwise ./startscript.toml is optional.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that platforms and charset resolve.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := hostos.ResolveOSes(c.Platforms); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := escape.ResolveCharset(c.WindowsCharset); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Targets expands Platforms into concrete generation targets. Windows
// targets carry WindowsCharset; Unix scripts are always UTF-8.
func (c Config) Targets() ([]launch.Platform, error) {
	oses, err := hostos.ResolveOSes(c.Platforms)
	if err != nil {
		return nil, err
	}
	targets := make([]launch.Platform, 0, len(oses))
	for _, o := range oses {
		p := launch.Platform{OS: o, Charset: launch.CharsetUTF8}
		if o == launch.Windows {
			p.Charset = c.WindowsCharset
		}
		targets = append(targets, p)
	}
	return targets, nil
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
