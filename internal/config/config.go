// Package config loads the optional restdata.toml project file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// DefaultFile is the file name looked up in the working directory.
const DefaultFile = "restdata.toml"

// Config holds project settings. Zero values mean "use the default".
type Config struct {
	// Packages are the go/packages patterns to scan.
	Packages []string `toml:"packages" validate:"dive,required"`

	// Output is the sink URL the manifest is written to.
	Output string `toml:"output"`

	// Format is the manifest encoding.
	Format string `toml:"format" validate:"omitempty,oneof=json yaml"`

	// Workers bounds concurrent candidate processing. Zero means no bound.
	Workers int `toml:"workers" validate:"min=0"`

	// CollectAll reports every malformed declaration instead of the first.
	CollectAll bool `toml:"collect_all"`

	// Tests includes test files in the scan.
	Tests bool `toml:"tests"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Packages: []string{"./..."},
		Output:   ".",
		Format:   "json",
		LogLevel: "info",
	}
}

var validate = validator.New()

// Load reads path and overlays it on Default. A missing file is not an
// error unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parsing config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", strings.ToLower(fe.Field()), fe.Param(), fe.Value()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
