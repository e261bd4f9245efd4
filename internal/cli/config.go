package cli

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/flowter/internal/server"
	"github.com/matzehuels/flowter/pkg/errors"
	"github.com/matzehuels/flowter/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// =============================================================================
// Config File
// =============================================================================

// Config is the flowter config file. Command-line flags override it.
//
//	[layout]
//	mode = "horizontal"
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2.0
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	prefix = "staging"
//
//	[server]
//	addr = ":8080"
//	metrics = true
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout overrides applied to every document.
type LayoutConfig struct {
	Mode      string `toml:"mode,omitempty" validate:"omitempty,oneof=vertical horizontal"`
	Namespace string `toml:"namespace,omitempty"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Formats    []string `toml:"formats" validate:"dive,oneof=svg png pdf json dot mermaid"`
	Background string   `toml:"background,omitempty"`
	Scale      float64  `toml:"scale" validate:"gte=0"`
	NoEdges    bool     `toml:"no_edges"`
	Jobs       int      `toml:"jobs" validate:"gte=0,lte=64"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend  string `toml:"backend" validate:"omitempty,oneof=file redis none"`
	Dir      string `toml:"dir,omitempty"`
	RedisURL string `toml:"redis_url,omitempty" validate:"required_if=Backend redis"`

	// Prefix scopes every key so deployments can share one Redis database.
	Prefix string `toml:"prefix,omitempty" validate:"max=64"`
}

// ServerConfig configures "flowter serve".
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	Metrics        bool     `toml:"metrics"`
	MaxBodyBytes   int64    `toml:"max_body_bytes" validate:"gte=0"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
			Jobs:    defaultJobs,
		},
		Cache: CacheConfig{
			Backend: cacheBackendFile,
		},
		Server: ServerConfig{
			Addr:           server.DefaultAddr,
			Metrics:        true,
			MaxBodyBytes:   server.DefaultMaxBodyBytes,
			RequestTimeout: Duration{server.DefaultRequestTimeout},
		},
	}
}

var (
	configValidator     *validator.Validate
	configValidatorOnce sync.Once
)

func validate() *validator.Validate {
	configValidatorOnce.Do(func() {
		configValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return configValidator
}

// LoadConfig reads the config file at path on top of the defaults. A
// missing file yields the defaults unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return DefaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, err
	}
	defer f.Close()
	return ReadConfig(f)
}

// ReadConfig decodes and validates a TOML config. Unknown keys are
// rejected so typos do not pass silently.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "config: unknown key %q", undecoded[0].String())
	}
	if err := validate().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return Config{}, errors.New(errors.ErrCodeInvalidInput, "config: %s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config")
	}
	if err := errors.ValidateColor(cfg.Render.Background); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
