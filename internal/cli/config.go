package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/matzehuels/linechart/pkg/errors"
	"github.com/matzehuels/linechart/pkg/linechart"
	"github.com/matzehuels/linechart/pkg/pipeline"
)

// =============================================================================
// Layout Config File
// =============================================================================

// fileConfig is the on-disk layout of linechart.toml.
//
//	formats = ["svg", "html"]
//	page_title = "Weekly usage"
//
//	[layout]
//	width = 960
//	line_color = "tomato"
//
//	[layout.margin]
//	top = 40
type fileConfig struct {
	Formats   []string         `toml:"formats"`
	PageTitle string           `toml:"page_title"`
	Scale     float64          `toml:"scale"`
	NoSummary bool             `toml:"no_summary"`
	Layout    linechart.Layout `toml:"layout"`
}

// loadConfig reads the config at path. With an empty path the default file
// is used when present; a missing default is not an error.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// apply copies config values into opts. Values already set on opts by flags win.
func (f fileConfig) apply(opts *pipeline.Options) {
	if len(opts.Formats) == 0 {
		opts.Formats = f.Formats
	}
	if opts.PageTitle == "" {
		opts.PageTitle = f.PageTitle
	}
	if opts.Scale == 0 {
		opts.Scale = f.Scale
	}
	opts.NoSummary = opts.NoSummary || f.NoSummary
	opts.Layout = f.Layout.WithDefaults()
}

// =============================================================================
// Server Config
// =============================================================================

// serverConfig is read from the environment, after an optional .env file.
type serverConfig struct {
	Addr     string        `env:"LINECHART_ADDR" envDefault:":8080"`
	RedisURL string        `env:"LINECHART_REDIS_URL"`
	CacheTTL time.Duration `env:"LINECHART_CACHE_TTL" envDefault:"168h"`
	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout time.Duration `env:"LINECHART_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// loadServerConfig loads envFile (if it exists) into the process environment
// and parses serverConfig. Variables already set take precedence over the file.
func loadServerConfig(envFile string) (serverConfig, error) {
	var cfg serverConfig
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse env")
	}
	if cfg.CacheTTL < 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "LINECHART_CACHE_TTL must not be negative")
	}
	return cfg, nil
}
