package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	List    ListConfig    `yaml:"list"`
	Detail  DetailConfig  `yaml:"detail"`
	Server  ServerConfig  `yaml:"server"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // 0 disables the cache
}

type ListConfig struct {
	Offset      int32 `yaml:"offset"`
	Limit       int32 `yaml:"limit"`
	Concurrency int   `yaml:"concurrency"`
}

type DetailConfig struct {
	Language string `yaml:"language"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type ExportConfig struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
	Dir    string `yaml:"dir"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:  pokeapi.DefaultBaseUrl,
			Timeout:  10 * time.Second,
			CacheTTL: 5 * time.Minute,
		},
		List: ListConfig{
			Offset:      0,
			Limit:       20,
			Concurrency: 8,
		},
		Detail: DetailConfig{
			Language: "es",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: true,
		},
	}
}

// Load layers defaults, the optional YAML file at path, a .env file in the
// working directory and the process environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, target *string) {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}
	str("POKEDEX_API_BASE_URL", &cfg.API.BaseURL)
	str("POKEDEX_LANGUAGE", &cfg.Detail.Language)
	str("POKEDEX_ADDR", &cfg.Server.Addr)
	str("POKEDEX_EXPORT_DIR", &cfg.Export.Dir)
	str("POKEDEX_LOG_LEVEL", &cfg.Logging.Level)
	str("BUCKET_NAME", &cfg.Export.Bucket)
	str("AWS_REGION", &cfg.Export.Region)

	var errs []error
	duration := func(key string, target *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*target = d
		}
	}
	duration("POKEDEX_API_TIMEOUT", &cfg.API.Timeout)
	duration("POKEDEX_CACHE_TTL", &cfg.API.CacheTTL)

	integer := func(key string, set func(int)) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			set(n)
		}
	}
	integer("POKEDEX_LIST_OFFSET", func(n int) { cfg.List.Offset = int32(n) })
	integer("POKEDEX_LIST_LIMIT", func(n int) { cfg.List.Limit = int32(n) })
	integer("POKEDEX_LIST_CONCURRENCY", func(n int) { cfg.List.Concurrency = n })

	if v, ok := lookup("POKEDEX_LOG_DEVELOPMENT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("POKEDEX_LOG_DEVELOPMENT: %w", err))
		} else {
			cfg.Logging.Development = b
		}
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.CacheTTL < 0 {
		errs = append(errs, errors.New("api.cache_ttl must not be negative"))
	}
	if c.List.Offset < 0 {
		errs = append(errs, errors.New("list.offset must not be negative"))
	}
	if c.List.Limit <= 0 {
		errs = append(errs, errors.New("list.limit must be positive"))
	}
	if c.List.Concurrency <= 0 {
		errs = append(errs, errors.New("list.concurrency must be positive"))
	}
	if c.Detail.Language == "" {
		errs = append(errs, errors.New("detail.language is required"))
	}
	return errors.Join(errs...)
}
