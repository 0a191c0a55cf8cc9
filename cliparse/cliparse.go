package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/pokedex/models"
)

const (
	DefaultPort           = 3000
	DefaultDatabaseName   = "pokedex"
	DefaultLimit          = 6
	DefaultPokeAPIURL     = "https://pokeapi.co/api/v2"
	DefaultSeedLimit      = 60
	DefaultCatalogTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	DatabaseName   string
	DefaultLimit   int
	PokeAPIURL     string
	SeedLimit      int
	SeedKey        string
	CatalogTimeout time.Duration
	StaticDir      string
	LogLevel       string
	ConfigFile     string
}

// fileConfig is the optional YAML file layout. Keys mirror the env names in
// snake case.
type fileConfig struct {
	Port           int    `yaml:"port"`
	DatabaseURL    string `yaml:"database_url"`
	DatabaseType   string `yaml:"database_type"`
	DatabaseName   string `yaml:"database_name"`
	DefaultLimit   int    `yaml:"default_limit"`
	PokeAPIURL     string `yaml:"pokeapi_url"`
	SeedLimit      int    `yaml:"seed_limit"`
	SeedKey        string `yaml:"seed_key"`
	CatalogTimeout string `yaml:"catalog_timeout"`
	StaticDir      string `yaml:"static_dir"`
	LogLevel       string `yaml:"log_level"`
}

// ParseFlags builds the configuration. Precedence is flags, then
// environment (a .env file in the working directory is loaded first), then
// the YAML file named by -c or POKEDEX_CONFIG, then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("pokedex", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (MongoDB URI, Postgres URL or SQLite path)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (mongo, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseName, "n", "", "Mongo database name")

	// API behavior
	fs.IntVar(&cfg.DefaultLimit, "limit", 0, "Default page size for GET /pokemon")
	fs.StringVar(&cfg.PokeAPIURL, "pokeapi", "", "PokeAPI base URL")
	fs.IntVar(&cfg.SeedLimit, "seed-limit", 0, "Number of pokemon imported by the seed")
	fs.DurationVar(&cfg.CatalogTimeout, "catalog-timeout", 0, "PokeAPI request timeout")
	fs.StringVar(&cfg.StaticDir, "static", "", "Directory served at /")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Optional YAML config file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SeedKey, "seed-key", "", "Key required in X-Seed-Key for POST /seed (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile != "" {
		file, err := loadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		if err := applyFile(&cfg, file); err != nil {
			return Config{}, err
		}
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Fall back to environment variables for anything not set by a flag
func applyEnv(cfg *Config) error {
	if err := envInt(&cfg.Port, "PORT"); err != nil {
		return err
	}
	envString(&cfg.DatabaseURL, "MONGODB_URI", "DATABASE_URL")
	envString(&cfg.DatabaseType, "DATABASE_TYPE")
	envString(&cfg.DatabaseName, "DATABASE_NAME")
	if err := envInt(&cfg.DefaultLimit, "DEFAULT_LIMIT"); err != nil {
		return err
	}
	envString(&cfg.PokeAPIURL, "POKEAPI_URL")
	if err := envInt(&cfg.SeedLimit, "SEED_LIMIT"); err != nil {
		return err
	}
	envString(&cfg.SeedKey, "SEED_KEY")
	if cfg.CatalogTimeout == 0 {
		if v := os.Getenv("CATALOG_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return errors.New("invalid CATALOG_TIMEOUT env variable")
			}
			cfg.CatalogTimeout = d
		}
	}
	envString(&cfg.StaticDir, "STATIC_DIR")
	envString(&cfg.LogLevel, "LOG_LEVEL")
	envString(&cfg.ConfigFile, "POKEDEX_CONFIG")
	return nil
}

func envString(dst *string, keys ...string) {
	for _, key := range keys {
		if *dst != "" {
			return
		}
		*dst = os.Getenv(key)
	}
}

func envInt(dst *int, key string) error {
	if *dst != 0 {
		return nil
	}
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s env variable", key)
	}
	*dst = n
	return nil
}

func loadFile(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var file fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return file, nil
}

func applyFile(cfg *Config, file fileConfig) error {
	if cfg.Port == 0 {
		cfg.Port = file.Port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = file.DatabaseURL
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = file.DatabaseType
	}
	if cfg.DatabaseName == "" {
		cfg.DatabaseName = file.DatabaseName
	}
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = file.DefaultLimit
	}
	if cfg.PokeAPIURL == "" {
		cfg.PokeAPIURL = file.PokeAPIURL
	}
	if cfg.SeedLimit == 0 {
		cfg.SeedLimit = file.SeedLimit
	}
	if cfg.SeedKey == "" {
		cfg.SeedKey = file.SeedKey
	}
	if cfg.CatalogTimeout == 0 && file.CatalogTimeout != "" {
		d, err := time.ParseDuration(file.CatalogTimeout)
		if err != nil {
			return fmt.Errorf("invalid catalog_timeout in config file: %w", err)
		}
		cfg.CatalogTimeout = d
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = file.StaticDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = file.LogLevel
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = models.DatabaseMongo
	}
	if cfg.DatabaseName == "" {
		cfg.DatabaseName = DefaultDatabaseName
	}
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.PokeAPIURL == "" {
		cfg.PokeAPIURL = DefaultPokeAPIURL
	}
	if cfg.SeedLimit == 0 {
		cfg.SeedLimit = DefaultSeedLimit
	}
	if cfg.CatalogTimeout == 0 {
		cfg.CatalogTimeout = DefaultCatalogTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

func (c Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d, MONGODB_URI or DATABASE_URL env)")
	}
	switch c.DatabaseType {
	case models.DatabaseMongo, models.DatabasePostgres, models.DatabaseSQLite:
	default:
		return fmt.Errorf("unsupported database type %q (want mongo, postgres or sqlite)", c.DatabaseType)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DefaultLimit < 1 {
		return errors.New("default limit must be a positive number")
	}
	if c.SeedLimit < 1 {
		return errors.New("seed limit must be a positive number")
	}
	if c.CatalogTimeout < 0 {
		return errors.New("catalog timeout must not be negative")
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
