package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
)

type Config struct {
	Addr     string `yaml:"addr" env:"METRO_ADDR"`
	DBPath   string `yaml:"db_path" env:"METRO_DB_PATH"`
	LogLevel string `yaml:"log_level" env:"METRO_LOG_LEVEL"`

	// Répertoire des assets statiques (optionnel).
	StaticDir string `yaml:"static_dir" env:"METRO_STATIC_DIR"`

	ScheduleEndpoint string        `yaml:"schedule_endpoint" env:"METRO_SCHEDULE_ENDPOINT"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout" env:"METRO_FETCH_TIMEOUT"`

	CacheBackend  string        `yaml:"cache_backend" env:"METRO_CACHE_BACKEND"`
	CacheMaxAge   time.Duration `yaml:"cache_max_age" env:"METRO_CACHE_MAX_AGE"`
	CacheSize     int           `yaml:"cache_size" env:"METRO_CACHE_SIZE"`
	PruneInterval time.Duration `yaml:"prune_interval" env:"METRO_PRUNE_INTERVAL"`
}

func defaults() Config {
	return Config{
		Addr:             "127.0.0.1:8080",
		DBPath:           "metro.db",
		LogLevel:         "info",
		ScheduleEndpoint: "https://api-ratp.pierre-grimaud.fr/v3/schedules",
		FetchTimeout:     10 * time.Second,
		CacheBackend:     CacheBackendSQLite,
		CacheMaxAge:      30 * time.Minute,
		CacheSize:        256,
		PruneInterval:    5 * time.Minute,
	}
}

// Default renvoie les valeurs par défaut surchargées par l'environnement.
func Default() Config {
	cfg := defaults()
	if err := env.Parse(&cfg); err != nil {
		return defaults()
	}
	return cfg.normalize()
}

// Load lit un fichier YAML optionnel puis applique l'environnement par-dessus.
// Un chemin vide ou absent revient à Default.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return Config{}, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalize(), nil
}

func (c Config) normalize() Config {
	def := defaults()
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
	if c.CacheMaxAge <= 0 {
		c.CacheMaxAge = def.CacheMaxAge
	}
	if c.CacheSize <= 0 {
		c.CacheSize = def.CacheSize
	}
	if c.PruneInterval <= 0 {
		c.PruneInterval = def.PruneInterval
	}
	if c.CacheBackend != CacheBackendMemory {
		c.CacheBackend = CacheBackendSQLite
	}
	return c
}
