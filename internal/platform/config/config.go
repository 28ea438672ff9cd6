package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBase        = "http://localhost:8000"
	DefaultLogLevel       = "warn"
	DefaultRequestTimeout = 15 * time.Second

	EnvAPIBase        = "SKILLSETU_API_BASE"
	EnvDataDir        = "SKILLSETU_DATA_DIR"
	EnvLogLevel       = "SKILLSETU_LOG_LEVEL"
	EnvRequestTimeout = "SKILLSETU_REQUEST_TIMEOUT"
)

type Config struct {
	APIBase        string
	DataDir        string
	DBPath         string
	LogPath        string
	LogLevel       string
	RequestTimeout time.Duration
}

// Options carries explicit overrides (usually CLI flags). Empty fields are ignored.
type Options struct {
	APIBase  string
	DataDir  string
	LogLevel string
	// EnvFile is the dotenv file consulted before the process environment.
	EnvFile string
	// Getenv defaults to os.Getenv; tests inject a map lookup.
	Getenv func(string) string
}

type fileConfig struct {
	APIBase        string `yaml:"api_base"`
	LogLevel       string `yaml:"log_level"`
	RequestTimeout string `yaml:"request_timeout"`
}

func Load(opts Options) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := readDotenv(envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}

	dataDir := firstNonEmpty(opts.DataDir, lookup(EnvDataDir))
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		dataDir = filepath.Join(base, "skillsetu")
	}

	fc, err := readFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:  firstNonEmpty(opts.APIBase, lookup(EnvAPIBase), fc.APIBase, DefaultAPIBase),
		DataDir:  dataDir,
		DBPath:   filepath.Join(dataDir, "skillsetu.db"),
		LogPath:  filepath.Join(dataDir, "skillsetu.log"),
		LogLevel: strings.ToLower(firstNonEmpty(opts.LogLevel, lookup(EnvLogLevel), fc.LogLevel, DefaultLogLevel)),
	}
	cfg.APIBase = strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if cfg.APIBase == "" {
		return Config{}, fmt.Errorf("api base is required")
	}

	cfg.RequestTimeout = DefaultRequestTimeout
	if raw := firstNonEmpty(lookup(EnvRequestTimeout), fc.RequestTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse request timeout %q: %w", raw, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("request timeout must be positive, got %s", d)
		}
		cfg.RequestTimeout = d
	}
	return cfg, nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func readFile(path string) (fileConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("decode config file: %w", err)
	}
	return fc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
