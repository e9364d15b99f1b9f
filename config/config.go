package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidTotal    = errors.New("total must be at least 1")
	ErrEmptySearch     = errors.New("search term is required")
	ErrInvalidDriver   = errors.New("db driver must be one of: postgres, sqlite3, mysql")
	ErrInvalidTimeouts = errors.New("navigation, panel and scroll timeouts must be positive")
)

type Config struct {
	BaseURL string `yaml:"base_url"`
	Search  string `yaml:"search"`
	Total   int    `yaml:"total"`

	CitiesPath string `yaml:"cities_path"`
	Location   string `yaml:"-"`
	ExportPath string `yaml:"export_path"`

	Headless          bool          `yaml:"headless"`
	UserAgent         string        `yaml:"user_agent"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	ScrollSettle      time.Duration `yaml:"scroll_settle"`
	PanelTimeout      time.Duration `yaml:"panel_timeout"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	MinDelay          time.Duration `yaml:"min_delay"`
	MaxDelay          time.Duration `yaml:"max_delay"`
	RunInterval       time.Duration `yaml:"run_interval"`

	ExcludeName string `yaml:"exclude_name"`

	DBDriver     string `yaml:"db_driver"`
	DBDSN        string `yaml:"db_dsn"`
	DBHost       string `yaml:"db_host"`
	DBPort       int    `yaml:"db_port"`
	DBUser       string `yaml:"db_user"`
	DBPassword   string `yaml:"db_password"`
	DBName       string `yaml:"db_name"`
	DBSSLMode    string `yaml:"db_sslmode"`
	DBMaxRetries int    `yaml:"db_max_retries"`

	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://www.google.com/maps",
		Search:            "dentist",
		Total:             120,
		CitiesPath:        "uscities.csv",
		Headless:          true,
		NavigationTimeout: 60 * time.Second,
		ScrollSettle:      2 * time.Second,
		PanelTimeout:      2 * time.Second,
		PollInterval:      250 * time.Millisecond,
		MinDelay:          300 * time.Millisecond,
		MaxDelay:          900 * time.Millisecond,
		RunInterval:       5 * time.Second,
		ExcludeName:       "Loans",
		DBDriver:          "postgres",
		DBHost:            "localhost",
		DBPort:            5432,
		DBUser:            "postgres",
		DBPassword:        "postgres",
		DBName:            "gmaps_scraper",
		DBSSLMode:         "disable",
		DBMaxRetries:      3,
		LogLevel:          "info",
	}
}

// LoadFile overlays the YAML file at path onto c. A missing file is not an
// error; the defaults stand.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv loads a .env file from the working directory, if any, and then
// overlays GMAPS_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	str("GMAPS_DB_DRIVER", &c.DBDriver)
	str("GMAPS_DB_DSN", &c.DBDSN)
	str("GMAPS_DB_HOST", &c.DBHost)
	str("GMAPS_DB_USER", &c.DBUser)
	str("GMAPS_DB_PASSWORD", &c.DBPassword)
	str("GMAPS_DB_NAME", &c.DBName)
	str("GMAPS_DB_SSLMODE", &c.DBSSLMode)
	str("GMAPS_LOG_LEVEL", &c.LogLevel)

	if v := strings.TrimSpace(os.Getenv("GMAPS_DB_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GMAPS_DB_PORT %q: %w", v, err)
		}
		c.DBPort = port
	}

	if v := strings.TrimSpace(os.Getenv("GMAPS_HEADLESS")); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GMAPS_HEADLESS %q: %w", v, err)
		}
		c.Headless = headless
	}

	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Search) == "" {
		return ErrEmptySearch
	}
	if c.Total < 1 {
		return ErrInvalidTotal
	}
	if c.NavigationTimeout <= 0 || c.PanelTimeout <= 0 || c.ScrollSettle <= 0 {
		return ErrInvalidTimeouts
	}
	switch c.DBDriver {
	case "postgres", "sqlite3", "mysql":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidDriver, c.DBDriver)
	}
	return nil
}

// DSN returns DBDSN when set, otherwise builds one for DBDriver from the
// host/port/user fields. For sqlite3 DBName is the database file path.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	switch c.DBDriver {
	case "sqlite3":
		return c.DBName
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	default:
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.DBUser,
			c.DBPassword,
			c.DBHost,
			c.DBPort,
			c.DBName,
			c.DBSSLMode,
		)
	}
}
