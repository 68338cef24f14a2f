package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Database  Database  `yaml:"database"`
	Redis     Redis     `yaml:"redis"`
	Memcached Memcached `yaml:"memcached"`
	Auth      Auth      `yaml:"auth"`
	Trace     Trace     `yaml:"trace"`
}

type Server struct {
	ListenAddr    string `yaml:"listenAddr"`
	BasePath      string `yaml:"basePath"`
	AllowedOrigin string `yaml:"allowedOrigin"`
	AutoMigrate   *bool  `yaml:"autoMigrate"`
}

type Database struct {
	Dsn      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Memcached struct {
	Addr       string `yaml:"addr"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

type Auth struct {
	PasswordScheme string `yaml:"passwordScheme"` // sha256 (default), bcrypt
}

type Trace struct {
	Enable      bool   `yaml:"enable"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"serviceName"`
}

func Default() Config {
	return Config{
		Server: Server{
			ListenAddr:    ":8000",
			AllowedOrigin: "*",
		},
		Database: Database{
			Port:    "5432",
			SSLMode: "disable",
		},
		Memcached: Memcached{
			TTLSeconds: 300,
		},
		Trace: Trace{
			ServiceName: "sendlog",
		},
	}
}

// Load reads path over the defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadEnv loads a .env file into the process environment if one exists.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides file settings with environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set("DATABASE_DSN", &c.Database.Dsn)
	set("DB_HOST", &c.Database.Host)
	set("DB_PORT", &c.Database.Port)
	set("DB_NAME", &c.Database.Name)
	set("DB_USER", &c.Database.User)
	set("DB_PASS", &c.Database.Password)
	set("ALLOWED_ORIGIN", &c.Server.AllowedOrigin)
	set("LISTEN_ADDR", &c.Server.ListenAddr)
	set("BASE_PATH", &c.Server.BasePath)
	set("REDIS_ADDR", &c.Redis.Addr)
	set("REDIS_PASSWORD", &c.Redis.Password)
	set("MEMCACHED_ADDR", &c.Memcached.Addr)
	set("PASSWORD_SCHEME", &c.Auth.PasswordScheme)
	set("TRACE_ENDPOINT", &c.Trace.Endpoint)

	if v, ok := lookup("REDIS_DB"); ok {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v, ok := lookup("TRACE_ENABLE"); ok {
		if enable, err := strconv.ParseBool(v); err == nil {
			c.Trace.Enable = enable
		}
	}
}

// Validate reports every missing database setting at once.
func (c Config) Validate() error {
	if c.Database.Dsn != "" {
		return nil
	}

	var missing []string
	for _, field := range []struct {
		key   string
		value string
	}{
		{"DB_HOST", c.Database.Host},
		{"DB_NAME", c.Database.Name},
		{"DB_USER", c.Database.User},
		{"DB_PASS", c.Database.Password},
	} {
		if field.value == "" {
			missing = append(missing, field.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing database settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c Config) MigrateOnStart() bool {
	return c.Server.AutoMigrate == nil || *c.Server.AutoMigrate
}

// DSN returns the explicit DSN or composes a postgres one from the parts.
func (d Database) DSN() string {
	if d.Dsn != "" {
		return d.Dsn
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(d.Host), dsnValue(d.Port), dsnValue(d.User),
		dsnValue(d.Password), dsnValue(d.Name), dsnValue(d.SSLMode),
	)
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// dsnValue quotes a libpq keyword/value setting.
func dsnValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
