package config

import (
	"os"
	"path/filepath"
	"testing"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  listenAddr: ":9000"
  basePath: /api
  autoMigrate: false
database:
  host: db
  name: climbing
  user: app
  password: secret
memcached:
  addr: localhost:11211
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":9000" || cfg.Server.BasePath != "/api" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.AllowedOrigin != "*" {
		t.Errorf("default origin lost: %q", cfg.Server.AllowedOrigin)
	}
	if cfg.MigrateOnStart() {
		t.Errorf("autoMigrate: false was ignored")
	}
	if cfg.Memcached.TTLSeconds != 300 {
		t.Errorf("default ttl lost: %d", cfg.Memcached.TTLSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	want := "host='db' port='5432' user='app' password='secret' dbname='climbing' sslmode='disable'"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN: expected %q, got %q", want, got)
	}
}

func TestDSNQuotesValues(t *testing.T) {
	db := Database{
		Host:     "db",
		Port:     "5432",
		Name:     "climbing gym",
		User:     "app",
		Password: `p ss'w\d`,
		SSLMode:  "disable",
	}

	want := `host='db' port='5432' user='app' password='p ss\'w\\d' dbname='climbing gym' sslmode='disable'`
	if got := db.DSN(); got != want {
		t.Fatalf("DSN: expected %s, got %s", want, got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	cfg, err := Load("")
	if err != nil || cfg.Server.ListenAddr != ":8000" || !cfg.MigrateOnStart() {
		t.Fatalf("empty path should give defaults, got %+v, %v", cfg, err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(lookupFrom(map[string]string{
		"DB_HOST":        "sql.internal",
		"DB_NAME":        "climbing",
		"DB_USER":        "app",
		"DB_PASS":        "secret",
		"ALLOWED_ORIGIN": "http://localhost:3000",
		"REDIS_ADDR":     "redis:6379",
		"REDIS_DB":       "2",
		"LISTEN_ADDR":    "",
	}))

	if cfg.Database.Host != "sql.internal" || cfg.Database.Password != "secret" {
		t.Errorf("database overrides not applied: %+v", cfg.Database)
	}
	if cfg.Server.AllowedOrigin != "http://localhost:3000" {
		t.Errorf("origin override not applied: %q", cfg.Server.AllowedOrigin)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis overrides not applied: %+v", cfg.Redis)
	}
	if cfg.Server.ListenAddr != ":8000" {
		t.Errorf("empty variable should not override: %q", cfg.Server.ListenAddr)
	}

	cfg.ApplyEnv(lookupFrom(map[string]string{"DATABASE_DSN": "postgres://x"}))
	if cfg.Database.DSN() != "postgres://x" {
		t.Errorf("explicit DSN should win, got %q", cfg.Database.DSN())
	}
}

func TestValidateListsMissing(t *testing.T) {
	cfg := Default()
	cfg.Database.Host = "db"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	want := "missing database settings: DB_NAME, DB_USER, DB_PASS"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SENDLOG_TEST_VALUE=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("SENDLOG_TEST_VALUE", "")
	os.Unsetenv("SENDLOG_TEST_VALUE")

	if err := LoadEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("SENDLOG_TEST_VALUE"); got != "from-dotenv" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
