package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when Load is called without arguments.
const DefaultEnvFile = ".env.testing"

// Config is the typed configuration read from the environment.
type Config struct {
	App       AppConfig
	Testbench TestbenchConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	URL   string
	Key   string
}

// TestbenchConfig selects the harness strategies at the composition root.
type TestbenchConfig struct {
	Backend    string // framework | simple
	Dispatcher string // stub | router
	LogLevel   string // logrus level name
	Strict     bool   // unknown providers fail instead of being skipped
}

// Load reads the env files (if present) and populates a Config from
// environment variables. Variables already set in the process win over the
// files, as with godotenv.Load.
//
//	cfg := config.Load()                       // .env.testing
//	cfg := config.Load("testdata/ci.env")
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	// Non-fatal: CI rarely ships an env file
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoLaravel"),
			Env:   env("APP_ENV", "testing"),
			Debug: envBool("APP_DEBUG", true),
			URL:   strings.TrimRight(env("APP_URL", "http://localhost"), "/"),
			Key:   env("APP_KEY", ""),
		},
		Testbench: TestbenchConfig{
			Backend:    strings.ToLower(env("TESTBENCH_BACKEND", "framework")),
			Dispatcher: strings.ToLower(env("TESTBENCH_DISPATCHER", "stub")),
			LogLevel:   strings.ToLower(env("TESTBENCH_LOG_LEVEL", "warn")),
			Strict:     envBool("TESTBENCH_STRICT_PROVIDERS", false),
		},
	}
}

// Read parses env files into a map without touching the process environment.
func Read(envFiles ...string) (map[string]string, error) {
	return godotenv.Read(envFiles...)
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
