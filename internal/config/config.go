package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	AppName  string
	LogLevel string
	DataDir  string

	// Menu source and measurement
	MenuFile string
	MenuGap  int

	// Remote access (serve mode)
	SSHAddr         string
	WebTerminalAddr string
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}

	menuFile := strings.TrimSpace(os.Getenv("MENU_FILE"))
	if menuFile != "" {
		menuFile = resolvePath(cwd, menuFile)
	}

	cfg := &Config{
		AppName:  envStr("APP_NAME", "morenav"),
		LogLevel: strings.ToLower(envStr("LOG_LEVEL", "info")),
		DataDir:  resolvePath(cwd, envStr("DATA_DIR", ".data")),

		MenuFile: menuFile,
		MenuGap:  envInt("MENU_GAP", 1),

		SSHAddr:         envStr("SSH_ADDR", ":2222"),
		WebTerminalAddr: envStr("WEB_TERMINAL_ADDR", "127.0.0.1:8080"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MenuGap < 0 {
		return fmt.Errorf("MENU_GAP must be >= 0")
	}
	switch c.LogLevel {
	case "debug", "trace", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if c.SSHAddr == "" {
		return fmt.Errorf("SSH_ADDR cannot be empty")
	}
	return nil
}

// LoadDotEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment only for keys that are not already set.
func LoadDotEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open dotenv: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		value = unquote(strings.TrimSpace(value))
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setenv %s: %w", key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan dotenv: %w", err)
	}
	return nil
}

// --- helpers ---

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func resolvePath(cwd, value string) string {
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(cwd, value)
}
