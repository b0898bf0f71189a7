package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

type Config struct {
	Port      string
	DBPath    string
	VaultPath string
	Timezone  string
	LogLevel  string

	// token -> actor, parsed from BURNOUT_API_TOKENS="alice=tok1,bob=tok2"
	Tokens map[string]string

	// mood submissions allowed per actor within SubmitWindow
	SubmitLimit  int
	SubmitWindow time.Duration

	ModelPath           string
	ModelTimeout        time.Duration
	ModelHealthInterval time.Duration
	ONNXLibrary         string
	ONNXInputName       string
	ONNXOutputName      string

	Sentiment    string
	ContactsFile string

	ValkeyAddr     string
	ValkeyPassword string
	ValkeyChannel  string
}

// LoadEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnv(path string) {
	if path == "" {
		return
	}
	if err := gotenv.Load(path); err != nil {
		slog.Debug("[Config] No .env file loaded, using OS environment", slog.String("path", path))
	}
}

// Load reads the server configuration. API tokens are required.
func Load() (*Config, error) {
	return load(true)
}

// LoadLocal reads the configuration for local tools that open the database
// directly and need no API tokens
func LoadLocal() (*Config, error) {
	return load(false)
}

func load(requireTokens bool) (*Config, error) {
	cfg := &Config{
		Port:      getEnv("BURNOUT_PORT", "8080"),
		DBPath:    getEnv("BURNOUT_DB_PATH", ""),
		VaultPath: getEnv("BURNOUT_VAULT_PATH", ""),
		Timezone:  getEnv("BURNOUT_TIMEZONE", "Asia/Kolkata"),
		LogLevel:  getEnv("BURNOUT_LOG_LEVEL", "info"),

		ModelPath:      getEnv("BURNOUT_MODEL_PATH", ""),
		ONNXLibrary:    getEnv("BURNOUT_ONNX_LIBRARY", ""),
		ONNXInputName:  getEnv("BURNOUT_ONNX_INPUT", "float_input"),
		ONNXOutputName: getEnv("BURNOUT_ONNX_OUTPUT", "probability"),

		Sentiment:    strings.ToLower(getEnv("BURNOUT_SENTIMENT", "keyword")),
		ContactsFile: getEnv("BURNOUT_CONTACTS_FILE", ""),

		ValkeyAddr:     getEnv("BURNOUT_VALKEY_ADDR", ""),
		ValkeyPassword: getEnv("BURNOUT_VALKEY_PASSWORD", ""),
		ValkeyChannel:  getEnv("BURNOUT_VALKEY_CHANNEL", "burnout.handoff"),
	}

	var err error
	if cfg.ModelTimeout, err = getDuration("BURNOUT_MODEL_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ModelHealthInterval, err = getDuration("BURNOUT_MODEL_HEALTH_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.SubmitLimit, err = getInt("BURNOUT_SUBMIT_LIMIT", 30); err != nil {
		return nil, err
	}
	if cfg.SubmitWindow, err = getDuration("BURNOUT_SUBMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.Tokens, err = parseTokens(os.Getenv("BURNOUT_API_TOKENS")); err != nil {
		return nil, err
	}

	if err := cfg.validate(requireTokens); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate(requireTokens bool) error {
	if c.DBPath == "" {
		return fmt.Errorf("BURNOUT_DB_PATH is required")
	}
	if c.VaultPath == "" {
		return fmt.Errorf("BURNOUT_VAULT_PATH is required")
	}
	if requireTokens && len(c.Tokens) == 0 {
		return fmt.Errorf("BURNOUT_API_TOKENS must name at least one actor")
	}
	if c.Sentiment != "keyword" && c.Sentiment != "vader" {
		return fmt.Errorf("BURNOUT_SENTIMENT must be keyword or vader, got %q", c.Sentiment)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("BURNOUT_TIMEZONE: %w", err)
	}
	return nil
}

func (c *Config) ActorFromToken(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	actor, ok := c.Tokens[token]
	return actor, ok
}

// Level maps LogLevel to a slog level, defaulting to info
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseTokens(raw string) (map[string]string, error) {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		actor, token, ok := strings.Cut(pair, "=")
		actor, token = strings.TrimSpace(actor), strings.TrimSpace(token)
		if !ok || actor == "" || token == "" {
			return nil, fmt.Errorf("BURNOUT_API_TOKENS: malformed entry %q, want actor=token", pair)
		}
		if prev, dup := tokens[token]; dup {
			return nil, fmt.Errorf("BURNOUT_API_TOKENS: token shared by %s and %s", prev, actor)
		}
		tokens[token] = actor
	}
	return tokens, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, val)
	}
	return d, nil
}

func getInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid positive integer %q", key, val)
	}
	return n, nil
}
