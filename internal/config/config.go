package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// MCP transport selection. Stdio is the default for assistant hosts that
// spawn the server as a subprocess.
const (
	MCPTransportStdio = "stdio"
	MCPTransportHTTP  = "http"
)

// Config stores runtime configuration for the assistant server.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	CacheDir      string
	CacheTTLHours int

	FPLBaseURL                string
	FPLTimeout                time.Duration
	FPLMaxRetries             int
	FPLCircuitEnabled         bool
	FPLCircuitFailureCount    int
	FPLCircuitOpenTimeout     time.Duration
	FPLCircuitHalfOpenMaxReq  int
	FPLAuthURL                string
	FPLAuthRedirectURI        string

	WebAddr       string
	PublicBaseURL string
	WebEnabled    bool

	MCPTransport string
	MCPAddr      string

	RefreshWorkers int

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cacheTTLHours, err := getEnvAsInt("FPL_CACHE_TTL_HOURS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CACHE_TTL_HOURS: %w", err)
	}
	if cacheTTLHours < 1 {
		return Config{}, fmt.Errorf("FPL_CACHE_TTL_HOURS must be >= 1, got %d", cacheTTLHours)
	}

	fplTimeout, err := getEnvAsDuration("FPL_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_API_TIMEOUT: %w", err)
	}
	fplMaxRetries, err := getEnvAsInt("FPL_API_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_API_MAX_RETRIES: %w", err)
	}
	fplCircuitEnabled, err := strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	fplCircuitFailureCount, err := getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	fplCircuitOpenTimeout, err := getEnvAsDuration("FPL_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	fplCircuitHalfOpenMaxReq, err := getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	webEnabled, err := strconv.ParseBool(getEnv("WEB_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WEB_ENABLED: %w", err)
	}

	mcpTransport, err := parseMCPTransport(getEnv("MCP_TRANSPORT", MCPTransportStdio))
	if err != nil {
		return Config{}, err
	}

	refreshWorkers, err := getEnvAsInt("REFRESH_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_WORKERS: %w", err)
	}
	if refreshWorkers < 1 {
		refreshWorkers = 1
	}

	webAddr := getEnv("WEB_ADDR", ":8000")

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "fpl-assistant"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),

		CacheDir:      getEnv("FPL_CACHE_DIR", ".fpl-cache"),
		CacheTTLHours: cacheTTLHours,

		FPLBaseURL:               strings.TrimRight(getEnv("FPL_API_BASE_URL", "https://fantasy.premierleague.com/api"), "/"),
		FPLTimeout:               fplTimeout,
		FPLMaxRetries:            fplMaxRetries,
		FPLCircuitEnabled:        fplCircuitEnabled,
		FPLCircuitFailureCount:   fplCircuitFailureCount,
		FPLCircuitOpenTimeout:    fplCircuitOpenTimeout,
		FPLCircuitHalfOpenMaxReq: fplCircuitHalfOpenMaxReq,
		FPLAuthURL:               getEnv("FPL_AUTH_URL", "https://users.premierleague.com/accounts/login/"),
		FPLAuthRedirectURI:       getEnv("FPL_AUTH_REDIRECT_URI", "https://fantasy.premierleague.com/a/login"),

		WebAddr:       webAddr,
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost"+webAddr), "/"),
		WebEnabled:    webEnabled,

		MCPTransport: mcpTransport,
		MCPAddr:      getEnv("MCP_ADDR", ":8765"),

		RefreshWorkers: refreshWorkers,

		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s", v, EnvDev, EnvProd)
	}
}

func parseMCPTransport(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case MCPTransportStdio, MCPTransportHTTP:
		return value, nil
	default:
		return "", fmt.Errorf("invalid MCP_TRANSPORT %q: valid values are %s, %s", v, MCPTransportStdio, MCPTransportHTTP)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
