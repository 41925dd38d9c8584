package grocerysdk

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ratio1/grocery_manager_go/internal/devseed"
	"github.com/Ratio1/grocery_manager_go/internal/httpx"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery/mock"
)

// DefaultBaseURL is the hosted grocery backend.
const DefaultBaseURL = "https://grocery-be-tpf9.onrender.com/api"

const (
	envMode        = "GROCERY_RUNTIME_MODE"
	envAPIURL      = "GROCERY_API_URL"
	envMockSeed    = "GROCERY_MOCK_SEED"
	envIDStrategy  = "GROCERY_ID_STRATEGY"
	envHTTPTimeout = "GROCERY_HTTP_TIMEOUT"
	envMaxRetries  = "GROCERY_MAX_RETRIES"
	envLogLevel    = "GROCERY_LOG_LEVEL"
	envLogFile     = "GROCERY_LOG_FILE"

	ModeAuto = "auto"
	ModeHTTP = "http"
	ModeMock = "mock"
)

// Config holds everything needed to build a client.
type Config struct {
	Mode       string
	BaseURL    string
	MockSeed   string
	IDStrategy string
	Timeout    time.Duration
	MaxRetries int
	LogLevel   string
	LogFile    string
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeHTTP,
		IDStrategy: grocery.IDStrategyUUID,
		Timeout:    httpx.DefaultTimeout,
		LogLevel:   "info",
	}
}

// ConfigFromEnv overlays the GROCERY_* environment variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := env(envMode); v != "" {
		cfg.Mode = strings.ToLower(v)
	}
	cfg.BaseURL = env(envAPIURL)
	cfg.MockSeed = env(envMockSeed)
	if v := env(envIDStrategy); v != "" {
		cfg.IDStrategy = strings.ToLower(v)
	}
	if v := env(envHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("grocerysdk: invalid %s %q: %w", envHTTPTimeout, v, err)
		}
		cfg.Timeout = d
	}
	if v := env(envMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("grocerysdk: invalid %s %q", envMaxRetries, v)
		}
		cfg.MaxRetries = n
	}
	if v := env(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogFile = env(envLogFile)
	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// ResolveMode returns the effective mode ("http" or "mock").
func (c Config) ResolveMode() (string, error) {
	switch strings.ToLower(strings.TrimSpace(c.Mode)) {
	case "", ModeHTTP:
		return ModeHTTP, nil
	case ModeMock:
		return ModeMock, nil
	case ModeAuto:
		if strings.TrimSpace(c.BaseURL) != "" {
			return ModeHTTP, nil
		}
		return ModeMock, nil
	default:
		return "", fmt.Errorf("grocerysdk: unsupported %s value %q", envMode, c.Mode)
	}
}

// New builds a client for cfg and returns the resolved mode.
func New(cfg Config) (*grocery.Client, string, error) {
	mode, err := cfg.ResolveMode()
	if err != nil {
		return nil, "", err
	}
	if mode == ModeMock {
		return newMockClient(cfg)
	}
	return newHTTPClient(cfg)
}

// NewFromEnv is ConfigFromEnv followed by New.
func NewFromEnv() (*grocery.Client, string, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, "", err
	}
	return New(cfg)
}

func newHTTPClient(cfg Config) (*grocery.Client, string, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	policy := httpx.DefaultRetryPolicy
	policy.MaxRetries = cfg.MaxRetries
	client, err := grocery.New(baseURL,
		httpx.WithTimeout(cfg.Timeout),
		httpx.WithRetryPolicy(policy),
	)
	if err != nil {
		return nil, "", fmt.Errorf("grocerysdk: init HTTP client: %w", err)
	}
	return client, ModeHTTP, nil
}

func newMockClient(cfg Config) (*grocery.Client, string, error) {
	store := mock.New()
	if path := strings.TrimSpace(cfg.MockSeed); path != "" {
		items, err := devseed.LoadItemSeed(path)
		if err != nil {
			return nil, "", fmt.Errorf("grocerysdk: load mock seed: %w", err)
		}
		if err := store.Seed(items); err != nil {
			return nil, "", fmt.Errorf("grocerysdk: apply mock seed: %w", err)
		}
	}
	return grocery.NewWithBackend(store), ModeMock, nil
}

// IDGenerator returns the generator selected by cfg.IDStrategy.
func IDGenerator(cfg Config) (grocery.IDGenerator, error) {
	gen, err := grocery.ParseIDStrategy(cfg.IDStrategy)
	if err != nil {
		return nil, fmt.Errorf("grocerysdk: %s: %w", envIDStrategy, err)
	}
	return gen, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("grocerysdk: invalid %s %q", envLogLevel, name)
	}
	return level, nil
}

// Logger builds a text logger at cfg.LogLevel. It writes to cfg.LogFile when
// set and to fallback otherwise; a nil fallback discards output. The returned
// closer releases the log file.
func (c Config) Logger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var (
		w      = fallback
		closer io.Closer = io.NopCloser(nil)
	)
	if path := strings.TrimSpace(c.LogFile); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("grocerysdk: open log file: %w", err)
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}
