package sandbox

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// FailConfig injects errors into a share of API requests.
type FailConfig struct {
	Rate float64
	Code int
}

// Enabled reports whether any request can fail.
func (f FailConfig) Enabled() bool { return f.Rate > 0 }

// ParseFailConfig parses "rate=<float>,code=<httpStatus>". The code defaults
// to 500; an empty string disables injection.
func ParseFailConfig(raw string) (FailConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return FailConfig{}, nil
	}
	cfg := FailConfig{Code: http.StatusInternalServerError}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return FailConfig{}, fmt.Errorf("sandbox: invalid fail segment %q", part)
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "rate":
			rate, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return FailConfig{}, fmt.Errorf("sandbox: fail rate: %w", err)
			}
			if rate < 0 || rate > 1 {
				return FailConfig{}, fmt.Errorf("sandbox: fail rate %v outside [0,1]", rate)
			}
			cfg.Rate = rate
		case "code":
			code, err := strconv.Atoi(val)
			if err != nil {
				return FailConfig{}, fmt.Errorf("sandbox: fail code: %w", err)
			}
			if code < 400 || code > 599 {
				return FailConfig{}, fmt.Errorf("sandbox: fail code %d is not an error status", code)
			}
			cfg.Code = code
		default:
			return FailConfig{}, fmt.Errorf("sandbox: unknown fail key %q", key)
		}
	}
	return cfg, nil
}
