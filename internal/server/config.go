package server

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/adlumen/budget-engine/internal/config"
	"github.com/adlumen/budget-engine/pkg/constants"
)

// Config holds the resolved runtime parameters for the HTTP server.
type Config struct {
	Address      string
	MaxBodySize  string
	Logging      config.LoggingConfig
	maxBodyBytes int64
}

// LoadConfig resolves the server runtime parameters from the server and
// logging blocks of the shared configuration file, so one file drives both
// the CLI and the server. If the file does not exist, defaults are returned
// without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:      constants.DefaultServerAddress,
		MaxBodySize:  fmt.Sprintf("%d", constants.DefaultMaxBodyBytes),
		maxBodyBytes: constants.DefaultMaxBodyBytes,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	loaded, err := config.LoadConfigurationFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if strings.TrimSpace(loaded.Server.Address) != "" {
		cfg.Address = loaded.Server.Address
	}
	if strings.TrimSpace(loaded.Server.MaxBodySize) != "" {
		cfg.MaxBodySize = loaded.Server.MaxBodySize
	}
	cfg.Logging = loaded.Logging

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MaxBodyBytes returns the configured request body limit in bytes.
func (c *Config) MaxBodyBytes() int64 {
	return c.maxBodyBytes
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.MaxBodySize) == "" {
		c.maxBodyBytes = constants.DefaultMaxBodyBytes
		return nil
	}
	limit, err := parseSize(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid maxBodySize %q: %w", c.MaxBodySize, err)
	}
	c.maxBodyBytes = limit
	return nil
}

// parseSize parses a byte count with an optional KB/MB suffix.
func parseSize(value string) (int64, error) {
	value = strings.TrimSpace(value)
	split := len(value)
	for i, r := range value {
		if !unicode.IsDigit(r) {
			split = i
			break
		}
	}
	if split == 0 {
		return 0, fmt.Errorf("no leading digits")
	}

	number, err := strconv.ParseInt(value[:split], 10, 64)
	if err != nil {
		return 0, err
	}

	switch strings.ToUpper(strings.TrimSpace(value[split:])) {
	case "", "B":
		return number, nil
	case "KB", "K":
		return number * 1024, nil
	case "MB", "M":
		return number * 1024 * 1024, nil
	default:
		return 0, fmt.Errorf("unknown size suffix %q", value[split:])
	}
}
