package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Settings holds the server configuration. Zero values are replaced by
// defaults on load, so a settings file only needs the fields it overrides.
type Settings struct {
	Host string `json:"host"`
	Port int    `json:"port"`

	// Transport tuning.
	WriteWaitSeconds int   `json:"write_wait_seconds"`
	PongWaitSeconds  int   `json:"pong_wait_seconds"`
	MaxMessageSize   int64 `json:"max_message_size"`
	SendBuffer       int   `json:"send_buffer"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Host:             "localhost",
		Port:             8080,
		WriteWaitSeconds: 10,
		PongWaitSeconds:  60,
		MaxMessageSize:   4096,
		SendBuffer:       256,
	}
}

// Load reads settings from the given JSON file, fills gaps with defaults,
// applies environment overrides, and validates the result. An empty path
// skips the file and uses defaults plus environment.
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read settings file: %w", err)
			}
			// Missing file is fine; defaults apply.
		} else if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}

	s.applyEnv()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// applyEnv overrides file values from the environment.
func (s *Settings) applyEnv() {
	if host := os.Getenv("RELAY_HOST"); host != "" {
		s.Host = host
	}
	if port := os.Getenv("RELAY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			s.Port = p
		}
	}
	if buffer := os.Getenv("RELAY_SEND_BUFFER"); buffer != "" {
		if b, err := strconv.Atoi(buffer); err == nil {
			s.SendBuffer = b
		}
	}
}

// Validate checks the settings for values the server cannot run with.
func (s *Settings) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, s.Port)
	}
	if s.WriteWaitSeconds <= 0 {
		return fmt.Errorf("%w: write_wait_seconds must be positive", ErrInvalidConfig)
	}
	if s.PongWaitSeconds <= 0 {
		return fmt.Errorf("%w: pong_wait_seconds must be positive", ErrInvalidConfig)
	}
	if s.MaxMessageSize <= 0 {
		return fmt.Errorf("%w: max_message_size must be positive", ErrInvalidConfig)
	}
	if s.SendBuffer <= 0 {
		return fmt.Errorf("%w: send_buffer must be positive", ErrInvalidConfig)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// WriteWait returns the write deadline as a duration.
func (s *Settings) WriteWait() time.Duration {
	return time.Duration(s.WriteWaitSeconds) * time.Second
}

// PongWait returns the pong deadline as a duration.
func (s *Settings) PongWait() time.Duration {
	return time.Duration(s.PongWaitSeconds) * time.Second
}
