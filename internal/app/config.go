package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	DescPath string // fleet descriptor hcl file

	// Programs is the number of training programs the descriptor is expected
	// to serve; 0 skips the trainer cardinality check.
	Programs int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DescPath == "" {
		return nil, errors.New("DescPath is a required configuration field and cannot be empty")
	}
	if cfg.Programs < 0 {
		return nil, errors.New("Programs cannot be negative")
	}
	return &cfg, nil
}
