package main

import (
	"errors"
	"fmt"
	"strings"

	"qubic.li/archiver/archiver"
)

// Config is the archiver process's typed, validated configuration surface.
// CLI flag parsing stays in run(); this type is what the rest of the
// process is actually constructed from.
type Config struct {
	Port      int
	Computor  string
	DBFile    string
	Consumers int
}

// DefaultConfig returns the archiver's default configuration before any
// flag or environment override is applied.
func DefaultConfig() Config {
	return Config{
		Port:      defaultPort,
		DBFile:    defaultDBFile,
		Consumers: archiver.DefaultConsumerCount,
	}
}

// Validate checks cfg for the constraints run() relies on before
// constructing a client, store, and HTTP server from it.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Computor) == "" {
		return errors.New("computor is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if strings.TrimSpace(cfg.DBFile) == "" {
		return errors.New("db-file is required")
	}
	if cfg.Consumers <= 0 {
		return errors.New("consumers must be > 0")
	}
	return nil
}
