/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads dynamodel settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvRegion       = "DYNAMODEL_AWS_REGION"
	EnvAccessKey    = "DYNAMODEL_AWS_ACCESS_KEY"
	EnvSecretKey    = "DYNAMODEL_AWS_SECRET_KEY"
	EnvEndpoint     = "DYNAMODEL_DDB_ENDPOINT"
	EnvTable        = "DYNAMODEL_DDB_TABLE"
	EnvMaxFanOut    = "DYNAMODEL_MAX_FAN_OUT"
	EnvMaxBatchSize = "DYNAMODEL_MAX_BATCH_SIZE"
)

// Limits.
const (
	DefaultMaxFanOut    = 25
	DefaultMaxBatchSize = 100
	// MaxTransactItems is the DynamoDB TransactWriteItems ceiling.
	MaxTransactItems = 100
)

// AWS holds the settings of the DynamoDB client.
type AWS struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint (e.g., DynamoDB Local).
	Endpoint string
	// Table is the default physical table name, used by tools and integration tests.
	Table string
}

// HasStaticCredentials reports whether both keys are set.
func (a AWS) HasStaticCredentials() bool {
	return a.AccessKey != "" && a.SecretKey != ""
}

// Config holds the runtime settings of a Client.
type Config struct {
	AWS AWS

	// MaxFanOut caps the keys one key role may encode to.
	// Default: 25
	MaxFanOut int

	// MaxBatchSize caps the rows of one atomic write.
	// Default: 100
	// Max: 100
	MaxBatchSize int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		MaxFanOut:    DefaultMaxFanOut,
		MaxBatchSize: DefaultMaxBatchSize,
	}
}

// Load reads files (".env" when none are given) if they exist, then the
// environment. Variables already set in the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.AWS = AWS{
		Region:    firstEnv(EnvRegion, "AWS_REGION"),
		AccessKey: firstEnv(EnvAccessKey, "AWS_ACCESS_KEY_ID"),
		SecretKey: firstEnv(EnvSecretKey, "AWS_SECRET_ACCESS_KEY"),
		Endpoint:  os.Getenv(EnvEndpoint),
		Table:     os.Getenv(EnvTable),
	}

	var err error
	if cfg.MaxFanOut, err = intEnv(EnvMaxFanOut, cfg.MaxFanOut); err != nil {
		return Config{}, err
	}
	if cfg.MaxBatchSize, err = intEnv(EnvMaxBatchSize, cfg.MaxBatchSize); err != nil {
		return Config{}, err
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps values into their accepted ranges.
func (c *Config) Validate() {
	if c.MaxFanOut < 1 {
		c.MaxFanOut = DefaultMaxFanOut
	}
	if c.MaxBatchSize < 1 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	if c.MaxBatchSize > MaxTransactItems {
		c.MaxBatchSize = MaxTransactItems
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", name, raw)
	}
	return n, nil
}
