package ngvgeom

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/akmonengine/ngvgeom/endfoot"
	"github.com/joho/godotenv"
)

const (
	// EnvWorkers overrides Config.Workers in LoadEnv
	EnvWorkers = "NGV_WORKERS"
	// EnvLengthTolerance overrides Config.LengthTolerance in LoadEnv
	EnvLengthTolerance = "NGV_LENGTH_TOLERANCE"

	maxConfigFileSize = 1 * 1024 * 1024
)

// Config holds the engine parameters
type Config struct {
	Workers         int     `json:"workers"`
	LengthTolerance float64 `json:"length_tolerance"`
}

// DefaultConfig returns a single worker configuration with endfoot.DefaultLengthTolerance
func DefaultConfig() Config {
	return Config{
		Workers:         DEFAULT_WORKERS,
		LengthTolerance: endfoot.DefaultLengthTolerance,
	}
}

// Validate rejects configurations the engine cannot run with
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.LengthTolerance < 0 {
		return fmt.Errorf("length tolerance must not be negative, got %g", c.LengthTolerance)
	}
	return nil
}

// LoadConfig reads a JSON configuration file.
// Fields omitted from the file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return config, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return config, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSize {
		return config, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, config.Validate()
}

// LoadEnv overrides base with the NGV_* variables of a .env file.
// Variables absent from the file leave base untouched.
func LoadEnv(path string, base Config) (Config, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return base, fmt.Errorf("failed to read env file: %w", err)
	}

	config := base
	if value, ok := env[EnvWorkers]; ok {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return base, fmt.Errorf("invalid %s %q: %w", EnvWorkers, value, err)
		}
		config.Workers = workers
	}
	if value, ok := env[EnvLengthTolerance]; ok {
		tolerance, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return base, fmt.Errorf("invalid %s %q: %w", EnvLengthTolerance, value, err)
		}
		config.LengthTolerance = tolerance
	}

	return config, config.Validate()
}
