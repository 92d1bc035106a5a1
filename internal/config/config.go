// Package config loads runtime defaults from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into Env.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// DefaultEnvFile is read when Load is called without files.
const DefaultEnvFile = ".env"

// Env holds the settings that may come from the environment. Command line
// flags override every field.
type Env struct {
	DataDir     string `env:"WORDSMITH_DATA_DIR" envDefault:"data"`
	LogLevel    string `env:"WORDSMITH_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"WORDSMITH_LOG_FORMAT" envDefault:"text"`
	CewlPath    string `env:"WORDSMITH_CEWL_PATH"`
	UserAgent   string `env:"WORDSMITH_USER_AGENT" envDefault:"wordsmith/1.0"`
	Concurrency int    `env:"WORDSMITH_CONCURRENCY" envDefault:"1"`
}

// Load reads the given dotenv files, skipping those that do not exist,
// and parses the environment into an Env. Variables already set in the
// environment take precedence over dotenv values.
func Load(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Join(ErrParsingConfig, err)
	}
	return e, nil
}
