package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
)

// Load reads the course configuration. Values from the YAML file at path are
// layered over Default(); ${VAR} references are expanded from the environment
// after .env files have been loaded, and a bare $ is kept literally. A missing
// file is only tolerated for the default path, in which case the built-in
// defaults are used as-is.
func Load(path string) (*Config, error) {
	if _, err := loadEnvFiles(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load .env file").
			Fatal().
			Build()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		slog.Debug("No configuration file found, using defaults", "path", path)
	case err != nil:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	default:
		if err := decodeInto(cfg, data); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
				Fatal().
				WithContext("path", path).
				Build()
		}
	}

	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envRef matches ${VAR}. Bare $ is left alone so passwords in dburl survive.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		return []byte(os.Getenv(string(m[2 : len(m)-1])))
	})
}

// decodeInto overlays YAML onto cfg. Unknown keys are rejected so that typos
// do not silently fall back to defaults.
func decodeInto(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(expandEnv(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
