package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
)

const initHeader = `# js4python course configuration.
# course_url, runestone_version and source_commit are computed at build time.
# dburl may be overridden with DBUSER/DBPASS/DBHOST/DBNAME or DBURL.
# ${VAR} is replaced from the environment; a bare $ is kept as written.
`

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(configPath, append([]byte(initHeader), data...), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode configuration").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode configuration").Build()
	}
	return buf.Bytes(), nil
}
