package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Keys in config.yaml.
	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
	cfgKeyFile    = "file"

	// envPrefix scopes the environment overrides: HBNB_BACKEND, HBNB_FILE.
	envPrefix = "HBNB"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml or config directory is not an error; defaults apply.
// HBNB_BACKEND and HBNB_FILE override the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendJSON)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyFile} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveConfigDir applies flag > HBNB_CONFIG_DIR > platform default.
func resolveConfigDir(flag string) (string, error) {
	dir, err := paths.ResolveConfigDir(flag)
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return dir, nil
}

// resolveDataDir applies flag > config.yaml data_dir > HBNB_DATA_DIR > CWD.
func resolveDataDir(flag, configValue string) (string, error) {
	dir, err := paths.ResolveDataDir(flag, configValue)
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return dir, nil
}
