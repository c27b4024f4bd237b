package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hbnb/internal/ctxlog"
	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
	File    string `yaml:"file,omitempty"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long: "Write config.yaml to the configuration directory if it is missing,\n" +
			"create the data directory, and write an empty store if none exists.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir(a.configDir)
	if err != nil {
		return sysErr(err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysErr(fmt.Errorf("create config directory: %w", err))
	}

	written, err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), configFile{
		Backend: a.backend,
		DataDir: a.dataDir,
	})
	if err != nil {
		return sysErr(fmt.Errorf("write config: %w", err))
	}

	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg, storage.WithLogger(ctxlog.FromContext(cmd.Context())))
	if err != nil {
		return classifyOpen(err)
	}
	if err := store.Save(); err != nil {
		return sysErr(fmt.Errorf("initialize storage: %w", err))
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "wrote %s\n", filepath.Join(configDir, configFileExt))
	}
	fmt.Fprintf(out, "hbnb initialized: %s\n", store.Backend())
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left alone and written is false.
func writeConfigIfMissing(path string, cfg configFile) (written bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if cfg.Backend == "" {
		cfg.Backend = types.BackendJSON
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
