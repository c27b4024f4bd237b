package types

import "errors"

// Config holds backend selection and parameters for opening a store.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	File    string `json:"file" yaml:"file"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default backing file names per backend, used when Config.File is empty.
const (
	DefaultJSONFile   = "file.json"
	DefaultSQLiteFile = "hbnb.db"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// FileName returns File, or the default file name for the backend.
func (c Config) FileName() string {
	if c.File != "" {
		return c.File
	}
	if c.Backend == BackendSQLite {
		return DefaultSQLiteFile
	}
	return DefaultJSONFile
}
