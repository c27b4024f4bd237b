// Package cli implements the hbnb command-line interface: the interactive
// shell as the root command plus one-shot subcommands sharing its dispatch.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/console"
	"github.com/mesh-intelligence/hbnb/internal/ctxlog"
	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// annotationStore marks commands that need the storage engine opened before
// they run.
const annotationStore = "hbnb/store"

// app holds the global flag values and the engine shared by one command
// invocation.
type app struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool

	store *storage.Engine
}

// exitError carries the exit code for a failure that is not a console
// UserError.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func sysErr(err error) error {
	return &exitError{code: exitSysError, err: err}
}

func userErr(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// NewRootCmd creates the top-level "hbnb" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "hbnb",
		Short: "A file-backed object store with an interactive shell",
		Long: "hbnb keeps users, places, and the entities around them in a single\n" +
			"JSON or SQLite file. Run without a command for the interactive shell.",
		Version:            Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Annotations:        map[string]string{annotationStore: "true"},
		Args:               cobra.NoArgs,
		PersistentPreRunE:  a.preRun,
		PersistentPostRunE: a.postRun,
		RunE:               a.runShell,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/hbnb)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: current directory)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: json or sqlite (default: json)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "print show and all output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	for _, cmd := range a.newShellCmds() {
		root.AddCommand(cmd)
	}

	return root
}

// Execute runs the root command against the process arguments and exits
// with the resulting code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return report(root.Execute(), stdout, stderr)
}

// report prints err where it belongs and maps it to an exit code. Shell
// messages go to stdout like they do in the interactive shell.
func report(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return exitSuccess
	}

	var ue *console.UserError
	if errors.As(err, &ue) {
		fmt.Fprintln(stdout, ue.Msg)
		return exitUserError
	}

	fmt.Fprintln(stderr, "hbnb:", err)
	var xe *exitError
	if errors.As(err, &xe) {
		return xe.code
	}
	// Flag and argument errors from cobra.
	return exitUserError
}

func (a *app) preRun(cmd *cobra.Command, args []string) error {
	logger, err := loggerFromEnv(cmd.ErrOrStderr())
	if err != nil {
		return userErr(err)
	}
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	if cmd.Annotations[annotationStore] != "true" {
		return nil
	}

	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg, storage.WithLogger(logger))
	if err != nil {
		return classifyOpen(err)
	}
	a.store = store
	logger.Debug("opened store", "backend", store.Backend(), "objects", len(store.All()))
	return nil
}

func (a *app) postRun(cmd *cobra.Command, args []string) error {
	if a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		return sysErr(err)
	}
	return nil
}

// storeConfig resolves the storage configuration from flags, config.yaml,
// and the environment.
func (a *app) storeConfig() (types.Config, error) {
	configDir, err := resolveConfigDir(a.configDir)
	if err != nil {
		return types.Config{}, sysErr(err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, userErr(err)
	}

	dataDir, err := resolveDataDir(a.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysErr(err)
	}

	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
		File:    v.GetString(cfgKeyFile),
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, userErr(fmt.Errorf("backend %q: %w", cfg.Backend, err))
	}
	return cfg, nil
}

func classifyOpen(err error) error {
	if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) {
		return userErr(err)
	}
	return sysErr(err)
}

// newConsole returns a shell bound to the opened engine and the command's
// output and logger.
func (a *app) newConsole(cmd *cobra.Command, prompt string) *console.Console {
	return console.New(a.store, cmd.OutOrStdout(),
		console.WithLogger(ctxlog.FromContext(cmd.Context())),
		console.WithPrompt(prompt),
		console.WithJSON(a.jsonMode),
	)
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if err := a.newConsole(cmd, promptFor(in)).Run(cmd.Context(), in); err != nil {
		return sysErr(err)
	}
	return nil
}

// promptFor returns the shell prompt when in is a terminal and no prompt
// when input is piped or redirected.
func promptFor(in io.Reader) string {
	f, ok := in.(*os.File)
	if !ok {
		return ""
	}
	fi, err := f.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return ""
	}
	return console.DefaultPrompt
}
