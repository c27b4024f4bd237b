package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/console"
)

// shellCmd describes a one-shot subcommand that runs a single shell verb.
type shellCmd struct {
	verb  string
	use   string
	short string
}

var shellCmds = []shellCmd{
	{"create", "create <Kind>", "Create an entity and print its id"},
	{"show", "show <Kind> <id>", "Print an entity"},
	{"destroy", "destroy <Kind> <id>", "Delete an entity"},
	{"all", "all [<Kind>]", "Print every entity, or every entity of one kind"},
	{"count", "count <Kind>", "Print the number of entities of a kind"},
	{"update", "update <Kind> <id> <name> <value>", "Set one attribute of an entity (use -- before negative numbers)"},
}

func (a *app) newShellCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, len(shellCmds))
	for i, sc := range shellCmds {
		cmds[i] = &cobra.Command{
			Use:         sc.use,
			Short:       sc.short,
			Args:        cobra.ArbitraryArgs,
			Annotations: map[string]string{annotationStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.newConsole(cmd, "").Dispatch(sc.verb, args)
				return classifyShell(err)
			},
		}
	}
	return cmds
}

// classifyShell passes console UserErrors through and marks everything else
// as a system failure.
func classifyShell(err error) error {
	if err == nil {
		return nil
	}
	var ue *console.UserError
	if errors.As(err, &ue) {
		return err
	}
	return sysErr(err)
}
