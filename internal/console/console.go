// Package console implements the interactive hbnb shell. It parses command
// lines in both the "verb Kind args" and "Kind.verb(args)" forms and drives
// the storage engine.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/shlex"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// DefaultPrompt is printed before each line read in interactive mode.
const DefaultPrompt = "(hbnb) "

// User-facing messages.
const (
	msgClassMissing  = "** class name missing **"
	msgClassUnknown  = "** class doesn't exist **"
	msgIDMissing     = "** instance id missing **"
	msgNoInstance    = "** no instance found **"
	msgAttrMissing   = "** attribute name missing **"
	msgValueMissing  = "** value missing **"
	msgUnknownSyntax = "*** Unknown syntax: %s"
)

// dotCall matches "<Kind>.<verb>(<args>)".
var dotCall = regexp.MustCompile(`^(\w+)\.(\w+)\((.*)\)$`)

// Console executes shell commands against a storage engine and writes
// results to out.
type Console struct {
	store    *storage.Engine
	out      io.Writer
	logger   *slog.Logger
	prompt   string
	jsonMode bool
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger used for per-command debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPrompt sets the prompt printed by Run. An empty prompt disables it.
func WithPrompt(p string) Option {
	return func(c *Console) { c.prompt = p }
}

// WithJSON makes show and all print entity dictionaries as JSON.
func WithJSON(on bool) Option {
	return func(c *Console) { c.jsonMode = on }
}

// New returns a Console bound to store, writing to out.
func New(store *storage.Engine, out io.Writer, opts ...Option) *Console {
	c := &Console{
		store:  store,
		out:    out,
		logger: slog.New(slog.DiscardHandler),
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run reads commands from in until quit, EOF, or ctx is done. Errors from
// the engine are printed and the loop continues.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.prompt != "" {
			fmt.Fprint(c.out, c.prompt)
		}
		if !scanner.Scan() {
			if c.prompt != "" {
				fmt.Fprintln(c.out)
			}
			return scanner.Err()
		}
		stop, err := c.Execute(scanner.Text())
		if err != nil {
			fmt.Fprintf(c.out, "*** Error: %s\n", err)
		}
		if stop {
			return nil
		}
	}
}

// UserError reports a malformed or unsatisfiable command. Its message is
// what the shell prints.
type UserError struct {
	Msg string
}

func (e *UserError) Error() string { return e.Msg }

func userErr(format string, args ...any) error {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// Execute runs one command line. stop is true for quit and EOF. A
// UserError is printed and not returned; err reports engine failures only.
func (c *Console) Execute(line string) (stop bool, err error) {
	stop, err = c.execute(line)
	var ue *UserError
	if errors.As(err, &ue) {
		c.println(ue.Msg)
		return stop, nil
	}
	return stop, err
}

func (c *Console) execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if m := dotCall.FindStringSubmatch(line); m != nil {
		return false, c.executeDotCall(line, m[1], m[2], m[3])
	}

	words, err := shlex.Split(line)
	if err != nil || len(words) == 0 {
		return false, userErr(msgUnknownSyntax, line)
	}
	return c.Dispatch(words[0], words[1:])
}

// Dispatch runs verb with already-split arguments. Malformed commands fail
// with a *UserError carrying the message to show.
func (c *Console) Dispatch(verb string, args []string) (stop bool, err error) {
	c.logger.Debug("dispatch", "verb", verb, "args", args)

	switch verb {
	case "quit", "EOF":
		return true, nil
	case "help":
		return false, c.help(args)
	case "create":
		return false, c.create(args)
	case "show":
		return false, c.show(args)
	case "destroy":
		return false, c.destroy(args)
	case "all":
		return false, c.all(args)
	case "count":
		return false, c.count(args)
	case "update":
		return false, c.update(args)
	default:
		return false, userErr(msgUnknownSyntax, strings.TrimSpace(verb+" "+strings.Join(args, " ")))
	}
}

func (c *Console) executeDotCall(line, kind, verb, rawArgs string) error {
	switch verb {
	case "all", "count":
		return c.dispatchDot(verb, kind, nil)
	case "show", "destroy":
		args, err := splitArgs(rawArgs)
		if err != nil {
			return userErr(msgUnknownSyntax, line)
		}
		return c.dispatchDot(verb, kind, args)
	case "update":
		if i := strings.Index(rawArgs, "{"); i >= 0 {
			idArgs, err := splitArgs(rawArgs[:i])
			if err != nil {
				return userErr(msgUnknownSyntax, line)
			}
			return c.updateFromDict(kind, idArgs, rawArgs[i:])
		}
		args, err := splitArgs(rawArgs)
		if err != nil {
			return userErr(msgUnknownSyntax, line)
		}
		return c.dispatchDot(verb, kind, args)
	default:
		return userErr(msgUnknownSyntax, line)
	}
}

func (c *Console) dispatchDot(verb, kind string, args []string) error {
	_, err := c.Dispatch(verb, append([]string{kind}, args...))
	return err
}

// splitArgs splits the argument list of a dot call on commas outside
// quotes, then unquotes each piece.
func splitArgs(raw string) ([]string, error) {
	var pieces []string
	var cur strings.Builder
	var quote rune
	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == ',':
			pieces = append(pieces, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	pieces = append(pieces, cur.String())

	var args []string
	for _, p := range pieces {
		words, err := shlex.Split(p)
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			continue
		}
		args = append(args, strings.Join(words, " "))
	}
	return args, nil
}

// lookup resolves the "<Kind> <id>" prefix shared by show, destroy, and
// update.
func (c *Console) lookup(args []string) (types.Entity, error) {
	if err := checkKind(args); err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, userErr(msgIDMissing)
	}
	ent, err := c.store.Get(args[0], args[1])
	if err != nil {
		return nil, userErr(msgNoInstance)
	}
	return ent, nil
}

// checkKind fails unless args starts with a registered kind.
func checkKind(args []string) error {
	if len(args) == 0 {
		return userErr(msgClassMissing)
	}
	if !types.IsKnown(args[0]) {
		return userErr(msgClassUnknown)
	}
	return nil
}

func (c *Console) create(args []string) error {
	if err := checkKind(args); err != nil {
		return err
	}
	ent, err := c.store.Create(args[0])
	if err != nil {
		return err
	}
	if err := c.store.Save(); err != nil {
		return err
	}
	c.println(ent.Meta().ID)
	return nil
}

func (c *Console) show(args []string) error {
	ent, err := c.lookup(args)
	if err != nil {
		return err
	}
	if c.jsonMode {
		return c.printJSON(types.ToDict(ent))
	}
	c.println(ent.String())
	return nil
}

func (c *Console) destroy(args []string) error {
	ent, err := c.lookup(args)
	if err != nil {
		return err
	}
	if err := c.store.Delete(ent.Kind(), ent.Meta().ID); err != nil {
		return err
	}
	return c.store.Save()
}

func (c *Console) all(args []string) error {
	kind := ""
	if len(args) > 0 {
		if !types.IsKnown(args[0]) {
			return userErr(msgClassUnknown)
		}
		kind = args[0]
	}
	ents := c.store.Select(kind)
	if c.jsonMode {
		dicts := make([]map[string]any, len(ents))
		for i, ent := range ents {
			dicts[i] = types.ToDict(ent)
		}
		return c.printJSON(dicts)
	}
	for _, ent := range ents {
		c.println(ent.String())
	}
	return nil
}

func (c *Console) count(args []string) error {
	if err := checkKind(args); err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.store.Count(args[0]))
	return nil
}

func (c *Console) update(args []string) error {
	ent, err := c.lookup(args)
	if err != nil {
		return err
	}
	if len(args) < 3 {
		return userErr(msgAttrMissing)
	}
	if len(args) < 4 {
		return userErr(msgValueMissing)
	}
	if err := types.SetFieldText(ent, args[2], args[3]); err != nil {
		return userErr("** %s **", err)
	}
	return c.store.Persist(ent)
}

// updateFromDict applies every key of a JSON object to the entity. Either
// all keys apply or none do.
func (c *Console) updateFromDict(kind string, idArgs []string, rawDict string) error {
	ent, err := c.lookup(append([]string{kind}, idArgs...))
	if err != nil {
		return err
	}

	dec := json.NewDecoder(strings.NewReader(rawDict))
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil || attrs == nil {
		return userErr("** invalid dictionary **")
	}
	if _, err := dec.Token(); err != io.EOF {
		return userErr("** invalid dictionary **")
	}

	scratch, err := types.New(kind)
	if err != nil {
		return err
	}
	names := slices.Sorted(maps.Keys(attrs))
	values := make([]types.Value, len(names))
	for i, name := range names {
		v, err := types.ValueOf(attrs[name])
		if err != nil {
			return userErr("** %s: %s **", name, err)
		}
		if err := types.SetField(scratch, name, v); err != nil {
			return userErr("** %s **", err)
		}
		values[i] = v
	}
	for i, name := range names {
		if err := types.SetField(ent, name, values[i]); err != nil {
			return err
		}
	}
	return c.store.Persist(ent)
}

func (c *Console) help(args []string) error {
	if len(args) == 0 {
		c.println("Commands (type help <command>):")
		for _, cmd := range commandOrder {
			fmt.Fprintf(c.out, "  %-8s %s\n", cmd, commandHelp[cmd].summary)
		}
		return nil
	}
	h, ok := commandHelp[args[0]]
	if !ok {
		return userErr("*** No help on %s", args[0])
	}
	fmt.Fprintf(c.out, "%s\n  %s\n", h.summary, h.usage)
	return nil
}

func (c *Console) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(c.out, string(out))
	return nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
