package console

type commandDoc struct {
	summary string
	usage   string
}

var commandOrder = []string{"all", "count", "create", "destroy", "help", "quit", "show", "update"}

var commandHelp = map[string]commandDoc{
	"all": {
		summary: "Print every entity, or every entity of one kind.",
		usage:   "all [<Kind>] | <Kind>.all()",
	},
	"count": {
		summary: "Print the number of entities of a kind.",
		usage:   "count <Kind> | <Kind>.count()",
	},
	"create": {
		summary: "Create an entity, save it, and print its id.",
		usage:   "create <Kind>",
	},
	"destroy": {
		summary: "Delete an entity and save.",
		usage:   `destroy <Kind> <id> | <Kind>.destroy("<id>")`,
	},
	"help": {
		summary: "List commands or describe one.",
		usage:   "help [<command>]",
	},
	"quit": {
		summary: "Exit the shell. EOF (Ctrl-D) does the same.",
		usage:   "quit",
	},
	"show": {
		summary: "Print an entity.",
		usage:   `show <Kind> <id> | <Kind>.show("<id>")`,
	},
	"update": {
		summary: "Set one attribute, or several from a dictionary, and save.",
		usage:   `update <Kind> <id> <name> "<value>" | <Kind>.update("<id>", {"<name>": <value>, ...})`,
	},
}
