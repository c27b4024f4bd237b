// Command hbnb runs the hbnb shell and its one-shot subcommands.
package main

import "github.com/mesh-intelligence/hbnb/internal/cli"

func main() {
	cli.Execute()
}
