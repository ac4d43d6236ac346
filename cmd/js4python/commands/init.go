package commands

import (
	"fmt"

	"github.com/MILO15/JS4Python/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		fmt.Fprintln(g.Stdout, "Initialization failed")
		return err
	}
	fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}
