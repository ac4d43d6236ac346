package commands

import (
	"fmt"

	"github.com/MILO15/JS4Python/internal/config"
	"github.com/MILO15/JS4Python/internal/deploy"
)

// DeployCmd implements the 'deploy' command.
type DeployCmd struct {
	Dest string `help:"Override serving.dest"`
}

func (d *DeployCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	dest := cfg.Serving.Dest
	if d.Dest != "" {
		dest = d.Dest
	}
	res, err := deploy.Copy(cfg.Serving.Dir, dest)
	if err != nil {
		fmt.Fprintln(g.Stdout, "Deploy failed")
		return err
	}
	fmt.Fprintf(g.Stdout, "Copied %d files (%d bytes) from %s to %s\n", res.Files, res.Bytes, cfg.Serving.Dir, dest)
	return nil
}
