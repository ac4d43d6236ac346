package commands

import (
	"context"

	"github.com/MILO15/JS4Python/internal/config"
	"github.com/MILO15/JS4Python/internal/dbcheck"
)

// ShowCmd implements the 'config' command.
type ShowCmd struct {
	ShowSecrets bool `name:"show-secrets" help:"Print the database password instead of masking it"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := g.loadAndAssemble(context.Background(), root.Config)
	if err != nil {
		return err
	}
	if !s.ShowSecrets {
		cfg = cfg.Clone()
		cfg.Build.TemplateArgs.DBURL = dbcheck.Redact(cfg.Build.TemplateArgs.DBURL)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = g.Stdout.Write(data)
	return err
}
