package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/MILO15/JS4Python/cmd/js4python/commands"
	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("js4python"),
		kong.Description("Build the JS4Python interactive course with sphinx-build"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	err := parser.Run(commands.NewGlobal(), cli)
	if err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
