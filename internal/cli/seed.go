package cli

import (
	"context"

	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/di"
	"github.com/skcvote/ballotd/internal/seed"
	"github.com/urfave/cli/v3"
)

var seedCMD = &cli.Command{
	Name:     "seed",
	Usage:    "Ensure the default election, roster and stats exist in the store.",
	Category: "Utility",
	Flags:    serverFlags,
	Action: func(ctx context.Context, cmd *cli.Command) error {
		injector := di.NewWithConfig(configFromFlags(cmd))
		defer injector.Shutdown() //nolint:errcheck

		seeder := do.MustInvoke[*seed.Seeder](injector)

		return seeder.Ensure(ctx)
	},
}
