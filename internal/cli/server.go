package cli

import (
	"context"
	"syscall"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/skcvote/ballotd/internal/api"
	"github.com/skcvote/ballotd/internal/config"
	"github.com/skcvote/ballotd/internal/di"
	"github.com/skcvote/ballotd/internal/seed"
	"github.com/urfave/cli/v3"
)

var serverCMD = &cli.Command{
	Name:     "server",
	Aliases:  []string{"serve"},
	Usage:    "Run the voting API server.",
	Category: "Service",
	Flags:    serverFlags,
	Action: func(ctx context.Context, cmd *cli.Command) error {
		injector := di.NewWithConfig(configFromFlags(cmd))

		logger := do.MustInvoke[logrus.FieldLogger](injector).WithField("component", "main")

		logger.Info("Starting...")

		seeder := do.MustInvoke[*seed.Seeder](injector)
		if err := seeder.Ensure(ctx); err != nil {
			return err
		}

		server := do.MustInvoke[*api.Server](injector)

		go func() {
			if err := server.Run(); err != nil {
				logger.WithError(err).Fatal("Failed to run server")
			}
		}()

		logger.Info("Running...")

		if err := injector.ShutdownOnSignals(syscall.SIGINT, syscall.SIGTERM); err != nil {
			logger.WithError(err).Fatal("Failed to shutdown")
		}

		return nil
	},
}

func configFromFlags(cmd *cli.Command) config.Config {
	return config.Config{
		HttpPort: int(cmd.Int(flagNameServerPort)),
		NATSURL:  cmd.String(flagNameNATSURL),
		Loglevel: cmd.String(flagNameLogLevel),
		Backend:  storageBackend(cmd),
		Secret:   cmd.String(flagNameSessionSecret),
	}
}
