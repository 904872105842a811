package cli

import (
	"github.com/urfave/cli/v3"
)

const defaultHTTPPort = 8080

const (
	flagNameNATSURL       = "nats-url"
	flagNameServerPort    = "port"
	flagNameLogLevel      = "log-level"
	flagNameStorage       = "storage"
	flagNameSessionSecret = "session-secret"
)

var (
	natsURLFlag = &cli.StringFlag{
		Name:    flagNameNATSURL,
		Aliases: []string{"n"},
		Usage:   "Nats `URL`, eg nats://127.0.0.1:4222",
		Value:   "nats://127.0.0.1:4222",
		Sources: cli.EnvVars("NATS_URL"),
	}

	serverPortFlag = &cli.IntFlag{
		Name:    flagNameServerPort,
		Aliases: []string{"p"},
		Usage:   "Set server port to `PORT`.",
		Value:   defaultHTTPPort,
		Sources: cli.EnvVars("HTTP_PORT"),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    flagNameLogLevel,
		Aliases: []string{"l"},
		Usage:   "Set log level to `LEVEL`.",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}

	sessionSecretFlag = &cli.StringFlag{
		Name:    flagNameSessionSecret,
		Usage:   "Set session signing secret to `SECRET`.",
		Value:   "dev-secret-change-me",
		Sources: cli.EnvVars("SESSION_SECRET"),
	}

	serverFlags = []cli.Flag{
		serverPortFlag,
		natsURLFlag,
		logLevelFlag,
		sessionSecretFlag,
		newStorageFlag(),
	}
)
