package cli

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "ballotd",
	Usage:   "Student-organization e-voting backend.",
	Version: VERSION,
	Commands: []*cli.Command{
		serverCMD,
		seedCMD,
		healthcheckCMD,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
