package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"
)

var errUnhealthy = errors.New("healthcheck failed")

var healthcheckCMD = &cli.Command{
	Name:     "healthcheck",
	Aliases:  []string{"hc"},
	Usage:    "Run healthcheck against a local server.",
	Category: "Utility",
	Flags:    []cli.Flag{serverPortFlag},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		url := fmt.Sprintf("http://127.0.0.1:%d/api/health", cmd.Int(flagNameServerPort))

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		response, err := http.DefaultClient.Do(request)
		if err != nil {
			return err
		}

		defer response.Body.Close() //nolint:errcheck

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", errUnhealthy, response.StatusCode)
		}

		return nil
	},
}
