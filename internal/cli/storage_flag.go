package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

var (
	supportedStorageBackends = []string{"memory", "nats"}
	defaultStorageBackend    = "memory"
)

func newStorageFlag() cli.Flag {
	return &cli.GenericFlag{
		Name:    flagNameStorage,
		Aliases: []string{"s"},
		Usage:   fmt.Sprintf("Set storage backend to `BACKEND`. Supported backends: %v", supportedStorageBackends),
		Value: &EnumFlag{
			selected:     defaultStorageBackend,
			possible:     supportedStorageBackends,
			defaultValue: defaultStorageBackend,
		},
		Sources: cli.EnvVars("STORAGE_BACKEND"),
	}
}

func storageBackend(cmd *cli.Command) string {
	return fmt.Sprint(cmd.Value(flagNameStorage))
}
