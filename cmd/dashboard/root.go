package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axolutions/linkbio-dashboard/pkg/config"
)

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	// ExitCodeConfig means the environment is missing or rejects a setting.
	ExitCodeConfig = 2
)

func newRootCmd(version string) *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:          "dashboard",
		Short:        "Link-in-bio dashboard authentication service",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files to load before the environment is parsed")
	root.SetVersionTemplate(`{{printf "dashboard version %s\n" .Version}}`)

	root.AddCommand(newServeCmd(), newMigrateCmd(), newPKCECmd())
	return root
}

// Execute runs the CLI and exits with a code derived from the error.
func Execute(version string) {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case config.IsConfigurationError(err):
		return ExitCodeConfig
	default:
		return ExitCodeError
	}
}

func loadSection[T any](name string) (T, error) {
	var v T
	if err := config.Load(&v); err != nil {
		return v, fmt.Errorf("failed to load %s config: %w", name, err)
	}
	return v, nil
}

var errUnknownStore = errors.New("dashboard.unknown_store")
