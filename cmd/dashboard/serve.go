package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/axolutions/linkbio-dashboard/pkg/httpserver"
	"github.com/axolutions/linkbio-dashboard/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until SIGINT or SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := loadSettings()
			if err != nil {
				return err
			}
			a, err := buildApp(ctx, s, os.Stdout)
			if err != nil {
				return err
			}
			defer a.close(ctx)
			logger.SetAsDefault(a.log)

			srv := httpserver.NewFromConfig(s.HTTP, httpserver.WithLogger(a.log))
			err = srv.Run(ctx, a.handler)

			// in-flight token revocations outlive their requests
			a.auth.Wait()
			if err != nil {
				a.log.ErrorContext(ctx, "http server stopped", logger.Error(err))
			}
			return err
		},
	}
}
