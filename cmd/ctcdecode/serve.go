package main

import (
	ctcdecode "github.com/ieee0824/ctcdecode"
	"github.com/ieee0824/ctcdecode/internal/cmdapp"
	"github.com/ieee0824/ctcdecode/internal/metrics"
	"github.com/ieee0824/ctcdecode/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /decode over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner(cmd.OutOrStdout())
			cmdapp.Log.Info("Starting ctcdecode service")
			collector := metrics.NewCollector()
			rec, err := newRecognizer(ctcdecode.WithObserver(collector))
			if err != nil {
				return err
			}
			data, err := server.NewServiceData(cmdapp.Config.GetInt("port"), rec, collector)
			if err != nil {
				return err
			}
			return server.StartWebServer(data)
		},
	}
	cmd.Flags().Int("port", 8000, "service port")
	cmdapp.CheckOrPanic(cmdapp.Config.BindPFlag("port", cmd.Flags().Lookup("port")), "bind port")
	return cmd
}
