package main

import (
	"os/signal"
	"syscall"

	"github.com/patricioibar/points-dashboard/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (default from config, :8080)")
	if err := v.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, config, err := setup(cmd)
	if err != nil {
		return err
	}
	for _, w := range d.WarningMessages() {
		log.Warningf("%s", w)
	}

	return server.New(d).Serve(ctx, config.Address)
}
