package main

import (
	"context"

	"github.com/jonathan/candidate-assessor/internal/config"
	"github.com/jonathan/candidate-assessor/internal/server"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes session-based candidate assessment endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host interface to bind (default: all interfaces)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := buildApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	// Flags override config file and environment values
	if cmd.Flags().Changed("port") {
		a.cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		a.cfg.Server.Host = serveHost
	}

	jwtCfg, err := config.NewJWTConfig(a.cfg.Auth)
	if err != nil {
		return eris.Wrap(err, "assess_agent: session token config")
	}
	adminCfg, err := config.NewAdminTokenConfig(a.cfg.Auth)
	if err != nil {
		return eris.Wrap(err, "assess_agent: admin token config")
	}

	srv, err := server.New(a.cfg.Server, server.Deps{
		Engine: a.engine,
		Store:  a.store,
		JWT:    jwtCfg,
		Admin:  adminCfg,
		Logger: a.logger,
	})
	if err != nil {
		return eris.Wrap(err, "assess_agent: build server")
	}

	return srv.Start()
}
