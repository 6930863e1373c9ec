package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/theclaireai/claireops/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the onboarding webhook and call routing server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cl, err := buildClients(cfg)
	if err != nil {
		return err
	}
	engine := buildEngine(cfg, cl)

	callRouter, err := buildRouter(cfg)
	if err != nil {
		return err
	}

	server := web.NewServer(engine, callRouter)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Serve] ClaireOps listening on %s (cutoff hour %d %s)",
		addr, cfg.Routing.CutoffHour, cfg.Routing.Zone)
	return server.Run(addr)
}
