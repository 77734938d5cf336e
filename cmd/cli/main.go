package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/buildinfo"
	"github.com/dmitrijs2005/clinicdesk/internal/client/cli"
	"github.com/dmitrijs2005/clinicdesk/internal/client/config"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/dmitrijs2005/clinicdesk/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// Interrupts are left to the default handler: a blocked stdin read
	// cannot be cancelled, and every session write is already committed.
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	shutdown := telemetry.Setup(ctx, "clinicdesk-cli", logging.New(os.Stderr, cfg.LogLevel))
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(sctx)
	}()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
