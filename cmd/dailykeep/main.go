package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dailykeep/internal/client/cli"
	"github.com/dmitrijs2005/dailykeep/internal/client/config"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)

}
