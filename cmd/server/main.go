package main

import (
	"context"
	"flag"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/ricordo-game/ricordo/internal/config"
	"github.com/ricordo-game/ricordo/internal/server"
)

var (
	flagConfig = flag.String("config", "", "Path to the configuration file (default: search for ricordo.yaml)")
	flagAddr   = flag.String("addr", "", "Address to listen on (overrides config; default: auto-port on localhost)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if err := config.Init(*flagConfig); err != nil {
		klog.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := config.Get()
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	config.Watch(func(c *config.Config) {
		klog.Infof("Game tuning updated: %d daily pairs", c.Game.DailyPairs)
	})

	started := make(chan *server.ServerState, 1)
	ctx := context.Background()

	go func() {
		state := <-started
		fmt.Printf("Ricordo server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, cfg, started); err != nil {
		klog.Fatal(err)
	}
}
