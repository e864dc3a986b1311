package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/config"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/network"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/service"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
)

var (
	configPath = flag.String("config", "node-server.yaml", "Path to the YAML config file")
	listenFlag = flag.String("listen", "", "Listen address, overrides server.listen")
	dbFlag     = flag.String("db", "", "SQLite path, overrides storage.path")
	quietFlag  = flag.Bool("quiet", false, "Discard log output")
)

func main() {
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if *quietFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *listenFlag != "" {
		cfg.Server.Listen = *listenFlag
	}
	if *dbFlag != "" {
		cfg.Storage.Path = *dbFlag
	}

	if err := run(cfg); err != nil {
		log.Printf("[main] %v", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	if cfg.Storage.Path == "" {
		log.Printf("[main] no storage path, saves are kept in memory")
		store = storage.NewMemoryStore()
	} else {
		db, err := storage.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return err
		}
		store = db
	}
	defer store.Close()

	srv := network.NewServer(network.FromConfig(cfg), store, status.NewRegistry())

	var services service.Group
	services.Add(srv)
	if err := services.Start(); err != nil {
		return err
	}
	log.Printf("[main] serving on %s", srv.Addr())

	<-ctx.Done()
	log.Printf("[main] shutting down")
	return services.Stop()
}
