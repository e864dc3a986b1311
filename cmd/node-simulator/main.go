package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/audio"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/config"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/game"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/render"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/service"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
)

var (
	configPath = flag.String("config", "node-simulator.yaml", "Path to the YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write a debug log under logs/")
	slotFlag   = flag.String("slot", "", "Save slot, overrides storage.slot")
	muteFlag   = flag.Bool("mute", false, "Start with sound muted")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 uses the config or the clock")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Debug && logFile == nil {
		if logFile = setupLogging(true); logFile != nil {
			defer logFile.Close()
		}
	}
	if *slotFlag != "" {
		cfg.Storage.Slot = *slotFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "node-simulator: %v\n", err)
		os.Exit(1)
	}
}

func openStore(path string) (storage.Store, error) {
	if path == "" {
		log.Printf("[main] no storage path, progress is kept in memory")
		return storage.NewMemoryStore(), nil
	}
	return storage.OpenSQLite(path)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	var services service.Group
	saver := storage.NewSaver(store)
	services.Add(saver)
	if err := services.Start(); err != nil {
		return err
	}
	defer services.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	sess := game.New(game.Config{
		Seed:        cfg.Seed,
		FieldWidth:  cfg.Field.Width,
		FieldHeight: cfg.Field.Height,
		Slot:        cfg.Storage.Slot,
		Store:       saver,
	})
	if data, err := store.Load(ctx, cfg.Storage.Slot); err == nil {
		sess.Load(data)
		log.Printf("[main] resumed slot %s", cfg.Storage.Slot)
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[main] load slot %s: %v", cfg.Storage.Slot, err)
	}

	renderer := render.NewTerminalRenderer(screen)
	ctl := &controls{
		sess:     sess,
		renderer: renderer,
		field:    render.Size{W: cfg.Field.Width, H: cfg.Field.Height},
		muted:    *muteFlag,
	}

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := services.StartOptional(sm); err != nil {
			audio.LogStartFailure(err)
		} else {
			sm.SetMuted(*muteFlag)
			sess.Subscribe(sm.EventTypes(), sm.HandleEvent)
			ctl.audio = sm
		}
	}

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() { pumpEvents(screen.PollEvent, events, done) })

	loop := engine.NewLoop(func(dt float64) {
		if err := sess.Tick(dt); err != nil {
			log.Printf("[main] tick: %v", err)
		}
	})
	loop.Step = cfg.TickInterval()
	loop.AfterTicks = func() {
		renderer.RenderFrame(sess.Frame())
	}

	ticker := time.NewTicker(loop.Step)
	defer ticker.Stop()
	autosave := time.NewTicker(cfg.AutosaveInterval.Std())
	defer autosave.Stop()

	log.Printf("[main] running slot %s at %v per tick", cfg.Storage.Slot, loop.Step)
	for quit := false; !quit; {
		select {
		case <-ctx.Done():
			quit = true
		case ev, ok := <-events:
			quit = !ok || ctl.handle(ctx, ev)
		case <-ticker.C:
			loop.Pump()
		case <-autosave.C:
			if _, err := sess.Save(ctx); err != nil {
				log.Printf("[main] autosave: %v", err)
			}
			log.Printf("[main] metrics %v", sess.Status().Snapshot())
		}
	}

	// Final save must outlive a cancelled signal context
	if _, err := sess.Save(context.Background()); err != nil {
		log.Printf("[main] final save: %v", err)
	}
	return nil
}
