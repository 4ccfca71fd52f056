package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/daemon"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/wm"
	"github.com/1broseidon/tagwm/internal/x11"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "6.4"

func main() {
	if len(os.Args) == 2 && os.Args[1] == "-v" {
		fmt.Fprintf(os.Stdout, "tagwm-%s\n", version)
		os.Exit(0)
	}
	if len(os.Args) != 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	runWM()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: tagwm [-v]")
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runWM() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))

	backend, err := platform.NewLinuxBackend(os.Getenv("DISPLAY"), "tagwm")
	if err != nil {
		if errors.Is(err, x11.ErrOtherWM) {
			log.Fatalf("tagwm: %v", err)
		}
		log.Fatalf("Failed to connect to display: %v", err)
	}

	mgr, err := wm.New(backend, wm.Options{
		Config:  cfg,
		Logger:  logger,
		Version: version,
	})
	if err != nil {
		backend.Close()
		log.Fatalf("Failed to initialise window manager: %v", err)
	}
	mgr.Setup()
	mgr.Scan()
	if dir, err := wm.AutostartDir(); err == nil {
		mgr.RunAutostart(dir)
	} else {
		logger.Warn("autostart skipped", "error", err)
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	var hup atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if sig == syscall.SIGHUP {
			hup.Store(true)
		}
		cancel(fmt.Errorf("received %s", sig))
	}()

	loop := daemon.NewLoop(daemon.LoopConfig{Logger: logger, Stale: backend.Stale}, backend, mgr)
	runErr := loop.Run(ctx)
	signal.Stop(sigCh)

	if runErr == nil && (hup.Load() || mgr.Restart()) {
		restart(logger)
	}

	mgr.Cleanup()
	backend.Close()
	if runErr != nil {
		log.Fatalf("tagwm: %v", runErr)
	}
	logger.Info("tagwm stopped")
}

// restart replaces the process with a fresh copy of the binary. Managed
// windows stay mapped and are adopted again by the startup scan.
func restart(logger *slog.Logger) {
	exe, err := os.Executable()
	if err != nil {
		logger.Error("restart failed", "error", err)
		return
	}
	logger.Info("restarting", "executable", exe)
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		logger.Error("restart failed", "executable", exe, "error", err)
	}
}
