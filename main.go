package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mobile-next/floatdim/cli"
	"github.com/mobile-next/floatdim/commands"
	"github.com/mobile-next/floatdim/config"
	"github.com/mobile-next/floatdim/overlay"
)

func main() {
	// the registry is resized once the configuration file is loaded
	registry, err := overlay.NewRegistry(config.Default().Server.MaxOverlays)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	commands.SetRegistry(registry)

	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case <-sigChan:
		// destroy the windows of every overlay still running
		registry.CleanupAll()
		os.Exit(0)
	case err := <-done:
		registry.CleanupAll()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
