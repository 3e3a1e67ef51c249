package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanbeacon/internal/runner"
)

func main() {
	options, err := runner.ParseOptions()
	if errors.Is(err, runner.ErrUsage) {
		fmt.Fprintln(os.Stderr, runner.Usage())
		os.Exit(1)
	}
	if err != nil {
		gologger.Fatal().Msgf("Could not parse options: %s\n", err)
	}

	lanRunner, err := runner.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup close handler
	go func() {
		<-c
		gologger.Info().Msg("CTRL+C pressed: Exiting")
		cancel()
	}()

	if err := lanRunner.Run(ctx); err != nil {
		gologger.Fatal().Msgf("Could not run lanbeacon: %s\n", err)
	}
}
