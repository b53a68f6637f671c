package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/soamaka/AirBnB-clone/internal/adapters/console"
	"github.com/soamaka/AirBnB-clone/internal/application"
	"github.com/soamaka/AirBnB-clone/internal/config"
	"github.com/soamaka/AirBnB-clone/internal/logger"
	"github.com/soamaka/AirBnB-clone/internal/metrics"
	"github.com/soamaka/AirBnB-clone/internal/storage"
)

func main() {
	root := &cli.Command{
		Name:  "hbnb",
		Usage: "Command interpreter for the hbnb object store",
		Description: "Reads commands from standard input. The storage backend is chosen by HBNB_TYPE_STORAGE " +
			"(file or db); see HBNB_* environment variables for the rest.",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return runConsole(ctx)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, os.Args); err != nil {
		boot := logger.New(os.Stderr, zerolog.ErrorLevel)
		boot.Error().Err(err).Msg("hbnb failed")
		stop()
		os.Exit(1)
	}
}

func runConsole(ctx context.Context) (err error) {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(os.Stderr, cfg.Level())

	scope, closer := metrics.NewScope(log, 0)
	defer func() {
		_ = closer.Close()
	}()

	store, err := storage.Open(ctx, cfg, log, scope)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	log.Info().Str("storage", cfg.TypeStorage).Msg("storage opened")

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	sh := console.New(application.NewService(store), os.Stdin, os.Stdout, interactive, log)
	return sh.Run(ctx)
}
