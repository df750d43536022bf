package main

import (
	"fmt"
	"os"

	"taskboard/internal/channel"
	"taskboard/internal/cli"
	"taskboard/internal/config"
	"taskboard/internal/errors"
	"taskboard/internal/repository/rest"
	"taskboard/internal/session"
	"taskboard/internal/session/sqlite"
	"taskboard/internal/sync"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating credential directory: %v\n", err)
		os.Exit(1)
	}

	persistence, err := sqlite.New(cfg.GetDatabasePath(), cfg.Database.WriteTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening credential store: %v\n", err)
		os.Exit(1)
	}
	defer persistence.Close()

	store := session.New(cfg.API.BaseURL, cfg.API.RequestTimeout, persistence)

	repo := rest.New(cfg.API.BaseURL, cfg.API.RequestTimeout, store)
	// A rejected token means the stored credential is dead weight.
	repo.SetUnauthorizedHook(store.Logout)

	engine := sync.New(repo, store,
		sync.WithPostCreateRefreshDelay(cfg.Sync.PostCreateRefreshDelay),
		sync.WithRefreshTimeout(cfg.API.RequestTimeout),
		sync.WithAsyncErrorHandler(func(err error) {
			fmt.Fprintln(os.Stderr, errors.GetUserMessage(err))
		}),
	)
	defer engine.Close()

	notifier := channel.New(cfg.WebSocketURL(),
		channel.WithReconnectDelay(cfg.Channel.ReconnectDelay),
		channel.WithHandshakeTimeout(cfg.Channel.HandshakeTimeout),
	)
	defer notifier.Close()

	app := cli.NewApp(engine, store, notifier, cfg)

	if err := cli.NewRootCommand(app, cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
