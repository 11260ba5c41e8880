package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/admin"
	"github.com/Vovarama1992/visus/internal/config"
	"github.com/Vovarama1992/visus/internal/infra"
	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/models"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "visus-admin:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	apiURL := flag.String("api", cfg.APIURL, "content API base URL")
	mediaURL := flag.String("media", cfg.MediaURL, "media base URL for previews")
	watch := flag.Bool("watch", false, "print new booking requests as they arrive and exit on Ctrl+C")
	flag.Parse()

	// консоль пишет в stdout, логи только предупреждения и выше
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	zl, syncLog, err := infra.NewLogger(level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer syncLog()

	store, err := admin.DefaultFileStore()
	if err != nil {
		return err
	}
	session, err := admin.NewSession(store)
	if err != nil {
		zl.Log(logger.LogEntry{
			Level:   "warn",
			Message: "saved credentials ignored",
			Error:   err,
			Fields:  map[string]any{"path": store.Path()},
		})
	}

	base := mediapath.DeriveBase(*mediaURL, *apiURL, cfg.PageOrigin)
	client := admin.NewClient(*apiURL, cfg.HTTPTimeout)
	ctrl := admin.NewController(client, session, mediapath.NewPreview(base), zl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *watch {
		fmt.Println("Ожидание новых заявок…")
		return ctrl.Watch(ctx, func(r models.CallbackRequest) {
			fmt.Printf("[%s] #%d %s %s\n", r.CreatedAt.Local().Format("15:04"), r.ID, r.Name, r.Phone)
		})
	}

	if session.Authenticated() {
		fmt.Printf("Сессия: %s (%s)\n", session.Username(), client.BaseURL())
	} else {
		fmt.Println("Войдите: login <user> <password>")
	}
	return admin.NewConsole(ctrl, os.Stdout).Run(ctx, os.Stdin)
}
