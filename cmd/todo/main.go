package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-todo-app/internal/client/cli"
	"github.com/adanyl0v/go-todo-app/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.ReadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read config:", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err = cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
