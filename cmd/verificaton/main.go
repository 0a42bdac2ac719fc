package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fakenewsverificaton/verificaton-api/internal/app"
	"github.com/fakenewsverificaton/verificaton-api/internal/cli"
	"github.com/fakenewsverificaton/verificaton-api/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	// Métricas não são expostas fora do servidor
	cfg.MetricsEnabled = false

	a, err := app.Build(ctx, cfg, app.Options{Inline: true})
	if err != nil {
		log.Fatalf("Erro ao montar aplicação: %v", err)
	}

	cli.Configure(a.Pipeline, a.Store)
	err = cli.Execute(ctx)
	a.Close(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
