package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/fakenewsverificaton/verificaton-api/docs"
	"github.com/fakenewsverificaton/verificaton-api/internal/api/routes"
	"github.com/fakenewsverificaton/verificaton-api/internal/app"
	"github.com/fakenewsverificaton/verificaton-api/internal/config"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/gin-gonic/gin"
)

// @title           Verificaton API
// @version         1.0
// @description     API de análise de conteúdo (texto, links, vídeos do YouTube, imagens e áudio) para sinais de desinformação, viés e manipulação
// @termsOfService  http://swagger.io/terms/

// @contact.name   Verificaton

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	a, err := app.Build(ctx, cfg, app.Options{})
	if err != nil {
		log.Fatalf("Erro ao montar aplicação: %v", err)
	}

	r := routes.SetupRouter(cfg, routes.Dependencies{
		Analyzer: a.Pipeline,
		Store:    a.Store,
		Limiter:  a.Limiter,
		Verifier: a.Verifier,
		Metrics:  a.Metrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Servidor iniciado na porta %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Erro ao encerrar servidor: %v", err)
	}
	a.Close(shutdownCtx)
}
