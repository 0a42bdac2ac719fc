package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/app"
	"github.com/fakenewsverificaton/verificaton-api/internal/config"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage/schemas"
)

var (
	jsonOutput = flag.Bool("json", false, "Saída em formato JSON")
	timeout    = flag.Duration("timeout", 2*time.Minute, "Tempo máximo da operação")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Uso: %s <comando> [opções]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Comandos disponíveis:\n")
		fmt.Fprintf(os.Stderr, "  ensure    Cria coleções/tabelas ausentes no backend configurado\n")
		fmt.Fprintf(os.Stderr, "  schemas   Lista as coleções conhecidas\n")
		fmt.Fprintf(os.Stderr, "  status    Verifica a conectividade com o backend\n")
		fmt.Fprintf(os.Stderr, "\nOpções:\n")
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	command := os.Args[1]
	os.Args = append(os.Args[:1], os.Args[2:]...)
	flag.Parse()

	cfg := config.LoadConfig()
	registry := schemas.NewRegistry()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch command {
	case "ensure":
		cmdEnsure(ctx, cfg, registry)
	case "schemas":
		cmdSchemas(registry)
	case "status":
		cmdStatus(ctx, cfg)
	default:
		fmt.Fprintf(os.Stderr, "Comando desconhecido: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func cmdEnsure(ctx context.Context, cfg *config.Config, registry *schemas.Registry) {
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Erro ao garantir schemas em %s: %v", cfg.StoreBackend, err)
	}
	defer store.Close()

	names := []string{}
	for _, s := range registry.All() {
		names = append(names, s.Name)
	}

	if *jsonOutput {
		printJSON(map[string]interface{}{
			"backend":     cfg.StoreBackend,
			"collections": names,
			"ok":          true,
		})
		return
	}

	fmt.Printf("✅ Schemas garantidos no backend %s\n", cfg.StoreBackend)
	for _, n := range names {
		fmt.Printf("  - %s\n", n)
	}
}

func cmdSchemas(registry *schemas.Registry) {
	all := registry.All()

	if *jsonOutput {
		printJSON(all)
		return
	}

	fmt.Println("📋 Coleções")
	fmt.Println("-----------")
	for _, s := range all {
		fmt.Printf("%s (versão %s, %d campos, ordenação: %s)\n", s.Name, s.Version, len(s.Fields), s.SortingField)
	}
}

func cmdStatus(ctx context.Context, cfg *config.Config) {
	store, err := app.NewStore(cfg)
	if err != nil {
		log.Fatalf("Erro ao abrir %s: %v", cfg.StoreBackend, err)
	}
	defer store.Close()

	status := "ok"
	if err := store.Ping(ctx); err != nil {
		status = err.Error()
	}

	if *jsonOutput {
		printJSON(map[string]string{"backend": cfg.StoreBackend, "status": status})
		return
	}

	fmt.Printf("Backend: %s\n", cfg.StoreBackend)
	fmt.Printf("Status:  %s\n", status)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Erro ao serializar JSON: %v", err)
	}
	fmt.Println(string(data))
}
