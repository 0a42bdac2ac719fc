// Package app monta os componentes do serviço a partir da configuração.
// É compartilhado pelo servidor HTTP, pela CLI e pelo migrate.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/analysis"
	"github.com/fakenewsverificaton/verificaton-api/internal/captcha"
	"github.com/fakenewsverificaton/verificaton-api/internal/config"
	"github.com/fakenewsverificaton/verificaton-api/internal/events"
	"github.com/fakenewsverificaton/verificaton-api/internal/extractor"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/pipeline"
	"github.com/fakenewsverificaton/verificaton-api/internal/ratelimit"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/fakenewsverificaton/verificaton-api/internal/trends"
	"github.com/redis/go-redis/v9"
)

// App reúne os componentes montados
type App struct {
	Config     *config.Config
	Store      storage.Store
	Pipeline   *pipeline.Pipeline
	Limiter    ratelimit.Limiter
	Verifier   captcha.Verifier
	Metrics    *observability.Metrics
	Dispatcher *events.Dispatcher
	Sink       events.Sink

	redis *redis.Client
}

// Options ajusta a montagem
type Options struct {
	// Inline executa os efeitos colaterais na goroutine da chamada (CLI)
	Inline bool
}

// NewStore cria o armazenamento configurado sem tocar nos schemas
func NewStore(cfg *config.Config) (storage.Store, error) {
	return storage.New(storage.Options{
		Backend:           cfg.StoreBackend,
		TypesenseHost:     cfg.TypesenseHost,
		TypesensePort:     cfg.TypesensePort,
		TypesenseProtocol: cfg.TypesenseProtocol,
		TypesenseAPIKey:   cfg.TypesenseAPIKey,
		DatabaseURL:       cfg.DatabaseURL,
	})
}

// OpenStore cria o armazenamento configurado e garante os schemas
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("erro ao garantir schemas: %w", err)
	}
	return store, nil
}

// Build monta o App completo
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{Config: cfg}

	if cfg.MetricsEnabled {
		a.Metrics = observability.NewMetrics()
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store
	log.Printf("[App] Armazenamento %s pronto", cfg.StoreBackend)

	if err := a.buildProtection(); err != nil {
		a.Close(ctx)
		return nil, err
	}

	invoker, transcriber, err := buildInvoker(ctx, cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.Sink = buildSink(cfg)

	onFailure := pipeline.OnSideEffectFailure(a.Metrics)
	if opts.Inline {
		a.Dispatcher = events.NewInlineDispatcher(onFailure)
	} else {
		a.Dispatcher = events.NewDispatcher(events.DispatcherConfig{
			Workers:   cfg.SideEffectWorkers,
			QueueSize: cfg.SideEffectQueueSize,
			OnFailure: onFailure,
		})
	}

	a.Pipeline = pipeline.New(pipeline.Config{
		MaxContentBytes: cfg.Pipeline.MaxContentBytes,
		MaxTextChars:    cfg.Pipeline.MaxTextChars,
	}, pipeline.Deps{
		Router:     buildRouter(cfg, transcriber),
		Invoker:    invoker,
		Store:      store,
		Trends:     trends.NewUpdater(store),
		Sink:       a.Sink,
		Dispatcher: a.Dispatcher,
		Metrics:    a.Metrics,
	})

	return a, nil
}

func (a *App) buildProtection() error {
	cfg := a.Config
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		a.redis = client
		a.Limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimitPerMinute, ratelimit.DefaultWindow)
		log.Println("[App] Rate limit compartilhado via Redis")
	} else {
		a.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute, ratelimit.DefaultWindow)
	}

	verifier := captcha.NewTurnstileVerifier(cfg.TurnstileSecretKey, nil)
	if !verifier.Enabled() {
		log.Println("[App] TURNSTILE_SECRET_KEY não configurada: verificação anti-bot desativada")
	}
	a.Verifier = verifier
	return nil
}

func buildInvoker(ctx context.Context, cfg *config.Config) (*analysis.Invoker, extractor.Transcriber, error) {
	client, err := analysis.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, err
	}

	var opts []analysis.Option
	if p := cfg.Profile; p != nil {
		opts = append(opts, analysis.WithPrompts(analysis.Prompts{
			System: p.SystemInstruction,
			Text:   p.TextInstruction,
			Image:  p.ImageInstruction,
			Audio:  p.AudioInstruction,
		}))
	}
	opts = append(opts, analysis.WithMaxPromptChars(cfg.Pipeline.MaxTextChars))

	if client == nil {
		return analysis.NewInvoker(nil, opts...), nil, nil
	}

	generator := analysis.NewGeminiGenerator(client, analysis.GeminiConfig{
		Model:       cfg.GeminiChatModel,
		Timeout:     cfg.GeminiTimeout,
		Temperature: float32(cfg.GeminiTemperature),
	})
	transcriber := extractor.NewGeminiTranscriber(client, cfg.GeminiTranscribeModel)
	return analysis.NewInvoker(generator, opts...), transcriber, nil
}

func buildRouter(cfg *config.Config, transcriber extractor.Transcriber) *extractor.Router {
	httpClient := &http.Client{}

	webCfg := extractor.DefaultWebConfig()
	webCfg.Timeout = cfg.Pipeline.WebFetchTimeout
	webCfg.RespectRobots = cfg.Pipeline.WebRespectRobots

	var web, youtube extractor.Extractor = extractor.NewWebExtractor(httpClient, webCfg),
		extractor.NewYouTubeExtractor(extractor.NewKkdaiCaptionFetcher(httpClient), cfg.Pipeline.YouTubeTimeout)
	if ttl := cfg.Pipeline.ExtractionCacheTTL; ttl > 0 {
		web = extractor.NewCachedExtractor(web, ttl, cfg.Pipeline.ExtractionCacheSize)
		youtube = extractor.NewCachedExtractor(youtube, ttl, cfg.Pipeline.ExtractionCacheSize)
	}

	routerCfg := extractor.RouterConfig{
		Web:                  web,
		YouTube:              youtube,
		SelfReferenceDomains: cfg.Pipeline.SelfReferenceDomains,
	}
	// Sem transcritor o áudio segue inline para o modelo
	if transcriber != nil {
		routerCfg.Audio = extractor.NewAudioExtractor(transcriber, cfg.Pipeline.AudioTimeout)
	}
	return extractor.NewRouter(routerCfg)
}

func buildSink(cfg *config.Config) events.Sink {
	if cfg.KafkaBrokers == "" {
		return events.NopSink{}
	}
	sink, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Printf("[App] Kafka indisponível, eventos desativados: %v", err)
		return events.NopSink{}
	}
	log.Printf("[App] Publicando eventos em %s", cfg.KafkaTopic)
	return sink
}

// Close drena os efeitos colaterais pendentes e libera as conexões
func (a *App) Close(ctx context.Context) {
	if a.Dispatcher != nil {
		drainCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := a.Dispatcher.Close(drainCtx); err != nil {
			log.Printf("[App] Efeitos colaterais não drenados: %v", err)
		}
		cancel()
	}
	if a.Sink != nil {
		a.Sink.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			log.Printf("[App] Erro ao fechar armazenamento: %v", err)
		}
	}
}
