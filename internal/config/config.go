// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - GIN_MODE: Modo do gin (debug, release, test)
//   - CORS_ALLOWED_ORIGINS: Origens permitidas, separadas por vírgula (default: *)
//
// ## Gemini
//   - GEMINI_API_KEY: Chave da API Google Gemini (sem ela, análises que usam o modelo retornam 503)
//   - GEMINI_CHAT_MODEL: Modelo de análise (default: gemini-2.0-flash)
//   - GEMINI_TRANSCRIBE_MODEL: Modelo de transcrição de áudio (default: GEMINI_CHAT_MODEL)
//   - GEMINI_TIMEOUT_SECONDS: Timeout por chamada ao modelo (default: 60)
//   - GEMINI_TEMPERATURE: Temperatura do modelo (default: 0.2)
//
// ## Pipeline
//   - MAX_CONTENT_BYTES: Tamanho máximo do conteúdo recebido (default: 4500000)
//   - MAX_TEXT_CHARS: Tamanho máximo do texto analisado (default: 10000)
//   - SELF_REFERENCE_DOMAINS: Domínios e aliases do próprio serviço, separados por vírgula
//   - WEB_FETCH_TIMEOUT_SECONDS: Timeout da extração de páginas (default: 8)
//   - WEB_RESPECT_ROBOTS: Respeitar robots.txt na extração (default: false)
//   - YOUTUBE_TIMEOUT_SECONDS: Timeout da extração de legendas (default: 15)
//   - AUDIO_TIMEOUT_SECONDS: Timeout da transcrição de áudio (default: 60)
//   - EXTRACTION_CACHE_TTL_SECONDS: Validade das extrações de links em cache (default: 600; 0 desativa)
//   - EXTRACTION_CACHE_SIZE: Máximo de links em cache (default: 500)
//   - PROMPT_PROFILE_FILE: Arquivo YAML opcional com prompts e domínios
//
// ## Armazenamento
//   - STORE_BACKEND: memory, typesense ou postgres (default: memory)
//   - TYPESENSE_HOST: Host do servidor Typesense (default: localhost)
//   - TYPESENSE_PORT: Porta do servidor (default: 8108)
//   - TYPESENSE_API_KEY: Chave de API do Typesense
//   - TYPESENSE_PROTOCOL: Protocolo http/https (default: http)
//   - DATABASE_URL: DSN do Postgres (postgres://...)
//
// ## Proteção
//   - RATE_LIMIT_PER_MINUTE: Requisições por minuto por IP (default: 10)
//   - REDIS_URL: Redis para rate limit compartilhado (opcional; sem ele o limite é por instância)
//   - TURNSTILE_SECRET_KEY: Secret do Cloudflare Turnstile (sem ele a verificação é ignorada)
//
// ## Eventos
//   - KAFKA_BROKERS: Brokers Kafka (opcional)
//   - KAFKA_TOPIC: Tópico dos eventos de análise (default: verificaton.analyses)
//   - SIDE_EFFECT_WORKERS: Workers para persistência e tendências (default: 4)
//   - SIDE_EFFECT_QUEUE_SIZE: Tamanho da fila de efeitos colaterais (default: 256)
//
// ## Observabilidade
//   - TRACING_ENABLED: Habilita OpenTelemetry (default: false)
//   - TRACING_ENDPOINT: Endpoint OTLP gRPC (default: localhost:4317)
//   - METRICS_ENABLED: Expõe /metrics (default: true)
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSelfReferenceDomains são os domínios e aliases do próprio serviço
var DefaultSelfReferenceDomains = []string{"fakenewszeiton", "fake-newszei-ton", "fakenewsverificaton"}

type Config struct {
	ServerPort         string
	GinMode            string
	CORSAllowedOrigins []string

	// Gemini configuration
	GeminiAPIKey          string
	GeminiChatModel       string
	GeminiTranscribeModel string
	GeminiTimeout         time.Duration
	GeminiTemperature     float64

	Pipeline PipelineConfig

	// Storage configuration
	StoreBackend      string
	TypesenseHost     string
	TypesensePort     string
	TypesenseAPIKey   string
	TypesenseProtocol string
	DatabaseURL       string

	// Protection configuration
	RateLimitPerMinute int
	RedisURL           string
	TurnstileSecretKey string

	// Events configuration
	KafkaBrokers        string
	KafkaTopic          string
	SideEffectWorkers   int
	SideEffectQueueSize int

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string
	MetricsEnabled  bool

	// Profile carregado de PROMPT_PROFILE_FILE, se houver
	Profile *Profile
}

// PipelineConfig contém os limites do pipeline de análise
type PipelineConfig struct {
	MaxContentBytes      int
	MaxTextChars         int
	SelfReferenceDomains []string
	WebFetchTimeout      time.Duration
	WebRespectRobots     bool
	YouTubeTimeout       time.Duration
	AudioTimeout         time.Duration
	ExtractionCacheTTL   time.Duration
	ExtractionCacheSize  int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	chatModel := getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash")

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", ""),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// Gemini configuration
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel:       chatModel,
		GeminiTranscribeModel: getEnv("GEMINI_TRANSCRIBE_MODEL", chatModel),
		GeminiTimeout:         getEnvSeconds("GEMINI_TIMEOUT_SECONDS", 60),
		GeminiTemperature:     getEnvFloat("GEMINI_TEMPERATURE", 0.2),

		Pipeline: PipelineConfig{
			MaxContentBytes:      getEnvInt("MAX_CONTENT_BYTES", 4_500_000),
			MaxTextChars:         getEnvInt("MAX_TEXT_CHARS", 10_000),
			SelfReferenceDomains: getEnvList("SELF_REFERENCE_DOMAINS", DefaultSelfReferenceDomains),
			WebFetchTimeout:      getEnvSeconds("WEB_FETCH_TIMEOUT_SECONDS", 8),
			WebRespectRobots:     getEnvBool("WEB_RESPECT_ROBOTS", false),
			YouTubeTimeout:       getEnvSeconds("YOUTUBE_TIMEOUT_SECONDS", 15),
			AudioTimeout:         getEnvSeconds("AUDIO_TIMEOUT_SECONDS", 60),
			ExtractionCacheTTL:   getEnvSeconds("EXTRACTION_CACHE_TTL_SECONDS", 600),
			ExtractionCacheSize:  getEnvInt("EXTRACTION_CACHE_SIZE", 500),
		},

		// Storage configuration
		StoreBackend:      getEnv("STORE_BACKEND", "memory"),
		TypesenseHost:     getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:     getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:   getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol: getEnv("TYPESENSE_PROTOCOL", "http"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),

		// Protection configuration
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		RedisURL:           getEnv("REDIS_URL", ""),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),

		// Events configuration
		KafkaBrokers:        getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "verificaton.analyses"),
		SideEffectWorkers:   getEnvInt("SIDE_EFFECT_WORKERS", 4),
		SideEffectQueueSize: getEnvInt("SIDE_EFFECT_QUEUE_SIZE", 256),

		// Tracing configuration
		TracingEnabled:  getEnvBool("TRACING_ENABLED", false),
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
	}

	if path := getEnv("PROMPT_PROFILE_FILE", ""); path != "" {
		profile, err := LoadProfile(path)
		if err != nil {
			log.Fatalf("Falha ao carregar PROMPT_PROFILE_FILE: %v", err)
		}
		cfg.Profile = profile
		if len(profile.SelfReferenceDomains) > 0 {
			cfg.Pipeline.SelfReferenceDomains = profile.SelfReferenceDomains
		}
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY não configurada: análises que dependem do modelo retornarão SERVER_MISCONFIG")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
