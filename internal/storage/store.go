// Package storage persiste análises concluídas e itens de tendência.
//
// Backends disponíveis (STORE_BACKEND):
//   - memory: mapas em memória, para desenvolvimento e testes
//   - typesense: coleções analyses e trending_items no Typesense
//   - postgres: tabelas analyses e trending_items via lib/pq
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

var (
	// ErrNotFound indica registro inexistente
	ErrNotFound = errors.New("registro não encontrado")
	// ErrDuplicate indica item de tendência já existente para o fingerprint
	ErrDuplicate = errors.New("registro duplicado")
	// ErrUnknownBackend indica STORE_BACKEND inválido
	ErrUnknownBackend = errors.New("backend de armazenamento desconhecido")
)

// Backends suportados
const (
	BackendMemory    = "memory"
	BackendTypesense = "typesense"
	BackendPostgres  = "postgres"
)

// AnalysisStore persiste o resultado de cada análise
type AnalysisStore interface {
	InsertAnalysis(ctx context.Context, record *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
}

// TrendStore mantém os itens de tendência agregados por fingerprint
type TrendStore interface {
	// FindTrendByFingerprint retorna nil, nil quando não existe item
	FindTrendByFingerprint(ctx context.Context, fingerprint string) (*models.TrendItem, error)
	// InsertTrend retorna ErrDuplicate quando o backend detecta fingerprint repetido
	InsertTrend(ctx context.Context, item *models.TrendItem) error
	UpdateTrend(ctx context.Context, id string, update models.TrendUpdate) error
	// ListTrends ordena por score de fake desc e depois por last_seen desc
	ListTrends(ctx context.Context, limit int) ([]models.TrendItem, error)
}

// Store reúne as duas coleções e o ciclo de vida do backend
type Store interface {
	AnalysisStore
	TrendStore
	Ping(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
	Close() error
}

// Options configura a criação do Store
type Options struct {
	Backend string

	TypesenseHost     string
	TypesensePort     string
	TypesenseProtocol string
	TypesenseAPIKey   string

	DatabaseURL string
}

// New cria o Store do backend configurado
func New(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendTypesense:
		return NewTypesenseStore(opts.TypesenseURL(), opts.TypesenseAPIKey), nil
	case BackendPostgres:
		return NewPostgresStore(opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
	}
}

// TypesenseURL monta a URL do servidor Typesense
func (o Options) TypesenseURL() string {
	return fmt.Sprintf("%s://%s:%s", o.TypesenseProtocol, o.TypesenseHost, o.TypesensePort)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}
