// Package schemas define as coleções persistidas (analyses e trending_items) para
// Typesense e Postgres.
package schemas

import (
	"fmt"
	"sort"
	"sync"

	"github.com/typesense/typesense-go/v3/typesense/api"
)

// Nomes das coleções
const (
	AnalysesCollection      = "analyses"
	TrendingItemsCollection = "trending_items"
)

// SchemaDefinition define uma coleção nos dois backends
type SchemaDefinition struct {
	Version      string
	Name         string
	Fields       []api.Field
	SortingField string
	PostgresDDL  []string
}

// TypesenseSchema converte a definição para o schema da API Typesense
func (s *SchemaDefinition) TypesenseSchema() *api.CollectionSchema {
	schema := &api.CollectionSchema{
		Name:   s.Name,
		Fields: s.Fields,
	}
	if s.SortingField != "" {
		schema.DefaultSortingField = StringPtr(s.SortingField)
	}
	return schema
}

// Registry mantém as coleções registradas
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*SchemaDefinition
}

// NewRegistry cria o registro com as coleções da aplicação
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]*SchemaDefinition)}
	r.Register(AnalysesSchema())
	r.Register(TrendingItemsSchema())
	return r
}

// Register registra (ou substitui) uma coleção
func (r *Registry) Register(schema *SchemaDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[schema.Name] = schema
}

// Get retorna a definição de uma coleção
func (r *Registry) Get(name string) (*SchemaDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[name]
	if !exists {
		return nil, fmt.Errorf("coleção '%s' não registrada", name)
	}
	return schema, nil
}

// All retorna as coleções em ordem alfabética
func (r *Registry) All() []*SchemaDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*SchemaDefinition, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StringPtr retorna um ponteiro para string
func StringPtr(s string) *string {
	return &s
}

// BoolPtr retorna um ponteiro para bool
func BoolPtr(b bool) *bool {
	return &b
}
