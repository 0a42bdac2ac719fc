package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage/schemas"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
)

// TypesenseStore persiste nas coleções analyses e trending_items
type TypesenseStore struct {
	client   *typesense.Client
	registry *schemas.Registry
}

// NewTypesenseStore cria o store apontando para o servidor informado
func NewTypesenseStore(serverURL, apiKey string) *TypesenseStore {
	client := typesense.NewClient(
		typesense.WithServer(serverURL),
		typesense.WithAPIKey(apiKey),
	)
	return &TypesenseStore{client: client, registry: schemas.NewRegistry()}
}

// analysisDocument é o formato achatado salvo no Typesense
type analysisDocument struct {
	ID               string `json:"id"`
	InputType        string `json:"input_type"`
	InputSummary     string `json:"input_summary"`
	Headline         string `json:"headline"`
	FakeProbability  int    `json:"fake_probability"`
	VerifiableTruth  int    `json:"verifiable_truth"`
	BiasFraming      int    `json:"bias_framing"`
	ManipulationRisk int    `json:"manipulation_risk"`
	Verdict          string `json:"verdict"`
	ReportMarkdown   string `json:"report_markdown"`
	ClaimsJSON       string `json:"claims_json"`
	Fingerprint      string `json:"fingerprint"`
	IsFlagged        bool   `json:"is_flagged"`
	CreatedAt        int64  `json:"created_at"`
}

type trendDocument struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Reason               string `json:"reason"`
	Fingerprint          string `json:"fingerprint"`
	SampleClaimsJSON     string `json:"sample_claims_json"`
	Occurrences          int    `json:"occurrences"`
	ScoreFakeProbability int    `json:"score_fake_probability"`
	LastSeen             int64  `json:"last_seen"`
}

func toAnalysisDocument(r *models.AnalysisRecord) (analysisDocument, error) {
	claims, err := json.Marshal(nonNilClaims(r.Claims))
	if err != nil {
		return analysisDocument{}, fmt.Errorf("erro ao serializar claims: %w", err)
	}
	return analysisDocument{
		ID:               r.ID,
		InputType:        string(r.InputType),
		InputSummary:     r.InputSummary,
		Headline:         r.Headline,
		FakeProbability:  r.Scores.FakeProbability,
		VerifiableTruth:  r.Scores.VerifiableTruth,
		BiasFraming:      r.Scores.BiasFraming,
		ManipulationRisk: r.Scores.ManipulationRisk,
		Verdict:          string(r.Verdict),
		ReportMarkdown:   r.ReportMarkdown,
		ClaimsJSON:       string(claims),
		Fingerprint:      r.Fingerprint,
		IsFlagged:        r.Flagged,
		CreatedAt:        r.CreatedAt.Unix(),
	}, nil
}

func (d analysisDocument) record() *models.AnalysisRecord {
	var claims []models.Claim
	if d.ClaimsJSON != "" {
		if err := json.Unmarshal([]byte(d.ClaimsJSON), &claims); err != nil {
			log.Printf("[Storage] claims_json inválido na análise %s: %v", d.ID, err)
		}
	}
	return &models.AnalysisRecord{
		ID:           d.ID,
		InputType:    models.InputType(d.InputType),
		InputSummary: d.InputSummary,
		Headline:     d.Headline,
		Scores: models.Scores{
			FakeProbability:  d.FakeProbability,
			VerifiableTruth:  d.VerifiableTruth,
			BiasFraming:      d.BiasFraming,
			ManipulationRisk: d.ManipulationRisk,
		},
		Verdict:        models.Verdict(d.Verdict),
		ReportMarkdown: d.ReportMarkdown,
		Claims:         nonNilClaims(claims),
		Fingerprint:    d.Fingerprint,
		Flagged:        d.IsFlagged,
		CreatedAt:      time.Unix(d.CreatedAt, 0).UTC(),
	}
}

func toTrendDocument(item *models.TrendItem) (trendDocument, error) {
	claims, err := json.Marshal(nonNilClaims(item.SampleClaims))
	if err != nil {
		return trendDocument{}, fmt.Errorf("erro ao serializar sample claims: %w", err)
	}
	return trendDocument{
		ID:                   item.ID,
		Title:                item.Title,
		Reason:               item.Reason,
		Fingerprint:          item.Fingerprint,
		SampleClaimsJSON:     string(claims),
		Occurrences:          item.Occurrences,
		ScoreFakeProbability: item.ScoreFakeProbability,
		LastSeen:             item.LastSeen.Unix(),
	}, nil
}

func (d trendDocument) item() models.TrendItem {
	var claims []models.Claim
	if d.SampleClaimsJSON != "" {
		if err := json.Unmarshal([]byte(d.SampleClaimsJSON), &claims); err != nil {
			log.Printf("[Storage] sample_claims_json inválido no item %s: %v", d.ID, err)
		}
	}
	return models.TrendItem{
		ID:                   d.ID,
		Title:                d.Title,
		Reason:               d.Reason,
		Fingerprint:          d.Fingerprint,
		SampleClaims:         nonNilClaims(claims),
		Occurrences:          d.Occurrences,
		ScoreFakeProbability: d.ScoreFakeProbability,
		LastSeen:             time.Unix(d.LastSeen, 0).UTC(),
	}
}

func (s *TypesenseStore) InsertAnalysis(ctx context.Context, record *models.AnalysisRecord) error {
	doc, err := toAnalysisDocument(record)
	if err != nil {
		return err
	}
	docMap, err := toMap(doc)
	if err != nil {
		return err
	}
	if _, err := s.client.Collection(schemas.AnalysesCollection).Documents().Create(ctx, docMap, &api.DocumentIndexParameters{}); err != nil {
		return fmt.Errorf("erro ao salvar análise: %w", err)
	}
	return nil
}

func (s *TypesenseStore) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	result, err := s.client.Collection(schemas.AnalysesCollection).Document(id).Retrieve(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar análise: %w", err)
	}

	var doc analysisDocument
	if err := fromMap(result, &doc); err != nil {
		return nil, err
	}
	return doc.record(), nil
}

func (s *TypesenseStore) FindTrendByFingerprint(ctx context.Context, fingerprint string) (*models.TrendItem, error) {
	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		FilterBy: pointer.String(fmt.Sprintf("fingerprint:=`%s`", escapeFilterValue(fingerprint))),
		PerPage:  pointer.Int(1),
	}

	docs, err := s.searchTrends(ctx, searchParams)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	item := docs[0].item()
	return &item, nil
}

func (s *TypesenseStore) InsertTrend(ctx context.Context, item *models.TrendItem) error {
	doc, err := toTrendDocument(item)
	if err != nil {
		return err
	}
	docMap, err := toMap(doc)
	if err != nil {
		return err
	}
	if _, err := s.client.Collection(schemas.TrendingItemsCollection).Documents().Create(ctx, docMap, &api.DocumentIndexParameters{}); err != nil {
		return fmt.Errorf("erro ao salvar tendência: %w", err)
	}
	return nil
}

func (s *TypesenseStore) UpdateTrend(ctx context.Context, id string, update models.TrendUpdate) error {
	fields := map[string]interface{}{
		"occurrences":            update.Occurrences,
		"score_fake_probability": update.ScoreFakeProbability,
		"last_seen":              update.LastSeen.Unix(),
	}
	if _, err := s.client.Collection(schemas.TrendingItemsCollection).Document(id).Update(ctx, fields, &api.DocumentIndexParameters{}); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("erro ao atualizar tendência: %w", err)
	}
	return nil
}

func (s *TypesenseStore) ListTrends(ctx context.Context, limit int) ([]models.TrendItem, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String("*"),
		SortBy:  pointer.String("score_fake_probability:desc,last_seen:desc"),
		PerPage: pointer.Int(normalizeLimit(limit)),
	}

	docs, err := s.searchTrends(ctx, searchParams)
	if err != nil {
		return nil, err
	}
	items := make([]models.TrendItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.item())
	}
	return items, nil
}

func (s *TypesenseStore) searchTrends(ctx context.Context, params *api.SearchCollectionParams) ([]trendDocument, error) {
	result, err := s.client.Collection(schemas.TrendingItemsCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tendências: %w", err)
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar resultado: %w", err)
	}

	var searchResult struct {
		Hits []struct {
			Document trendDocument `json:"document"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(resultBytes, &searchResult); err != nil {
		return nil, fmt.Errorf("erro ao deserializar resultado: %w", err)
	}

	docs := make([]trendDocument, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		docs = append(docs, hit.Document)
	}
	return docs, nil
}

// Ping verifica a saúde do servidor
func (s *TypesenseStore) Ping(ctx context.Context) error {
	healthy, err := s.client.Health(ctx, 2*time.Second)
	if err != nil {
		return fmt.Errorf("typesense indisponível: %w", err)
	}
	if !healthy {
		return errors.New("typesense reportou estado não saudável")
	}
	return nil
}

// EnsureSchema cria as coleções que ainda não existem
func (s *TypesenseStore) EnsureSchema(ctx context.Context) error {
	for _, schema := range s.registry.All() {
		if err := s.ensureCollectionExists(ctx, schema); err != nil {
			return fmt.Errorf("erro ao criar/verificar coleção %s: %w", schema.Name, err)
		}
	}
	return nil
}

func (s *TypesenseStore) ensureCollectionExists(ctx context.Context, schema *schemas.SchemaDefinition) error {
	_, err := s.client.Collection(schema.Name).Retrieve(ctx)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return err
	}

	log.Printf("[Storage] Coleção %s não existe, criando...", schema.Name)
	if _, err := s.client.Collections().Create(ctx, schema.TypesenseSchema()); err != nil {
		return err
	}
	log.Printf("[Storage] Coleção %s criada", schema.Name)
	return nil
}

func (s *TypesenseStore) Close() error { return nil }

func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "Not found") || strings.Contains(msg, "Not Found")
}

// escapeFilterValue remove crases, que delimitam o valor no filter_by
func escapeFilterValue(v string) string {
	return strings.ReplaceAll(v, "`", "")
}

func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter para map: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("erro ao converter para map: %w", err)
	}
	return m, nil
}

func fromMap(m map[string]interface{}, out interface{}) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("erro ao serializar documento: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("erro ao deserializar documento: %w", err)
	}
	return nil
}

func nonNilClaims(claims []models.Claim) []models.Claim {
	if claims == nil {
		return []models.Claim{}
	}
	return claims
}
