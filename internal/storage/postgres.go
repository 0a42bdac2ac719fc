package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage/schemas"
	"github.com/lib/pq"
)

// uniqueViolation é o código SQLSTATE de violação de índice único
const uniqueViolation = "23505"

// PostgresStore persiste nas tabelas analyses e trending_items
type PostgresStore struct {
	db       *sql.DB
	registry *schemas.Registry
}

// NewPostgresStore abre o pool de conexões; a conexão é validada em Ping
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL não configurada")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB usa um *sql.DB já aberto
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, registry: schemas.NewRegistry()}
}

func (s *PostgresStore) InsertAnalysis(ctx context.Context, r *models.AnalysisRecord) error {
	scores, err := json.Marshal(r.Scores)
	if err != nil {
		return fmt.Errorf("erro ao serializar scores: %w", err)
	}
	claims, err := json.Marshal(nonNilClaims(r.Claims))
	if err != nil {
		return fmt.Errorf("erro ao serializar claims: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses
			(id, input_type, input_summary, headline, scores, verdict, report_markdown, claims, fingerprint, is_flagged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, string(r.InputType), r.InputSummary, r.Headline, string(scores), string(r.Verdict),
		r.ReportMarkdown, string(claims), r.Fingerprint, r.Flagged, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao salvar análise: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, input_type, input_summary, headline, scores, verdict, report_markdown, claims, fingerprint, is_flagged, created_at
		FROM analyses WHERE id = $1`, id)

	var (
		r          models.AnalysisRecord
		inputType  string
		verdict    string
		scoresJSON []byte
		claimsJSON []byte
	)
	err := row.Scan(&r.ID, &inputType, &r.InputSummary, &r.Headline, &scoresJSON, &verdict,
		&r.ReportMarkdown, &claimsJSON, &r.Fingerprint, &r.Flagged, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar análise: %w", err)
	}

	r.InputType = models.InputType(inputType)
	r.Verdict = models.Verdict(verdict)
	if err := json.Unmarshal(scoresJSON, &r.Scores); err != nil {
		return nil, fmt.Errorf("erro ao deserializar scores: %w", err)
	}
	if err := json.Unmarshal(claimsJSON, &r.Claims); err != nil {
		log.Printf("[Storage] claims inválidas na análise %s: %v", r.ID, err)
	}
	r.Claims = nonNilClaims(r.Claims)
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

const trendColumns = `id, title, reason, fingerprint, sample_claims, occurrences, score_fake_probability, last_seen`

func (s *PostgresStore) FindTrendByFingerprint(ctx context.Context, fingerprint string) (*models.TrendItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+trendColumns+` FROM trending_items WHERE fingerprint = $1 LIMIT 1`, fingerprint)

	item, err := scanTrend(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tendência: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) InsertTrend(ctx context.Context, item *models.TrendItem) error {
	claims, err := json.Marshal(nonNilClaims(item.SampleClaims))
	if err != nil {
		return fmt.Errorf("erro ao serializar sample claims: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trending_items (`+trendColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.Title, item.Reason, item.Fingerprint, string(claims),
		item.Occurrences, item.ScoreFakeProbability, item.LastSeen,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("erro ao salvar tendência: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateTrend(ctx context.Context, id string, update models.TrendUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE trending_items
		SET occurrences = $2, score_fake_probability = $3, last_seen = $4
		WHERE id = $1`,
		id, update.Occurrences, update.ScoreFakeProbability, update.LastSeen,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar tendência: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListTrends(ctx context.Context, limit int) ([]models.TrendItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+trendColumns+` FROM trending_items
		ORDER BY score_fake_probability DESC, last_seen DESC LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tendências: %w", err)
	}
	defer rows.Close()

	items := []models.TrendItem{}
	for rows.Next() {
		item, err := scanTrend(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler tendência: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrend(row scanner) (*models.TrendItem, error) {
	var (
		item       models.TrendItem
		claimsJSON []byte
	)
	if err := row.Scan(&item.ID, &item.Title, &item.Reason, &item.Fingerprint, &claimsJSON,
		&item.Occurrences, &item.ScoreFakeProbability, &item.LastSeen); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(claimsJSON, &item.SampleClaims); err != nil {
		log.Printf("[Storage] sample_claims inválidas no item %s: %v", item.ID, err)
	}
	item.SampleClaims = nonNilClaims(item.SampleClaims)
	item.LastSeen = item.LastSeen.UTC()
	return &item, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres indisponível: %w", err)
	}
	return nil
}

// EnsureSchema executa o DDL idempotente de cada coleção
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, schema := range s.registry.All() {
		for _, stmt := range schema.PostgresDDL {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("erro ao criar tabela %s: %w", schema.Name, err)
			}
		}
		log.Printf("[Storage] Tabela %s verificada", schema.Name)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
