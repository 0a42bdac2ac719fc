// Package trends agrega análises repetidas em itens de tendência por fingerprint.
package trends

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/google/uuid"
)

const (
	// MaxReasonChars limita o resumo guardado no item
	MaxReasonChars = 300
	// MaxSampleClaims limita as afirmações de exemplo
	MaxSampleClaims = 3
)

// Sighting é uma nova ocorrência de conteúdo analisado
type Sighting struct {
	Fingerprint  string
	Headline     string
	Reason       string
	Score        int
	SampleClaims []models.Claim
}

// Outcome descreve o efeito do Upsert
type Outcome int

const (
	Skipped Outcome = iota
	Inserted
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	default:
		return "skipped"
	}
}

// Updater insere ou atualiza itens de tendência
type Updater struct {
	store storage.TrendStore
	now   func() time.Time
	newID func() string
}

// NewUpdater cria um Updater sobre o store informado
func NewUpdater(store storage.TrendStore) *Updater {
	return &Updater{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Upsert registra a ocorrência. Um fingerprint já conhecido tem occurrences
// incrementado e score/last_seen substituídos pelos valores da última análise.
func (u *Updater) Upsert(ctx context.Context, s Sighting) (Outcome, error) {
	if strings.TrimSpace(s.Fingerprint) == "" || strings.TrimSpace(s.Headline) == "" {
		return Skipped, nil
	}

	now := u.now().UTC()
	score := models.ClampScore(s.Score)

	existing, err := u.store.FindTrendByFingerprint(ctx, s.Fingerprint)
	if err != nil {
		return Skipped, fmt.Errorf("erro ao buscar tendência: %w", err)
	}
	if existing != nil {
		return u.bump(ctx, existing, score, now)
	}

	item := &models.TrendItem{
		ID:                   u.newID(),
		Title:                s.Headline,
		Reason:               truncateRunes(s.Reason, MaxReasonChars),
		Fingerprint:          s.Fingerprint,
		SampleClaims:         sampleClaims(s.SampleClaims),
		Occurrences:          1,
		ScoreFakeProbability: score,
		LastSeen:             now,
	}
	err = u.store.InsertTrend(ctx, item)
	if errors.Is(err, storage.ErrDuplicate) {
		// Outra requisição inseriu o mesmo fingerprint antes
		existing, err = u.store.FindTrendByFingerprint(ctx, s.Fingerprint)
		if err != nil {
			return Skipped, fmt.Errorf("erro ao buscar tendência: %w", err)
		}
		if existing == nil {
			return Skipped, fmt.Errorf("tendência duplicada não encontrada: %s", s.Fingerprint)
		}
		return u.bump(ctx, existing, score, now)
	}
	if err != nil {
		return Skipped, fmt.Errorf("erro ao inserir tendência: %w", err)
	}
	log.Printf("[Trends] Novo item %s (score %d)", item.ID, score)
	return Inserted, nil
}

func (u *Updater) bump(ctx context.Context, item *models.TrendItem, score int, now time.Time) (Outcome, error) {
	update := models.TrendUpdate{
		Occurrences:          item.Occurrences + 1,
		ScoreFakeProbability: score,
		LastSeen:             now,
	}
	if err := u.store.UpdateTrend(ctx, item.ID, update); err != nil {
		return Skipped, fmt.Errorf("erro ao atualizar tendência: %w", err)
	}
	return Updated, nil
}

// SuggestedItem monta o item criado por uma sugestão manual de alerta
func SuggestedItem(title, description string, now time.Time) *models.TrendItem {
	return &models.TrendItem{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(title),
		Reason:       strings.TrimSpace(description),
		Fingerprint:  fmt.Sprintf("suggest:%d", now.UnixNano()),
		SampleClaims: []models.Claim{},
		Occurrences:  1,
		LastSeen:     now.UTC(),
	}
}

func sampleClaims(claims []models.Claim) []models.Claim {
	if len(claims) > MaxSampleClaims {
		claims = claims[:MaxSampleClaims]
	}
	return append([]models.Claim{}, claims...)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
