package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisDocumentRoundTrip(t *testing.T) {
	record := &models.AnalysisRecord{
		ID:        "abc",
		InputType: models.InputLink,
		Headline:  "Manchete",
		Scores:    models.Scores{FakeProbability: 80, VerifiableTruth: 10, BiasFraming: 30, ManipulationRisk: 70},
		Verdict:   models.VerdictFake,
		Claims:    []models.Claim{{Claim: "c", Assessment: "a", Confidence: 60}},
		Flagged:   true,
		CreatedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	doc, err := toAnalysisDocument(record)
	require.NoError(t, err)
	assert.Equal(t, record.CreatedAt.Unix(), doc.CreatedAt)
	assert.Equal(t, 80, doc.FakeProbability)

	back := doc.record()
	assert.Equal(t, record, back)
}

func TestTrendDocumentWithoutClaims(t *testing.T) {
	doc, err := toTrendDocument(&models.TrendItem{ID: "t", Fingerprint: "f"})
	require.NoError(t, err)
	assert.Equal(t, "[]", doc.SampleClaimsJSON)
	assert.NotNil(t, doc.item().SampleClaims)
}

func TestEscapeFilterValue(t *testing.T) {
	assert.Equal(t, "abc", escapeFilterValue("a`b`c"))
}

func newFakeTypesense(t *testing.T, handler http.HandlerFunc) *TypesenseStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewTypesenseStore(server.URL, "test-key")
}

func TestTypesenseFindTrendByFingerprint(t *testing.T) {
	var gotFilter string
	store := newFakeTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/trending_items/documents/search", r.URL.Path)
		gotFilter = r.URL.Query().Get("filter_by")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"found":1,"hits":[{"document":{
			"id":"t1","title":"Título","fingerprint":"fp","sample_claims_json":"[{\"claim\":\"c\",\"assessment\":\"a\",\"confidence\":50}]",
			"occurrences":3,"score_fake_probability":70,"last_seen":1735689600}}]}`)
	})

	item, err := store.FindTrendByFingerprint(context.Background(), "fp")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "fingerprint:=`fp`", gotFilter)
	assert.Equal(t, 3, item.Occurrences)
	assert.Equal(t, "c", item.SampleClaims[0].Claim)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), item.LastSeen)
}

func TestTypesenseFindTrendByFingerprintEmpty(t *testing.T) {
	store := newFakeTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"found":0,"hits":[]}`)
	})

	item, err := store.FindTrendByFingerprint(context.Background(), "fp")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestTypesenseGetAnalysisNotFound(t *testing.T) {
	store := newFakeTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
	})

	_, err := store.GetAnalysis(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTypesenseInsertAnalysis(t *testing.T) {
	var body map[string]interface{}
	store := newFakeTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasPrefix(r.URL.Path, "/collections/analyses/documents"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	err := store.InsertAnalysis(context.Background(), &models.AnalysisRecord{
		ID:        "a1",
		InputType: models.InputText,
		Verdict:   models.VerdictInconclusive,
		CreatedAt: time.Unix(100, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", body["id"])
	assert.Equal(t, "[]", body["claims_json"])
	assert.EqualValues(t, 100, body["created_at"])
}

func TestTypesenseInsertTrend(t *testing.T) {
	var body map[string]interface{}
	store := newFakeTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasPrefix(r.URL.Path, "/collections/trending_items/documents"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	err := store.InsertTrend(context.Background(), &models.TrendItem{
		ID:                   "t1",
		Title:                "Título",
		Fingerprint:          "fp",
		Occurrences:          2,
		ScoreFakeProbability: 70,
		LastSeen:             time.Unix(200, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", body["id"])
	assert.Equal(t, "fp", body["fingerprint"])
	assert.Equal(t, "[]", body["sample_claims_json"])
	assert.EqualValues(t, 2, body["occurrences"])
	assert.EqualValues(t, 200, body["last_seen"])
}

func TestTypesenseInsertTrendRejected(t *testing.T) {
	store := newFakeTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"A document with id t1 already exists."}`)
	})

	err := store.InsertTrend(context.Background(), &models.TrendItem{ID: "t1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao salvar tendência")
}

func TestTypesenseUpdateTrend(t *testing.T) {
	var body map[string]interface{}
	store := newFakeTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/collections/trending_items/documents/t1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})

	err := store.UpdateTrend(context.Background(), "t1", models.TrendUpdate{
		Occurrences:          4,
		ScoreFakeProbability: 55,
		LastSeen:             time.Unix(300, 0),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, body["occurrences"])
	assert.EqualValues(t, 300, body["last_seen"])
}
