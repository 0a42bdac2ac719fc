package schemas

import (
	"github.com/typesense/typesense-go/v3/typesense/api"
)

// AnalysesSchema é a coleção de análises concluídas
func AnalysesSchema() *SchemaDefinition {
	return &SchemaDefinition{
		Version:      "v1",
		Name:         AnalysesCollection,
		SortingField: "created_at",
		Fields: []api.Field{
			{Name: "input_type", Type: "string", Facet: BoolPtr(true)},
			{Name: "input_summary", Type: "string"},
			{Name: "headline", Type: "string", Optional: BoolPtr(true)},
			{Name: "fake_probability", Type: "int32", Facet: BoolPtr(true)},
			{Name: "verifiable_truth", Type: "int32"},
			{Name: "bias_framing", Type: "int32"},
			{Name: "manipulation_risk", Type: "int32"},
			{Name: "verdict", Type: "string", Facet: BoolPtr(true)},
			{Name: "report_markdown", Type: "string", Index: BoolPtr(false), Optional: BoolPtr(true)},
			{Name: "claims_json", Type: "string", Index: BoolPtr(false), Optional: BoolPtr(true)},
			{Name: "fingerprint", Type: "string", Facet: BoolPtr(true)},
			{Name: "is_flagged", Type: "bool", Facet: BoolPtr(true)},
			{Name: "created_at", Type: "int64", Sort: BoolPtr(true)},
		},
		PostgresDDL: []string{
			`CREATE TABLE IF NOT EXISTS analyses (
				id TEXT PRIMARY KEY,
				input_type TEXT NOT NULL,
				input_summary TEXT NOT NULL DEFAULT '',
				headline TEXT NOT NULL DEFAULT '',
				scores JSONB NOT NULL,
				verdict TEXT NOT NULL,
				report_markdown TEXT NOT NULL DEFAULT '',
				claims JSONB NOT NULL DEFAULT '[]'::jsonb,
				fingerprint TEXT NOT NULL,
				is_flagged BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_analyses_fingerprint ON analyses (fingerprint)`,
			`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC)`,
		},
	}
}

// TrendingItemsSchema é a coleção de tendências agregadas por fingerprint
func TrendingItemsSchema() *SchemaDefinition {
	return &SchemaDefinition{
		Version:      "v1",
		Name:         TrendingItemsCollection,
		SortingField: "score_fake_probability",
		Fields: []api.Field{
			{Name: "title", Type: "string"},
			{Name: "reason", Type: "string", Optional: BoolPtr(true)},
			{Name: "fingerprint", Type: "string", Facet: BoolPtr(true)},
			{Name: "sample_claims_json", Type: "string", Index: BoolPtr(false), Optional: BoolPtr(true)},
			{Name: "occurrences", Type: "int32", Sort: BoolPtr(true)},
			{Name: "score_fake_probability", Type: "int32", Sort: BoolPtr(true)},
			{Name: "last_seen", Type: "int64", Sort: BoolPtr(true)},
		},
		PostgresDDL: []string{
			`CREATE TABLE IF NOT EXISTS trending_items (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				reason TEXT NOT NULL DEFAULT '',
				fingerprint TEXT NOT NULL,
				sample_claims JSONB NOT NULL DEFAULT '[]'::jsonb,
				occurrences INTEGER NOT NULL DEFAULT 1 CHECK (occurrences >= 1),
				score_fake_probability INTEGER NOT NULL DEFAULT 0,
				last_seen TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_trending_items_fingerprint ON trending_items (fingerprint)`,
			`CREATE INDEX IF NOT EXISTS idx_trending_items_score ON trending_items (score_fake_probability DESC, last_seen DESC)`,
		},
	}
}
