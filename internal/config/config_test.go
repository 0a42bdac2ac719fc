package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_CHAT_MODEL", "modelo-x")
	t.Setenv("SELF_REFERENCE_DOMAINS", " a.com , ,b ")
	t.Setenv("WEB_RESPECT_ROBOTS", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "abc")

	cfg := LoadConfig()
	assert.Equal(t, "modelo-x", cfg.GeminiTranscribeModel)
	assert.Equal(t, []string{"a.com", "b"}, cfg.Pipeline.SelfReferenceDomains)
	assert.True(t, cfg.Pipeline.WebRespectRobots)
	assert.Equal(t, 8*time.Second, cfg.Pipeline.WebFetchTimeout)
	assert.Equal(t, 4_500_000, cfg.Pipeline.MaxContentBytes)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Nil(t, cfg.Profile)
}

func TestLoadConfigWithProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
system_instruction: "Seja neutro."
self_reference_domains:
  - meusite.org
`), 0o600))
	t.Setenv("PROMPT_PROFILE_FILE", path)

	cfg := LoadConfig()
	require.NotNil(t, cfg.Profile)
	assert.Equal(t, "Seja neutro.", cfg.Profile.SystemInstruction)
	assert.Equal(t, []string{"meusite.org"}, cfg.Pipeline.SelfReferenceDomains)
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, p.SystemInstruction)

	_, err = ParseProfile([]byte("campo_desconhecido: 1"))
	assert.Error(t, err)
}
