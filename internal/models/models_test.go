package models

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{150, 100},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ClampScore(test.input), "ClampScore(%d)", test.input)
	}
}

func TestErrorKindStatus(t *testing.T) {
	tests := map[ErrorKind]int{
		ErrKindValidation:       http.StatusBadRequest,
		ErrKindCaptchaFailed:    http.StatusForbidden,
		ErrKindExtractionFailed: http.StatusUnprocessableEntity,
		ErrKindRateLimited:      http.StatusTooManyRequests,
		ErrKindServerMisconfig:  http.StatusServiceUnavailable,
		ErrKindTooLarge:         http.StatusRequestEntityTooLarge,
		ErrKindAnalyzeFailed:    http.StatusInternalServerError,
		ErrKindInternal:         http.StatusInternalServerError,
	}

	for kind, status := range tests {
		assert.Equal(t, status, kind.Status(), string(kind))
	}
}

func TestAsAPIError(t *testing.T) {
	apiErr := NewAPIError(ErrKindValidation, MsgInvalidURL, nil)
	wrapped := errors.Join(errors.New("contexto"), apiErr)
	assert.Same(t, apiErr, AsAPIError(wrapped))

	generic := AsAPIError(errors.New("falhou"))
	assert.Equal(t, ErrKindAnalyzeFailed, generic.Kind)
	assert.Equal(t, MsgAnalyzeFailed, generic.Message)

	resp := apiErr.Response()
	assert.False(t, resp.OK)
	assert.Equal(t, ErrKindValidation, resp.Error)
}

func TestParseDataURL(t *testing.T) {
	media, err := ParseDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", media.MIMEType)
	assert.Equal(t, []byte("hello"), media.Data)
	assert.True(t, media.IsImage())
	assert.False(t, media.IsAudio())

	media, err = ParseDataURL("data:audio/webm;base64,aGVsbG8")
	require.NoError(t, err)
	assert.True(t, media.IsAudio())

	for _, invalid := range []string{"", "hello", "data:image/png,abc", "data:image/png;base64,@@@"} {
		_, err := ParseDataURL(invalid)
		assert.ErrorIs(t, err, ErrInvalidDataURL, invalid)
	}
}

func TestNewAnalysisRecord(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &AnalysisResult{
		Meta:   Meta{ID: "abc", CreatedAt: created, Fingerprint: "ff"},
		Scores: Scores{FakeProbability: 70},
		Summary: Summary{
			Headline: "Manchete",
		},
	}

	record := NewAnalysisRecord(result, InputLink, "[https://x.com] texto")
	assert.True(t, record.Flagged)
	assert.Equal(t, VerdictInconclusive, record.Verdict)
	assert.NotNil(t, record.Claims)
	assert.Equal(t, "ff", record.Fingerprint)
	assert.Equal(t, created, record.CreatedAt)

	result.Scores.FakeProbability = 69
	assert.False(t, NewAnalysisRecord(result, InputText, "").Flagged)
}

func TestInputType(t *testing.T) {
	assert.True(t, InputText.IsValid())
	assert.True(t, InputAudio.IsValid())
	assert.False(t, InputYouTubeTranscript.IsValid())
	assert.False(t, InputType("video").IsValid())

	assert.True(t, InputYouTubeTranscript.IsTextual())
	assert.False(t, InputImage.IsTextual())
}
