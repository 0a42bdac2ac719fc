package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	text     string
	err      error
	gotMIME  string
	gotBytes []byte
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio []byte, mimeType string) (string, error) {
	f.gotMIME = mimeType
	f.gotBytes = audio
	return f.text, f.err
}

// "hello" em base64
const audioDataURL = "data:audio/webm;base64,aGVsbG8="

func TestAudioExtract(t *testing.T) {
	tr := &fakeTranscriber{text: "  O prefeito disse que   a obra termina em março de 2026.  "}
	result := NewAudioExtractor(tr, 0).Extract(t.Context(), audioDataURL)

	require.True(t, result.OK, result.Error)
	assert.Equal(t, "O prefeito disse que a obra termina em março de 2026.", result.Text)
	assert.Equal(t, "audio/webm", tr.gotMIME)
	assert.Equal(t, []byte("hello"), tr.gotBytes)
	assert.Contains(t, result.Warnings, WarnAudioTranscribed)
}

func TestAudioExtractFailures(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		tr       *fakeTranscriber
		expected string
	}{
		{"data url inválido", "não é áudio", &fakeTranscriber{}, MsgAudioInvalid},
		{"imagem no lugar de áudio", "data:image/png;base64,aGVsbG8=", &fakeTranscriber{}, MsgAudioInvalid},
		{"falha do backend", audioDataURL, &fakeTranscriber{err: errors.New("503")}, MsgAudioFailed},
		{"sem fala", audioDataURL, &fakeTranscriber{text: "   "}, MsgAudioTooShort},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := NewAudioExtractor(test.tr, 0).Extract(t.Context(), test.content)
			assert.False(t, result.OK)
			assert.Equal(t, test.expected, result.Error)
		})
	}
}

func TestAudioExtractTruncates(t *testing.T) {
	tr := &fakeTranscriber{text: strings.Repeat("palavra ", 3000)}
	result := NewAudioExtractor(tr, 0).Extract(t.Context(), audioDataURL)
	require.True(t, result.OK)
	assert.Equal(t, DefaultMaxChars, runeLen(result.Text))
	assert.Contains(t, result.Warnings, WarnTranscriptTruncated)
}

func TestGeminiTranscriberNotConfigured(t *testing.T) {
	_, err := NewGeminiTranscriber(nil, "").Transcribe(t.Context(), []byte("x"), "audio/webm")
	assert.ErrorIs(t, err, ErrTranscriberNotConfigured)
}
