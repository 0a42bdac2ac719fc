package models

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

var dataURLPattern = regexp.MustCompile(`(?s)^data:([^;,]+);base64,(.+)$`)

// ErrInvalidDataURL indica conteúdo de mídia fora do formato data:<mime>;base64,<payload>
var ErrInvalidDataURL = errors.New("data URL inválida")

// Media é uma imagem ou áudio decodificado a partir de um data URL
type Media struct {
	MIMEType string
	Payload  string
	Data     []byte
}

// ParseDataURL decodifica um data URL base64
func ParseDataURL(content string) (*Media, error) {
	m := dataURLPattern.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil {
		return nil, ErrInvalidDataURL
	}
	payload := strings.TrimSpace(m[2])
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Alguns navegadores omitem o padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, ErrInvalidDataURL
		}
	}
	if len(data) == 0 {
		return nil, ErrInvalidDataURL
	}
	return &Media{MIMEType: strings.ToLower(m[1]), Payload: payload, Data: data}, nil
}

// IsImage indica se o MIME é de imagem
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.MIMEType, "image/")
}

// IsAudio indica se o MIME é de áudio
func (m *Media) IsAudio() bool {
	return strings.HasPrefix(m.MIMEType, "audio/")
}
