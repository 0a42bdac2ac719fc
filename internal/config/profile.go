package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile sobrescreve prompts e domínios sem recompilar
type Profile struct {
	SystemInstruction    string   `yaml:"system_instruction"`
	TextInstruction      string   `yaml:"text_instruction"`
	ImageInstruction     string   `yaml:"image_instruction"`
	AudioInstruction     string   `yaml:"audio_instruction"`
	SelfReferenceDomains []string `yaml:"self_reference_domains"`
}

// LoadProfile lê o perfil YAML do caminho informado
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler perfil: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodifica o perfil; campos desconhecidos são rejeitados
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("perfil YAML inválido: %w", err)
	}
	return &p, nil
}
