package analysis

import "errors"

var (
	// ErrNotConfigured indica que nenhum modelo foi configurado (GEMINI_API_KEY ausente)
	ErrNotConfigured = errors.New("modelo de IA não configurado")

	// ErrModelCall indica falha na chamada ao modelo
	ErrModelCall = errors.New("falha ao chamar o modelo de IA")

	// ErrEmptyInput indica que não há texto nem mídia para analisar
	ErrEmptyInput = errors.New("nenhum conteúdo para analisar")

	// ErrUnparseableReply indica que a resposta do modelo não contém JSON utilizável
	ErrUnparseableReply = errors.New("resposta do modelo não é JSON válido")
)
