package models

import (
	"errors"
	"net/http"
)

// ErrorKind é o conjunto fechado de tipos de erro expostos na API
type ErrorKind string

const (
	ErrKindValidation       ErrorKind = "VALIDATION"
	ErrKindRateLimited      ErrorKind = "RATE_LIMITED"
	ErrKindCaptchaFailed    ErrorKind = "CAPTCHA_FAILED"
	ErrKindExtractionFailed ErrorKind = "EXTRACTION_FAILED"
	ErrKindServerMisconfig  ErrorKind = "SERVER_MISCONFIG"
	ErrKindTooLarge         ErrorKind = "TOO_LARGE"
	ErrKindAnalyzeFailed    ErrorKind = "ANALYZE_FAILED"
	ErrKindInternal         ErrorKind = "INTERNAL"
	ErrKindNotFound         ErrorKind = "NOT_FOUND"
)

// Status retorna o status HTTP correspondente ao tipo de erro
func (k ErrorKind) Status() int {
	switch k {
	case ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindCaptchaFailed:
		return http.StatusForbidden
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrKindExtractionFailed:
		return http.StatusUnprocessableEntity
	case ErrKindRateLimited:
		return http.StatusTooManyRequests
	case ErrKindServerMisconfig:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// APIError é um erro com mensagem localizada pronta para o usuário
type APIError struct {
	Kind    ErrorKind `json:"error"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAPIError cria um APIError
func NewAPIError(kind ErrorKind, message string, cause error) *APIError {
	return &APIError{Kind: kind, Message: message, Cause: cause}
}

// AsAPIError converte qualquer erro em APIError; erros desconhecidos viram ANALYZE_FAILED
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{
		Kind:    ErrKindAnalyzeFailed,
		Message: MsgAnalyzeFailed,
		Cause:   err,
	}
}

// ErrorResponse é o corpo JSON dos erros
type ErrorResponse struct {
	OK      bool      `json:"ok"`
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
}

// Response monta o corpo JSON do erro
func (e *APIError) Response() ErrorResponse {
	return ErrorResponse{OK: false, Error: e.Kind, Message: e.Message}
}

// Mensagens exibidas ao usuário
const (
	MsgRateLimited     = "Muitas requisições. Aguarde um minuto."
	MsgCaptchaFailed   = "Verificação anti-bot falhou. Recarregue a página e tente novamente."
	MsgInvalidData     = "Dados inválidos."
	MsgInvalidURL      = "URL inválida. Verifique o formato e tente novamente."
	MsgTooLarge        = "Conteúdo excede o limite de ~4.5 MB."
	MsgMisconfigured   = "GEMINI_API_KEY não configurada no servidor."
	MsgAnalyzeFailed   = "Falha ao analisar no servidor. Tente novamente."
	MsgExtractionEmpty = "Não foi possível extrair conteúdo do link."
	MsgInternal        = "Erro interno do servidor."
	MsgNotFound        = "Análise não encontrada."

	MsgInputTypeRequired = "Tipo de entrada obrigatório."
	MsgInputTypeInvalid  = "Tipo de entrada inválido. Use: text, link, image ou audio."
	MsgContentEmpty      = "Conteúdo não pode estar vazio."
	MsgTitleTooShort     = "Título muito curto."
	MsgTitleTooLong      = "Título muito longo."
	MsgDescriptionLong   = "Descrição muito longa."
	MsgInvalidMedia      = "Arquivo de mídia inválido. Envie a imagem ou áudio novamente."
	MsgSuggestionSaved   = "Sugestão registrada! Ela aparecerá nos alertas após verificação."
	MsgSuggestionFailed  = "Erro ao salvar sugestão. Tente novamente."
)
