// Package captcha valida tokens Cloudflare Turnstile.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL é o endpoint de verificação do Turnstile
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Códigos de erro produzidos localmente
const (
	CodeMissingInput = "missing-input-response"
	CodeNetworkError = "network-error"
)

// Result é a resposta da verificação
type Result struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verifier valida o token enviado pelo navegador
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) Result
}

// TurnstileVerifier chama o siteverify da Cloudflare
type TurnstileVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewTurnstileVerifier cria o verificador. Sem secret, todo token é aceito (modo dev).
func NewTurnstileVerifier(secret string, client *http.Client) *TurnstileVerifier {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &TurnstileVerifier{secret: secret, verifyURL: DefaultVerifyURL, client: client}
}

// WithVerifyURL troca o endpoint de verificação
func (v *TurnstileVerifier) WithVerifyURL(u string) *TurnstileVerifier {
	v.verifyURL = u
	return v
}

// Enabled indica se há secret configurado
func (v *TurnstileVerifier) Enabled() bool {
	return v.secret != ""
}

func (v *TurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) Result {
	if !v.Enabled() {
		return Result{Success: true, ErrorCodes: []string{}}
	}
	if strings.TrimSpace(token) == "" {
		return Result{Success: false, ErrorCodes: []string{CodeMissingInput}}
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{Success: false, ErrorCodes: []string{CodeNetworkError}}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		log.Printf("[Captcha] Erro de rede na verificação: %v", err)
		return Result{Success: false, ErrorCodes: []string{CodeNetworkError}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Success: false, ErrorCodes: []string{fmt.Sprintf("http-%d", resp.StatusCode)}}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{Success: false, ErrorCodes: []string{CodeNetworkError}}
	}
	if result.ErrorCodes == nil {
		result.ErrorCodes = []string{}
	}
	return result
}
