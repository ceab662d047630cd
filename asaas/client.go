package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yggdrasil/config"
)

// Client fala com a API REST do Asaas (pagamentos com split e subcontas).
// Construído uma vez no startup e injetado nos handlers via contexto do gin.
type Client struct {
	BaseURL          string
	APIKey           string
	PlatformWalletId string
	HTTPClient       *http.Client
}

func NewClient(cfg config.Configuration) *Client {
	return &Client{
		BaseURL:          strings.TrimRight(cfg.Asaas.Url, "/"),
		APIKey:           cfg.Asaas.ApiKey,
		PlatformWalletId: cfg.Asaas.PlatformWalletId,
		HTTPClient:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured diz se o cliente tem o mínimo para operar. Endpoints que
// dependem do Asaas devem falhar fechado (500) quando isso for falso.
func (c *Client) Configured() bool {
	return c != nil && c.BaseURL != "" && c.APIKey != ""
}

// CreatePayment cria uma cobrança no Asaas com instruções de split.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	var out Payment
	if err := c.do(ctx, http.MethodPost, "/payments", req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Errors: []ErrorItem{{Description: "resposta do Asaas sem id de pagamento"}}}
	}
	return &out, nil
}

// GetPaymentByExternalReference busca um pagamento pela chave de conciliação
// (externalReference). Retorna nil quando nada foi encontrado.
func (c *Client) GetPaymentByExternalReference(ctx context.Context, ref string) (*Payment, error) {
	var out paymentList
	path := "/payments?externalReference=" + url.QueryEscape(ref)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

// CreateAccount cria uma subconta de recebimento habilitada para split.
func (c *Client) CreateAccount(ctx context.Context, req AccountRequest) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/accounts", req, &out); err != nil {
		return nil, err
	}
	if out.WalletId == "" {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Errors: []ErrorItem{{Description: "resposta do Asaas sem walletId"}}}
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// O Asaas devolve erros num array "errors", às vezes com status 200.
	var envelope struct {
		Errors []ErrorItem `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Errors) > 0 {
		return &APIError{StatusCode: resp.StatusCode, Errors: envelope.Errors}
	}

	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Errors: []ErrorItem{{Description: string(raw)}}}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("asaas: resposta inválida: %w", err)
		}
	}
	return nil
}
