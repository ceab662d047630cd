package asaas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		BaseURL:          srv.URL,
		APIKey:           "chave-de-teste",
		PlatformWalletId: "wallet-plataforma",
		HTTPClient:       srv.Client(),
	}
}

func TestCreatePayment(t *testing.T) {
	var captured PaymentRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "chave-de-teste", r.Header.Get("access_token"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(Payment{
			ID:         "pay_123",
			Status:     PAYMENT_STATUS_PENDING,
			Value:      captured.Value,
			InvoiceUrl: "https://sandbox.asaas.com/i/pay_123",
		})
	})
	client := newTestClient(t, mux)

	payment, err := client.CreatePayment(context.Background(), PaymentRequest{
		Customer:          "cus_000001",
		BillingType:       "PIX",
		Value:             1000.00,
		DueDate:           "2026-09-10",
		ExternalReference: "42",
		Split: []SplitItem{
			{WalletId: "wallet-locador", Value: "950.00"},
			{WalletId: "wallet-plataforma", Value: "50.00"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "pay_123", payment.ID)

	require.Equal(t, "42", captured.ExternalReference)
	require.Len(t, captured.Split, 2)
	require.Equal(t, "950.00", captured.Split[0].Value)
}

func TestCreatePaymentErrosDoGateway(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		// o Asaas às vezes devolve o array de erros com status 200
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []ErrorItem{{Code: "invalid_value", Description: "Valor inválido"}},
		})
	})
	client := newTestClient(t, mux)

	_, err := client.CreatePayment(context.Background(), PaymentRequest{Value: -1})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Len(t, apiErr.Errors, 1)
	require.Equal(t, "Valor inválido", apiErr.Errors[0].Description)
	require.Contains(t, apiErr.Error(), "Valor inválido")
}

func TestCreatePaymentRespostaSemID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})
	client := newTestClient(t, mux)

	_, err := client.CreatePayment(context.Background(), PaymentRequest{Value: 100})
	require.Error(t, err)
}

func TestGetPaymentByExternalReference(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		ref := r.URL.Query().Get("externalReference")
		if ref != "42" {
			json.NewEncoder(w).Encode(paymentList{})
			return
		}
		json.NewEncoder(w).Encode(paymentList{Data: []Payment{{
			ID:                "pay_123",
			Status:            PAYMENT_STATUS_RECEIVED,
			Value:             1000.00,
			ExternalReference: "42",
		}}})
	})
	client := newTestClient(t, mux)

	payment, err := client.GetPaymentByExternalReference(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, payment)
	require.Equal(t, "pay_123", payment.ID)

	// nada encontrado não é erro
	payment, err = client.GetPaymentByExternalReference(context.Background(), "999")
	require.NoError(t, err)
	require.Nil(t, payment)
}

func TestCreateAccount(t *testing.T) {
	var captured AccountRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(Account{ID: "acc_001", WalletId: "wallet-abc"})
	})
	client := newTestClient(t, mux)

	account, err := client.CreateAccount(context.Background(), AccountRequest{
		Name:         "João da Silva",
		CpfCnpj:      "12345678901",
		ReceiveSplit: true,
		Bank:         "001",
		Agency:       "1234",
		Account:      "56789",
	})
	require.NoError(t, err)
	require.Equal(t, "wallet-abc", account.WalletId)
	require.True(t, captured.ReceiveSplit)
}

func TestCreateAccountRespostaSemWalletId(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Account{ID: "acc_001"})
	})
	client := newTestClient(t, mux)

	_, err := client.CreateAccount(context.Background(), AccountRequest{Name: "X"})
	require.Error(t, err)
}

func TestConfigured(t *testing.T) {
	var nilClient *Client
	require.False(t, nilClient.Configured())
	require.False(t, (&Client{}).Configured())
	require.False(t, (&Client{BaseURL: "https://api"}).Configured())
	require.True(t, (&Client{BaseURL: "https://api", APIKey: "k"}).Configured())
}

func TestWebhookEventIsPaymentSettled(t *testing.T) {
	require.True(t, WebhookEvent{Event: EVENT_PAYMENT_RECEIVED}.IsPaymentSettled())
	require.True(t, WebhookEvent{Event: EVENT_PAYMENT_CONFIRMED}.IsPaymentSettled())
	require.False(t, WebhookEvent{Event: "PAYMENT_OVERDUE"}.IsPaymentSettled())
	require.False(t, WebhookEvent{}.IsPaymentSettled())
}
