package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"yggdrasil/asaas"
	"yggdrasil/models"

	"github.com/stretchr/testify/require"
)

func integrarLocadorBody(locadorID int64) map[string]any {
	return map[string]any{
		"locador_id":    locadorID,
		"nome_completo": "João da Silva",
		"email":         "dono@teste.com",
		"cpf_cnpj":      "12345678901",
		"telefone":      "+55 (11) 91234-5678",
		"dados_bancarios": map[string]any{
			"bank_code":     "001",
			"agency":        "1234",
			"account":       "56789",
			"account_digit": "0",
		},
	}
}

func TestIntegrarLocadorSucesso(t *testing.T) {
	db := openTestDB(t)
	locador := createTestUser(t, db, models.USER_ROLE_LOCADOR, "dono@teste.com")

	var captured asaas.AccountRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(asaas.Account{ID: "acc_001", WalletId: "wallet-abc"})
	})
	client := newFakeAsaas(t, mux)

	r := newTestRouter(db, client, locador)
	r.POST("/api/locador/integrar", IntegrarLocador)

	w := doJSON(t, r, http.MethodPost, "/api/locador/integrar", integrarLocadorBody(locador.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// subconta habilitada pra split, telefone normalizado
	require.True(t, captured.ReceiveSplit)
	require.Equal(t, "11912345678", captured.MobilePhone)
	require.Equal(t, "João da Silva", captured.Name)

	var resp struct {
		Success       bool   `json:"success"`
		AsaasWalletId string `json:"asaas_wallet_id"`
	}
	decodeBody(t, w, &resp)
	require.True(t, resp.Success)
	require.Equal(t, "wallet-abc", resp.AsaasWalletId)

	var updated models.User
	require.NoError(t, db.First(&updated, locador.ID).Error)
	require.Equal(t, "wallet-abc", updated.AsaasWalletId)
	require.Equal(t, "acc_001", updated.AsaasAccountId)
	require.Equal(t, models.INTEGRATION_STATUS_ACTIVE, updated.IntegracaoAsaasStatus)

	var wallet models.Wallet
	require.NoError(t, db.Where("owner_id = ?", locador.ID).First(&wallet).Error)
	require.Equal(t, "wallet-abc", wallet.AsaasWalletId)
	require.Equal(t, "001", wallet.BankCode)
	require.Equal(t, models.INTEGRATION_STATUS_ACTIVE, wallet.Status)
}

func TestIntegrarLocadorFalhaNoGateway(t *testing.T) {
	db := openTestDB(t)
	locador := createTestUser(t, db, models.USER_ROLE_LOCADOR, "dono@teste.com")

	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []asaas.ErrorItem{{Code: "invalid_bank", Description: "Banco inválido"}},
		})
	})
	client := newFakeAsaas(t, mux)

	r := newTestRouter(db, client, locador)
	r.POST("/api/locador/integrar", IntegrarLocador)

	w := doJSON(t, r, http.MethodPost, "/api/locador/integrar", integrarLocadorBody(locador.ID))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// nada persistido em falha
	var updated models.User
	require.NoError(t, db.First(&updated, locador.ID).Error)
	require.Empty(t, updated.AsaasWalletId)
	require.Equal(t, models.INTEGRATION_STATUS_NONE, updated.IntegracaoAsaasStatus)

	var count int64
	require.NoError(t, db.Model(&models.Wallet{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestIntegrarLocadorDadosIncompletos(t *testing.T) {
	db := openTestDB(t)
	locador := createTestUser(t, db, models.USER_ROLE_LOCADOR, "dono@teste.com")
	client := newFakeAsaas(t, http.NewServeMux())

	r := newTestRouter(db, client, locador)
	r.POST("/api/locador/integrar", IntegrarLocador)

	body := integrarLocadorBody(locador.ID)
	delete(body, "dados_bancarios")

	w := doJSON(t, r, http.MethodPost, "/api/locador/integrar", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntegrarLocadorUsuarioNaoLocador(t *testing.T) {
	db := openTestDB(t)
	locatario := createTestUser(t, db, models.USER_ROLE_LOCATARIO, "inquilino@teste.com")
	client := newFakeAsaas(t, http.NewServeMux())

	r := newTestRouter(db, client, nil)
	r.POST("/api/locador/integrar", IntegrarLocador)

	w := doJSON(t, r, http.MethodPost, "/api/locador/integrar", integrarLocadorBody(locatario.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWallet(t *testing.T) {
	db := openTestDB(t)
	locador := createTestUser(t, db, models.USER_ROLE_LOCADOR, "dono@teste.com")

	r := newTestRouter(db, nil, locador)
	r.GET("/api/wallet", GetWallet)

	// sem wallet ainda
	w := doJSON(t, r, http.MethodGet, "/api/wallet", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	wallet := models.Wallet{
		OwnerID:       locador.ID,
		BankCode:      "001",
		Agency:        "1234",
		Account:       "56789",
		AsaasWalletId: "wallet-abc",
		Status:        models.INTEGRATION_STATUS_ACTIVE,
	}
	require.NoError(t, db.Create(&wallet).Error)

	w = doJSON(t, r, http.MethodGet, "/api/wallet", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Wallet models.Wallet `json:"wallet"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, "wallet-abc", resp.Wallet.AsaasWalletId)
}
