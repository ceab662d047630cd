package controllers

import (
	"net/http"
	"testing"

	"yggdrasil/models"

	"github.com/stretchr/testify/require"
)

func TestUpdateCurrentUser(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, models.USER_ROLE_LOCATARIO, "maria@teste.com")

	r := newTestRouter(db, nil, user)
	r.PUT("/api/user", UpdateCurrentUser)

	w := doJSON(t, r, http.MethodPut, "/api/user", map[string]any{
		"name":              "Maria Atualizada",
		"phone":             "11912345678",
		"asaas_customer_id": "cus_42",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, "Maria Atualizada", stored.Name)
	require.Equal(t, "11912345678", stored.Phone)
	require.Equal(t, "cus_42", stored.AsaasCustomerId)
}

func TestUpdateCurrentUserIgnoraCamposProibidos(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, models.USER_ROLE_LOCATARIO, "maria@teste.com")

	r := newTestRouter(db, nil, user)
	r.PUT("/api/user", UpdateCurrentUser)

	w := doJSON(t, r, http.MethodPut, "/api/user", map[string]any{
		"email":                   "hacker@teste.com",
		"role":                    models.USER_ROLE_LOCADOR,
		"asaas_wallet_id":         "wallet-roubada",
		"integracao_asaas_status": models.INTEGRATION_STATUS_ACTIVE,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, "maria@teste.com", stored.Email)
	require.Equal(t, models.USER_ROLE_LOCATARIO, stored.Role)
	require.Empty(t, stored.AsaasWalletId)
	require.Equal(t, models.INTEGRATION_STATUS_NONE, stored.IntegracaoAsaasStatus)
}
