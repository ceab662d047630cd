package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"yggdrasil/asaas"
	"yggdrasil/config"
	dbpkg "yggdrasil/db"
	"yggdrasil/models"
	"yggdrasil/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetConfigurations(testConfig())
}

func testConfig() config.Configuration {
	var cfg config.Configuration
	cfg.Security.JwtSecret = "segredo-de-teste"
	cfg.Security.TokenValidHrs = 1
	cfg.Asaas.PlatformFeePercent = 5.0
	return cfg
}

// openTestDB abre um sqlite em memória com o schema migrado.
// MaxOpenConns(1) porque cada conexão :memory: é um banco separado.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)
	dbpkg.AutoMigrate(db)
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestRouter monta um engine com o DB (e opcionalmente o cliente Asaas e
// um usuário já "logado") injetados no contexto.
func newTestRouter(db *gorm.DB, client *asaas.Client, user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	if client != nil {
		r.Use(asaas.SetClientToContext(client))
	}
	if user != nil {
		u := *user
		r.Use(func(c *gin.Context) {
			c.Set(ctxUserKey, u)
			c.Next()
		})
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createTestUser(t *testing.T, db *gorm.DB, role, email string) *models.User {
	t.Helper()

	hash, err := tools.HashPassword("senha123")
	require.NoError(t, err)

	user := models.User{
		Name:     "Usuário " + role,
		Email:    email,
		Password: hash,
		Role:     role,
		Status:   models.USER_STATUS_AVAILABLE,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestProperty(t *testing.T, db *gorm.DB, ownerID int64, price float64) *models.Property {
	t.Helper()

	property := models.Property{
		Name:          "Apto Centro",
		Address:       "Rua das Flores, 100",
		Price:         price,
		Type:          "apartamento",
		StatusAluguel: models.PROPERTY_STATUS_AVAILABLE,
		OwnerID:       ownerID,
		Token:         tools.NewPropertyToken(),
	}
	require.NoError(t, db.Create(&property).Error)
	return &property
}

func createTestRental(t *testing.T, db *gorm.DB, property *models.Property, tenantID int64) *models.Rental {
	t.Helper()

	rental := models.Rental{
		PropertyID: property.ID,
		TenantID:   tenantID,
		LandlordID: property.OwnerID,
		Amount:     property.Price,
		DueDay:     5,
		Status:     models.RENTAL_STATUS_ACTIVE,
	}
	require.NoError(t, db.Create(&rental).Error)
	return &rental
}

// newFakeAsaas sobe um servidor fake do gateway e devolve um cliente
// apontando pra ele.
func newFakeAsaas(t *testing.T, handler http.Handler) *asaas.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &asaas.Client{
		BaseURL:          srv.URL,
		APIKey:           "chave-de-teste",
		PlatformWalletId: "wallet-plataforma",
		HTTPClient:       srv.Client(),
	}
}
