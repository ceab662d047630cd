package workers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yggdrasil/asaas"
	"yggdrasil/config"
	"yggdrasil/controllers"
	dbpkg "yggdrasil/db"
	"yggdrasil/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func init() {
	var cfg config.Configuration
	cfg.Asaas.PlatformFeePercent = 5.0
	controllers.SetConfigurations(cfg)
}

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

func seedPendingCharge(t *testing.T, db *gorm.DB, asaasPaymentId string) models.Charge {
	t.Helper()

	charge := models.Charge{
		RentalID:        1,
		TenantID:        1,
		LocadorWalletId: "wallet-locador",
		Amount:          1000.00,
		DueDate:         "2026-09-10",
		Status:          models.CHARGE_STATUS_PENDING,
		AsaasPaymentId:  asaasPaymentId,
	}
	require.NoError(t, db.Create(&charge).Error)
	return charge
}

// newFakeGateway devolve um cliente apontando pra um servidor que responde o
// GET /payments?externalReference= com a lista dada.
func newFakeGateway(t *testing.T, payments []asaas.Payment) *asaas.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": payments})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &asaas.Client{
		BaseURL:          srv.URL,
		APIKey:           "chave-de-teste",
		PlatformWalletId: "wallet-plataforma",
		HTTPClient:       srv.Client(),
	}
}

func TestReconcileChargeOrfaRemovida(t *testing.T) {
	db := openTestDB(t)
	charge := seedPendingCharge(t, db, "")

	// gateway nunca criou o pagamento
	client := newFakeGateway(t, nil)
	reconcileCharge(db, client, charge)

	var count int64
	require.NoError(t, db.Model(&models.Charge{}).Where("id = ?", charge.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestReconcileChargePagaNoGateway(t *testing.T) {
	db := openTestDB(t)
	charge := seedPendingCharge(t, db, "pay_123")

	client := newFakeGateway(t, []asaas.Payment{{
		ID:     "pay_123",
		Status: asaas.PAYMENT_STATUS_RECEIVED,
		Value:  1000.00,
	}})
	reconcileCharge(db, client, charge)

	var stored models.Charge
	require.NoError(t, db.First(&stored, charge.ID).Error)
	require.Equal(t, models.CHARGE_STATUS_PAID, stored.Status)
	require.Equal(t, 1000.00, stored.ValorPago)
	require.NotNil(t, stored.DataConciliacao)

	var payment models.Payment
	require.NoError(t, db.Where("charge_id = ?", charge.ID).First(&payment).Error)
	require.Equal(t, 50.00, payment.TaxaCobrada)
}

func TestReconcileChargeBackfillDosIds(t *testing.T) {
	db := openTestDB(t)
	charge := seedPendingCharge(t, db, "")

	// o pagamento existe e segue pendente no gateway: o patch pós criação
	// falhou e os ids precisam ser preenchidos
	client := newFakeGateway(t, []asaas.Payment{{
		ID:         "pay_123",
		Status:     asaas.PAYMENT_STATUS_PENDING,
		Value:      1000.00,
		InvoiceUrl: "https://sandbox.asaas.com/i/pay_123",
		Pix:        &asaas.PixInfo{Payload: "00020126pix"},
	}})
	reconcileCharge(db, client, charge)

	var stored models.Charge
	require.NoError(t, db.First(&stored, charge.ID).Error)
	require.Equal(t, models.CHARGE_STATUS_PENDING, stored.Status)
	require.Equal(t, "pay_123", stored.AsaasPaymentId)
	require.Equal(t, "https://sandbox.asaas.com/i/pay_123", stored.LinkPagamento)
	require.Equal(t, "00020126pix", stored.PixPayload)
}

func TestReconcileChargePendenteNoGatewayComIdsNaoMexe(t *testing.T) {
	db := openTestDB(t)
	charge := seedPendingCharge(t, db, "pay_123")

	client := newFakeGateway(t, []asaas.Payment{{
		ID:     "pay_999",
		Status: asaas.PAYMENT_STATUS_PENDING,
		Value:  1000.00,
	}})
	reconcileCharge(db, client, charge)

	var stored models.Charge
	require.NoError(t, db.First(&stored, charge.ID).Error)
	require.Equal(t, models.CHARGE_STATUS_PENDING, stored.Status)
	require.Equal(t, "pay_123", stored.AsaasPaymentId)
}

func TestReconcilePendingChargesIgnoraClienteSemConfig(t *testing.T) {
	db := openTestDB(t)
	charge := seedPendingCharge(t, db, "")

	reconcilePendingCharges(db, &asaas.Client{})

	var count int64
	require.NoError(t, db.Model(&models.Charge{}).Where("id = ?", charge.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
