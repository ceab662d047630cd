package controllers

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"yggdrasil/asaas"
	dbpkg "yggdrasil/db"
	"yggdrasil/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// POST /api/webhook/asaas
// Recebe eventos assíncronos do Asaas e concilia a cobrança referenciada.
// O externalReference round-trip do gateway é o id da cobrança local.
//
// Convenção de retorno: 200 = processado ou ignorado de propósito (o Asaas
// não reenvia), 400 = evento não identificável, 500 = falha interna (o
// Asaas reenvia depois).
func WebhookAsaas(c *gin.Context) {
	if ok, reason := verifyWebhookToken(c); !ok {
		log.Printf("[ASAAS Webhook] token rejeitado: %s", reason)
		RespondError(c, "invalid webhook token", http.StatusUnauthorized)
		return
	}

	var event asaas.WebhookEvent
	if err := c.BindJSON(&event); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}

	ref := event.Payment.ExternalReference
	if ref == "" {
		RespondError(c, "Missing external reference", http.StatusBadRequest)
		return
	}

	// Eventos que não são de pagamento confirmado só são reconhecidos,
	// sem mutação, para o Asaas não ficar reenviando.
	if !event.IsPaymentSettled() {
		RespondSuccess(c, gin.H{"message": fmt.Sprintf("Event %s received, no action taken", event.Event)})
		return
	}

	chargeID, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || chargeID <= 0 {
		RespondError(c, "invalid external reference", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var charge models.Charge
	if err := db.First(&charge, chargeID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "unknown external reference", http.StatusBadRequest)
			return
		}
		RespondError(c, "Internal Server Error during update", http.StatusInternalServerError)
		return
	}

	if err := SettleCharge(db, &charge, event.Payment); err != nil {
		log.Printf("[ASAAS Webhook] erro ao conciliar cobrança %d: %v", chargeID, err)
		RespondError(c, "Internal Server Error during update", http.StatusInternalServerError)
		return
	}

	log.Printf("[ASAAS Webhook] Cobrança %d marcada como PAGA. Valor: %.2f", chargeID, event.Payment.Value)
	RespondSuccess(c, gin.H{"message": "Conciliação processada com sucesso"})
}

// SettleCharge aplica a transição PENDENTE -> PAGO e alimenta o read model
// de pagamentos do dashboard. Reaplicar o mesmo evento é inofensivo: o
// update repete os mesmos valores e o registro de Payment é upsert por
// cobrança.
func SettleCharge(db *gorm.DB, charge *models.Charge, payment asaas.Payment) error {
	now := time.Now()
	updates := map[string]any{
		"status":           models.CHARGE_STATUS_PAID,
		"valor_pago":       payment.Value,
		"asaas_payment_id": payment.ID,
		"data_conciliacao": &now,
	}
	if err := db.Model(&models.Charge{}).Where("id = ?", charge.ID).Updates(updates).Error; err != nil {
		return err
	}

	return recordPayment(db, charge, payment.Value, now)
}

func recordPayment(db *gorm.DB, charge *models.Charge, valorPago float64, paidAt time.Time) error {
	var existing models.Payment
	err := db.Where("charge_id = ?", charge.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	record := models.Payment{
		ChargeID:  charge.ID,
		ValorPago: valorPago,
		Status:    models.CHARGE_STATUS_PAID,
		PaidAt:    &paidAt,
	}
	_, taxa := ComputeSplit(valorPago, conf.Asaas.PlatformFeePercent)
	record.TaxaCobrada, _ = taxa.Float64()

	var rental models.Rental
	if err := db.First(&rental, charge.RentalID).Error; err == nil {
		record.LandlordID = rental.LandlordID
		record.PropertyID = rental.PropertyID
	}
	var tenant models.User
	if err := db.First(&tenant, charge.TenantID).Error; err == nil {
		record.PayerName = tenant.Name
	}

	return db.Create(&record).Error
}

// verifyWebhookToken valida o header asaas-access-token contra o token
// configurado no painel do Asaas. Sem token configurado a checagem é
// pulada (útil em dev, igual à verificação opcional de assinatura que
// fazíamos antes).
func verifyWebhookToken(c *gin.Context) (bool, string) {
	expected := conf.Asaas.WebhookToken
	if expected == "" {
		return true, ""
	}

	got := c.GetHeader("asaas-access-token")
	if got == "" {
		return false, "missing asaas-access-token header"
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		return false, "token mismatch"
	}
	return true, ""
}
