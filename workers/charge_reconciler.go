package workers

import (
	"context"
	"log"
	"strconv"
	"time"

	"yggdrasil/asaas"
	"yggdrasil/controllers"
	"yggdrasil/models"

	"github.com/jinzhu/gorm"
)

// Idade mínima de uma cobrança PENDENTE antes do sweep olhar para ela.
// Dá tempo de sobra para o fluxo normal (webhook) chegar primeiro.
const pendingChargeMinAge = 10 * time.Minute

// StartChargeReconciler starts a loop that reconciles stale PENDENTE charges
// against the gateway. Fecha duas janelas que o fluxo normal deixa aberta:
// o delete compensatório que não rodou (cobrança local sem pagamento
// remoto) e o patch que falhou depois do gateway ter criado o pagamento.
func StartChargeReconciler(db *gorm.DB, client *asaas.Client) {
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			reconcilePendingCharges(db, client)
		}
	}()
}

func reconcilePendingCharges(db *gorm.DB, client *asaas.Client) {
	if !client.Configured() {
		return
	}

	cutoff := time.Now().Add(-pendingChargeMinAge)

	var charges []models.Charge
	if err := db.
		Where("status = ?", models.CHARGE_STATUS_PENDING).
		Where("created_at IS NOT NULL AND created_at <= ?", cutoff).
		Order("id asc").
		Limit(50).
		Find(&charges).Error; err != nil {
		log.Printf("charge reconciler: query error: %v", err)
		return
	}

	for _, charge := range charges {
		reconcileCharge(db, client, charge)
	}
}

func reconcileCharge(db *gorm.DB, client *asaas.Client, charge models.Charge) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ref := strconv.FormatInt(charge.ID, 10)
	payment, err := client.GetPaymentByExternalReference(ctx, ref)
	if err != nil {
		log.Printf("charge reconciler: asaas lookup error for %d: %v", charge.ID, err)
		return
	}

	if payment == nil {
		// O gateway nunca criou o pagamento: é o registro órfão cujo delete
		// compensatório não rodou. O guard de status evita apagar algo que
		// um webhook concorrente acabou de pagar.
		res := db.Where("id = ? AND status = ?", charge.ID, models.CHARGE_STATUS_PENDING).
			Delete(&models.Charge{})
		if res.Error != nil {
			log.Printf("charge reconciler: delete error for %d: %v", charge.ID, res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("charge reconciler: cobrança órfã %d removida (sem pagamento no gateway)", charge.ID)
		}
		return
	}

	switch payment.Status {
	case asaas.PAYMENT_STATUS_RECEIVED, asaas.PAYMENT_STATUS_CONFIRMED:
		// lock otimista: só concilia se conseguir mudar status
		res := db.Model(&models.Charge{}).
			Where("id = ? AND status = ?", charge.ID, models.CHARGE_STATUS_PENDING).
			Update("status", models.CHARGE_STATUS_PAID)
		if res.Error != nil || res.RowsAffected == 0 {
			return
		}
		if err := controllers.SettleCharge(db, &charge, *payment); err != nil {
			log.Printf("charge reconciler: settle error for %d: %v", charge.ID, err)
			return
		}
		log.Printf("charge reconciler: cobrança %d conciliada como PAGA via sweep", charge.ID)

	default:
		// Pagamento existe e segue pendente no gateway. Se o patch pós
		// criação falhou, o registro local ainda não tem os ids: back-fill.
		if charge.AsaasPaymentId != "" {
			return
		}
		pixPayload := ""
		if payment.Pix != nil {
			pixPayload = payment.Pix.Payload
		}
		err := db.Model(&models.Charge{}).
			Where("id = ? AND asaas_payment_id = ''", charge.ID).
			Updates(map[string]any{
				"asaas_payment_id": payment.ID,
				"link_pagamento":   payment.InvoiceUrl,
				"pix_payload":      pixPayload,
			}).Error
		if err != nil {
			log.Printf("charge reconciler: backfill error for %d: %v", charge.ID, err)
			return
		}
		log.Printf("charge reconciler: ids do gateway preenchidos para cobrança %d", charge.ID)
	}
}
