package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"yggdrasil/asaas"
	dbpkg "yggdrasil/db"
	"yggdrasil/models"
	"yggdrasil/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type GerarCobrancaRequest struct {
	AluguelID       int64   `json:"aluguel_id" form:"aluguel_id"`
	LocatarioID     int64   `json:"locatario_id" form:"locatario_id"`
	LocadorWalletId string  `json:"locador_wallet_id" form:"locador_wallet_id"`
	Valor           float64 `json:"valor" form:"valor"`
	Vencimento      string  `json:"vencimento" form:"vencimento"` // YYYY-MM-DD
	AsaasCustomerId string  `json:"asaas_customer_id" form:"asaas_customer_id"`
}

type GerarCobrancaResponse struct {
	Success       bool   `json:"success"`
	CobrancaID    int64  `json:"cobranca_id"`
	LinkPagamento string `json:"link_pagamento"`
	PixPayload    string `json:"pix_payload"`
}

// ComputeSplit calcula as duas fatias do split: a taxa da plataforma e o
// restante do locador. Cada fatia é arredondada para duas casas de forma
// independente, então a soma pode divergir do total por um centavo.
func ComputeSplit(valor float64, feePercent float64) (locador, plataforma decimal.Decimal) {
	total := decimal.NewFromFloat(valor)
	rate := decimal.NewFromFloat(feePercent).Div(decimal.NewFromInt(100))
	plataforma = total.Mul(rate).Round(2)
	locador = total.Mul(decimal.NewFromInt(1).Sub(rate)).Round(2)
	return locador, plataforma
}

// POST /api/cobrancas/gerar
// Gera uma cobrança de aluguel no Asaas com split plataforma/locador.
// Sequência: cria o registro PENDENTE, chama o gateway usando o id do
// registro como externalReference e então grava os identificadores
// retornados. Em qualquer falha o registro recém-criado é removido.
func GerarCobranca(c *gin.Context) {
	client := asaas.ClientInstance(c)
	if !client.Configured() || client.PlatformWalletId == "" {
		RespondError(c, "Erro de configuração da API Keys ou Wallet ID.", http.StatusInternalServerError)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var req GerarCobrancaRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if req.AluguelID <= 0 || req.LocatarioID <= 0 || req.LocadorWalletId == "" ||
		req.Valor <= 0 || req.Vencimento == "" || req.AsaasCustomerId == "" {
		RespondError(c, "Dados de cobrança incompletos.", http.StatusBadRequest)
		return
	}
	if !tools.ValidateDueDate(req.Vencimento) {
		RespondError(c, "vencimento deve estar no formato YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	// 1. Registro PENDENTE: o id gerado vira a chave de conciliação.
	charge := models.Charge{
		RentalID:        req.AluguelID,
		TenantID:        req.LocatarioID,
		LocadorWalletId: req.LocadorWalletId,
		Amount:          req.Valor,
		DueDate:         req.Vencimento,
		Status:          models.CHARGE_STATUS_PENDING,
	}
	if err := db.Create(&charge).Error; err != nil {
		RespondError(c, "Erro interno do servidor.", http.StatusInternalServerError)
		return
	}

	// 2. Split: taxa fixa da plataforma, restante para o locador.
	valorLocador, valorYggdrasil := ComputeSplit(req.Valor, conf.Asaas.PlatformFeePercent)

	// 3. Chamada ao gateway com o id do registro como externalReference.
	payment, err := client.CreatePayment(c.Request.Context(), asaas.PaymentRequest{
		Customer:          req.AsaasCustomerId,
		BillingType:       "PIX",
		Value:             req.Valor,
		DueDate:           req.Vencimento,
		ExternalReference: strconv.FormatInt(charge.ID, 10),
		Description:       fmt.Sprintf("Aluguel Ref: %d", req.AluguelID),
		Split: []asaas.SplitItem{
			{WalletId: req.LocadorWalletId, Value: valorLocador.StringFixed(2)},
			{WalletId: client.PlatformWalletId, Value: valorYggdrasil.StringFixed(2)},
		},
	})
	if err != nil {
		deleteChargeBestEffort(db, charge.ID)
		var apiErr *asaas.APIError
		if errors.As(err, &apiErr) {
			log.Printf("cobranca: erro Asaas na geração: %v", apiErr)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "Falha ao gerar cobrança no PSP.",
				"errors": apiErr.Errors,
			})
			return
		}
		log.Printf("cobranca: erro na geração: %v", err)
		RespondError(c, "Erro interno do servidor.", http.StatusInternalServerError)
		return
	}

	// 4. Grava os dados de retorno do gateway no registro.
	pixPayload := ""
	if payment.Pix != nil {
		pixPayload = payment.Pix.Payload
	}
	updates := map[string]any{
		"asaas_payment_id": payment.ID,
		"link_pagamento":   payment.InvoiceUrl,
		"pix_payload":      pixPayload,
	}
	if err := db.Model(&models.Charge{}).Where("id = ?", charge.ID).Updates(updates).Error; err != nil {
		deleteChargeBestEffort(db, charge.ID)
		log.Printf("cobranca: erro ao gravar retorno do gateway: %v", err)
		RespondError(c, "Erro interno do servidor.", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, GerarCobrancaResponse{
		Success:       true,
		CobrancaID:    charge.ID,
		LinkPagamento: payment.InvoiceUrl,
		PixPayload:    pixPayload,
	})
}

// deleteChargeBestEffort remove o registro PENDENTE após falha. O delete em
// si pode falhar silenciosamente, só logamos.
func deleteChargeBestEffort(db *gorm.DB, id int64) {
	if err := db.Where("id = ?", id).Delete(&models.Charge{}).Error; err != nil {
		log.Printf("cobranca: erro ao deletar registro pendente %d: %v", id, err)
	}
}

// GET /api/cobrancas
// Locatário vê as próprias cobranças; locador vê as cobranças dos seus
// aluguéis.
func GetCharges(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var charges []models.Charge
	q := db.Model(&models.Charge{})
	if user.Role == models.USER_ROLE_LOCADOR {
		q = q.Joins("JOIN rentals ON rentals.id = charges.rental_id").
			Where("rentals.landlord_id = ?", user.ID)
	} else {
		q = q.Where("charges.tenant_id = ?", user.ID)
	}
	if err := q.Order("charges.id desc").Find(&charges).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"charges": charges})
}
