package models

import "time"

/************************************************
/**** MARK: CHARGE STATUS ****/
/************************************************/
const CHARGE_STATUS_PENDING = "PENDENTE"
const CHARGE_STATUS_PAID = "PAGO"

// Charge representa uma cobrança de aluguel (uma parcela devida pelo
// locatário). Nasce PENDENTE no endpoint de geração; só o webhook do Asaas
// (ou o sweep de conciliação) a move para PAGO. Se a criação no gateway
// falhar, o registro é deletado — não existe estado FALHOU.
type Charge struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	RentalID        int64      `gorm:"not null;index" json:"rental_id"`
	TenantID        int64      `gorm:"not null;index" json:"tenant_id"`
	LocadorWalletId string     `gorm:"column:locador_wallet_id;not null" json:"locador_wallet_id"`
	Amount          float64    `gorm:"not null" json:"amount"`
	DueDate         string     `gorm:"not null" json:"due_date"` // YYYY-MM-DD
	Status          string     `gorm:"not null;default:'PENDENTE';index" json:"status"`
	AsaasPaymentId  string     `gorm:"column:asaas_payment_id;default:'';index" json:"asaas_payment_id"`
	LinkPagamento   string     `gorm:"column:link_pagamento;default:''" json:"link_pagamento"`
	PixPayload      string     `gorm:"column:pix_payload;type:text" json:"pix_payload"`
	ValorPago       float64    `gorm:"column:valor_pago;default:0" json:"valor_pago"`
	DataConciliacao *time.Time `gorm:"column:data_conciliacao" json:"data_conciliacao"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
