package models

import "time"

// Payment é o registro de leitura usado pelo histórico da wallet e pelos
// dashboards do locador. É alimentado pelo webhook quando uma cobrança é
// conciliada como paga.
type Payment struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	LandlordID int64      `gorm:"not null;index" json:"landlord_id"`
	ChargeID   int64      `gorm:"not null;index" json:"charge_id"`
	PropertyID int64      `gorm:"index" json:"property_id"`
	PayerName  string     `gorm:"default:''" json:"payer_name"`
	ValorPago  float64    `gorm:"column:valor_pago;not null" json:"valor_pago"`
	TaxaCobrada float64   `gorm:"column:taxa_cobrada;default:0" json:"taxa_cobrada"`
	Status     string     `gorm:"not null;default:'PAGO'" json:"status"`
	PaidAt     *time.Time `gorm:"index" json:"paid_at"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
