package models

import "time"

/************************************************
/**** MARK: RENTAL STATUS ****/
/************************************************/
const RENTAL_STATUS_ACTIVE = "ativo"
const RENTAL_STATUS_CLOSED = "encerrado"

// Rental representa o vínculo de um locatário com um imóvel.
// É criado quando o locatário apresenta o token do imóvel.
type Rental struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	PropertyID int64      `gorm:"not null;index" json:"property_id"`
	TenantID   int64      `gorm:"not null;index" json:"tenant_id"`
	LandlordID int64      `gorm:"not null;index" json:"landlord_id"`
	Amount     float64    `gorm:"not null" json:"amount"` // valor mensal, copiado do imóvel no vínculo
	DueDay     int        `gorm:"default:5" json:"due_day" form:"due_day"`
	Status     string     `gorm:"not null;default:'ativo';index" json:"status"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
