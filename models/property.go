package models

import "time"

/************************************************
/**** MARK: PROPERTY RENTAL STATUS ****/
/************************************************/
const PROPERTY_STATUS_AVAILABLE = "disponivel"
const PROPERTY_STATUS_RENTED = "alugado"

// Property representa um imóvel cadastrado por um locador.
// O Token é gerado uma única vez na criação e compartilhado fora do sistema
// com o locatário, que o usa para se vincular ao imóvel.
type Property struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name         string     `gorm:"not null" json:"name" form:"name"`
	Address      string     `gorm:"not null" json:"address" form:"address"`
	Price        float64    `gorm:"not null" json:"price" form:"price"`
	Type         string     `gorm:"not null" json:"type" form:"type"` // casa, apto...
	StatusAluguel string    `gorm:"column:status_aluguel;not null;default:'disponivel'" json:"status_aluguel" form:"status_aluguel"`
	OwnerID      int64      `gorm:"not null;index" json:"owner_id"`
	Token        string     `gorm:"not null;unique_index" json:"token"`
	Photos       string     `gorm:"type:text" json:"photos" form:"photos"` // JSON array de URLs
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (p Property) MissingFields() string {
	if p.Name == "" {
		return "name"
	} else if p.Address == "" {
		return "address"
	} else if p.Price <= 0 {
		return "price"
	} else if p.Type == "" {
		return "type"
	}
	return ""
}
