package models

import "time"

// Wallet guarda os dados bancários do locador e os identificadores da
// subconta Asaas criada na integração. O AsaasWalletId é obrigatório para
// qualquer cobrança com split em nome desse locador.
type Wallet struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OwnerID       int64      `gorm:"not null;unique_index" json:"owner_id"`
	BankCode      string     `gorm:"not null" json:"bank_code" form:"bank_code"`
	Agency        string     `gorm:"not null" json:"agency" form:"agency"`
	Account       string     `gorm:"not null" json:"account" form:"account"`
	AccountDigit  string     `gorm:"not null" json:"account_digit" form:"account_digit"`
	AsaasAccountId string    `gorm:"column:asaas_account_id;default:''" json:"asaas_account_id"`
	AsaasWalletId  string    `gorm:"column:asaas_wallet_id;default:''" json:"asaas_wallet_id"`
	Status        string     `gorm:"default:''" json:"status"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}
