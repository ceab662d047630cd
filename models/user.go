package models

import (
	"time"

	"yggdrasil/tools"
)

/************************************************
/**** MARK: USER ROLES ****/
/************************************************/
const USER_ROLE_LOCADOR = "locador"
const USER_ROLE_LOCATARIO = "locatario"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

/************************************************
/**** MARK: ASAAS INTEGRATION STATUS ****/
/************************************************/
const INTEGRATION_STATUS_NONE = ""
const INTEGRATION_STATUS_ACTIVE = "ATIVA"

// User representa um usuario no sistema. O papel (locador/locatario) é
// definido no cadastro e não muda depois.
type User struct {
	ID       int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name     string `gorm:"not null" json:"name" form:"name"`
	Email    string `gorm:"not null;unique" json:"email" form:"email"`
	Password string `gorm:"not null" json:"password,omitempty" form:"password"`
	Role     string `gorm:"not null" json:"role" form:"role"`
	CpfCnpj  string `gorm:"column:cpf_cnpj;default:''" json:"cpf_cnpj" form:"cpf_cnpj"`
	Phone    string `gorm:"default:''" json:"phone" form:"phone"`
	Status   int    `gorm:"default:0" json:"status" form:"status"`

	// Lado locatário: id do cliente no Asaas (quem paga).
	AsaasCustomerId string `gorm:"column:asaas_customer_id;default:''" json:"asaas_customer_id" form:"asaas_customer_id"`

	// Lado locador: subconta Asaas habilitada para split.
	AsaasWalletId          string `gorm:"column:asaas_wallet_id;default:''" json:"asaas_wallet_id"`
	AsaasAccountId         string `gorm:"column:asaas_account_id;default:''" json:"asaas_account_id"`
	IntegracaoAsaasStatus  string `gorm:"column:integracao_asaas_status;default:''" json:"integracao_asaas_status"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	} else if user.Role == "" {
		return "role"
	}
	return ""
}

func IsValidRole(role string) bool {
	return role == USER_ROLE_LOCADOR || role == USER_ROLE_LOCATARIO
}
