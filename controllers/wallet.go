package controllers

import (
	"errors"
	"log"
	"net/http"

	"yggdrasil/asaas"
	dbpkg "yggdrasil/db"
	"yggdrasil/models"
	"yggdrasil/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type DadosBancarios struct {
	BankCode     string `json:"bank_code" form:"bank_code"`
	Agency       string `json:"agency" form:"agency"`
	Account      string `json:"account" form:"account"`
	AccountDigit string `json:"account_digit" form:"account_digit"`
}

type IntegrarLocadorRequest struct {
	LocadorID      int64          `json:"locador_id" form:"locador_id"`
	NomeCompleto   string         `json:"nome_completo" form:"nome_completo"`
	Email          string         `json:"email" form:"email"`
	CpfCnpj        string         `json:"cpf_cnpj" form:"cpf_cnpj"`
	Telefone       string         `json:"telefone" form:"telefone"`
	DadosBancarios DadosBancarios `json:"dados_bancarios" form:"dados_bancarios"`
}

// POST /api/locador/integrar
// Cria a subconta de recebimento do locador no Asaas (habilitada para
// split) e persiste o walletId retornado. Nada é persistido antes do
// gateway responder com sucesso.
func IntegrarLocador(c *gin.Context) {
	client := asaas.ClientInstance(c)
	if !client.Configured() {
		RespondError(c, "Erro de configuração da API Key do Asaas.", http.StatusInternalServerError)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var req IntegrarLocadorRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if req.LocadorID <= 0 || req.NomeCompleto == "" || req.DadosBancarios.BankCode == "" ||
		req.DadosBancarios.Agency == "" || req.DadosBancarios.Account == "" {
		RespondError(c, "Dados do Locador incompletos.", http.StatusBadRequest)
		return
	}
	if req.CpfCnpj != "" && !tools.ValidateCpfCnpj(req.CpfCnpj) {
		RespondError(c, "CPF/CNPJ inválido!", http.StatusBadRequest)
		return
	}

	var locador models.User
	if err := db.First(&locador, req.LocadorID).Error; err != nil {
		RespondError(c, "locador não encontrado", http.StatusNotFound)
		return
	}
	if locador.Role != models.USER_ROLE_LOCADOR {
		RespondError(c, "usuário não é locador", http.StatusBadRequest)
		return
	}

	telefone := ""
	if req.Telefone != "" {
		normalized, err := tools.NormalizeMobilePhone(req.Telefone)
		if err != nil {
			RespondError(c, "telefone inválido", http.StatusBadRequest)
			return
		}
		telefone = normalized
	}

	account, err := client.CreateAccount(c.Request.Context(), asaas.AccountRequest{
		Name:         req.NomeCompleto,
		Email:        req.Email,
		CpfCnpj:      req.CpfCnpj,
		MobilePhone:  telefone,
		ReceiveSplit: true,
		Bank:         req.DadosBancarios.BankCode,
		Agency:       req.DadosBancarios.Agency,
		Account:      req.DadosBancarios.Account,
		AccountDigit: req.DadosBancarios.AccountDigit,
	})
	if err != nil {
		var apiErr *asaas.APIError
		if errors.As(err, &apiErr) {
			log.Printf("locador: erro Asaas na criação da subconta: %v", apiErr)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "Falha na integração com o Asaas.",
				"errors": apiErr.Errors,
			})
			return
		}
		log.Printf("locador: erro na integração: %v", err)
		RespondError(c, "Erro interno do servidor.", http.StatusInternalServerError)
		return
	}

	// Só agora há estado para persistir: usuário e wallet na mesma transação.
	tx := db.Begin()
	if err := tx.Model(&models.User{}).Where("id = ?", locador.ID).Updates(map[string]any{
		"asaas_wallet_id":         account.WalletId,
		"asaas_account_id":        account.ID,
		"integracao_asaas_status": models.INTEGRATION_STATUS_ACTIVE,
	}).Error; err != nil {
		tx.Rollback()
		RespondError(c, "Erro interno do servidor.", http.StatusInternalServerError)
		return
	}
	if err := upsertWallet(tx, locador.ID, req.DadosBancarios, account); err != nil {
		tx.Rollback()
		RespondError(c, "Erro interno do servidor.", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, "Erro interno do servidor.", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{
		"success":         true,
		"message":         "Locador integrado com sucesso para Split.",
		"asaas_wallet_id": account.WalletId,
	})
}

func upsertWallet(db *gorm.DB, ownerID int64, dados DadosBancarios, account *asaas.Account) error {
	var wallet models.Wallet
	err := db.Where("owner_id = ?", ownerID).First(&wallet).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		return err
	}

	wallet.OwnerID = ownerID
	wallet.BankCode = dados.BankCode
	wallet.Agency = dados.Agency
	wallet.Account = dados.Account
	wallet.AccountDigit = dados.AccountDigit
	wallet.AsaasAccountId = account.ID
	wallet.AsaasWalletId = account.WalletId
	wallet.Status = models.INTEGRATION_STATUS_ACTIVE

	return db.Save(&wallet).Error
}

// GET /api/wallet
func GetWallet(c *gin.Context) {
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

	var wallet models.Wallet
	if err := db.Where("owner_id = ?", user.ID).First(&wallet).Error; err != nil {
		RespondError(c, "wallet não encontrada", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"wallet": wallet})
}
