package controllers

import (
	"net/http"

	dbpkg "yggdrasil/db"
	"yggdrasil/models"
	"yggdrasil/tools"

	"github.com/gin-gonic/gin"
)

func CheckUserExists(c *gin.Context, email string) (bool, *models.User) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return false, nil
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return false, nil
	}
	return true, &user
}

// POST /api/users
// Cria o usuário com papel fixo (locador ou locatario).
func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	missing := user.MissingFields()
	if missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "E-mail inválido!", http.StatusBadRequest)
		return
	}
	if !models.IsValidRole(user.Role) {
		RespondError(c, "role deve ser locador ou locatario", http.StatusBadRequest)
		return
	}
	if user.CpfCnpj != "" && !tools.ValidateCpfCnpj(user.CpfCnpj) {
		RespondError(c, "CPF/CNPJ inválido!", http.StatusBadRequest)
		return
	}

	exists, _ := CheckUserExists(c, user.Email)
	if exists {
		RespondError(c, "Usuário já existe", http.StatusBadRequest)
		return
	}

	hash, err := tools.HashPassword(user.Password)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	user.Password = hash
	user.Status = models.USER_STATUS_AVAILABLE

	// integração/ids do gateway nunca vêm do cadastro
	user.AsaasWalletId = ""
	user.AsaasAccountId = ""
	user.IntegracaoAsaasStatus = models.INTEGRATION_STATUS_NONE

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, user)
}
