package controllers

import (
	"net/http"

	dbpkg "yggdrasil/db"
	"yggdrasil/models"

	"github.com/gin-gonic/gin"
)

type BindRentalRequest struct {
	Token  string `json:"token" form:"token"`
	DueDay int    `json:"due_day" form:"due_day"`
}

// POST /api/rentals
// Locatário se vincula a um imóvel apresentando o token compartilhado pelo
// locador. Cria o aluguel e marca o imóvel como alugado.
func BindRental(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	if user.Role != models.USER_ROLE_LOCATARIO {
		RespondError(c, "apenas locatários podem se vincular a um imóvel", http.StatusForbidden)
		return
	}

	var req BindRentalRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		RespondError(c, "token é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var property models.Property
	if err := db.Where("token = ?", req.Token).First(&property).Error; err != nil {
		RespondError(c, "Imóvel não encontrado.", http.StatusNotFound)
		return
	}
	if property.StatusAluguel == models.PROPERTY_STATUS_RENTED {
		RespondError(c, "imóvel já está alugado", http.StatusBadRequest)
		return
	}

	rental := models.Rental{
		PropertyID: property.ID,
		TenantID:   user.ID,
		LandlordID: property.OwnerID,
		Amount:     property.Price,
		Status:     models.RENTAL_STATUS_ACTIVE,
	}
	if req.DueDay >= 1 && req.DueDay <= 28 {
		rental.DueDay = req.DueDay
	} else {
		rental.DueDay = 5
	}

	tx := db.Begin()
	if err := tx.Create(&rental).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Model(&models.Property{}).Where("id = ?", property.ID).
		Update("status_aluguel", models.PROPERTY_STATUS_RENTED).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"rental": rental})
}

// GET /api/rentals
// Locatário vê os próprios aluguéis; locador vê os aluguéis dos seus imóveis.
func GetRentals(c *gin.Context) {
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

	var rentals []models.Rental
	q := db.Order("id asc")
	if user.Role == models.USER_ROLE_LOCADOR {
		q = q.Where("landlord_id = ?", user.ID)
	} else {
		q = q.Where("tenant_id = ?", user.ID)
	}
	if err := q.Find(&rentals).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"rentals": rentals})
}

// POST /api/rentals/:id/close
// Encerra o aluguel e devolve o imóvel para "disponivel". Permitido para o
// locador do imóvel ou para o próprio locatário.
func CloseRental(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

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

	var rental models.Rental
	if err := db.First(&rental, id).Error; err != nil {
		RespondError(c, "aluguel não encontrado", http.StatusNotFound)
		return
	}
	if rental.TenantID != user.ID && rental.LandlordID != user.ID {
		RespondError(c, "sem acesso a este aluguel", http.StatusForbidden)
		return
	}
	if rental.Status == models.RENTAL_STATUS_CLOSED {
		RespondSuccess(c, gin.H{"rental": rental})
		return
	}

	tx := db.Begin()
	if err := tx.Model(&models.Rental{}).Where("id = ?", rental.ID).
		Update("status", models.RENTAL_STATUS_CLOSED).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Model(&models.Property{}).Where("id = ?", rental.PropertyID).
		Update("status_aluguel", models.PROPERTY_STATUS_AVAILABLE).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	rental.Status = models.RENTAL_STATUS_CLOSED
	RespondSuccess(c, gin.H{"rental": rental})
}
