package controllers

import (
	"net/http"

	dbpkg "yggdrasil/db"
	"yggdrasil/models"
	"yggdrasil/tools"

	"github.com/gin-gonic/gin"
)

// PropertyPublicView é o que um locatário enxerga ao buscar pelo token
// (sem campos privados do dono).
type PropertyPublicView struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Price         float64 `json:"price"`
	Type          string  `json:"type"`
	StatusAluguel string  `json:"status_aluguel"`
}

// POST /api/properties (locador)
func CreateProperty(c *gin.Context) {
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

	var property models.Property
	if err := c.Bind(&property); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	missing := property.MissingFields()
	if missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	if property.StatusAluguel == "" {
		property.StatusAluguel = models.PROPERTY_STATUS_AVAILABLE
	}
	property.OwnerID = user.ID
	property.Token = tools.NewPropertyToken()

	if err := db.Create(&property).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"property": property})
}

// GET /api/properties (locador)
func GetProperties(c *gin.Context) {
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

	var properties []models.Property
	if err := db.Where("owner_id = ?", user.ID).Order("id asc").Find(&properties).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"properties": properties})
}

// GET /api/properties/:id (locador)
func GetPropertyByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	property, ok := loadOwnedProperty(c, id)
	if !ok {
		return
	}

	RespondSuccess(c, gin.H{"property": property})
}

// PUT /api/properties/:id (locador)
func UpdateProperty(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Property
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	property, ok := loadOwnedProperty(c, id)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)

	if body.Name != "" {
		property.Name = body.Name
	}
	if body.Address != "" {
		property.Address = body.Address
	}
	if body.Price > 0 {
		property.Price = body.Price
	}
	if body.Type != "" {
		property.Type = body.Type
	}
	if body.StatusAluguel == models.PROPERTY_STATUS_AVAILABLE || body.StatusAluguel == models.PROPERTY_STATUS_RENTED {
		property.StatusAluguel = body.StatusAluguel
	}
	if body.Photos != "" {
		property.Photos = body.Photos
	}
	// Token nunca é rotacionado

	if err := db.Save(property).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"property": property})
}

// DELETE /api/properties/:id (locador)
func DeleteProperty(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	property, ok := loadOwnedProperty(c, id)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if err := db.Delete(property).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"deleted": true})
}

// GET /api/imoveis/token/:token
// Busca usada pelo locatário para localizar o imóvel antes do vínculo.
func GetPropertyByToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		RespondError(c, "token é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var property models.Property
	if err := db.Where("token = ?", token).First(&property).Error; err != nil {
		RespondError(c, "Imóvel não encontrado.", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"property": PropertyPublicView{
		ID:            property.ID,
		Name:          property.Name,
		Address:       property.Address,
		Price:         property.Price,
		Type:          property.Type,
		StatusAluguel: property.StatusAluguel,
	}})
}

func loadOwnedProperty(c *gin.Context, id int64) (*models.Property, bool) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return nil, false
	}

	var property models.Property
	if err := db.First(&property, id).Error; err != nil {
		RespondError(c, "imóvel não encontrado", http.StatusNotFound)
		return nil, false
	}
	if property.OwnerID != user.ID {
		RespondError(c, "imóvel não pertence ao usuário", http.StatusForbidden)
		return nil, false
	}
	return &property, true
}
