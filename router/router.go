package router

import (
	"log"

	"yggdrasil/config"
	"yggdrasil/controllers"
	"yggdrasil/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// Public routes + authenticated routes + "validated" routes (Authorizer) +
// landlord-only routes (Locador).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Webhook (Asaas) - autenticado pelo token do próprio webhook, não por JWT
	api.POST("/webhook/asaas", Logger(), controllers.WebhookAsaas)

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	validated.GET("/me", Logger(), controllers.Me)
	validated.PUT("/user", Logger(), controllers.UpdateCurrentUser)

	// Imóveis: busca por token é aberta a qualquer usuário ativo (locatário
	// usa antes do vínculo). Fora de /properties para não conflitar com o
	// wildcard :id do CRUD.
	validated.GET("/imoveis/token/:token", Logger(), controllers.GetPropertyByToken)

	// Aluguéis
	validated.POST("/rentals", Logger(), controllers.BindRental)
	validated.GET("/rentals", Logger(), controllers.GetRentals)
	validated.POST("/rentals/:id/close", Logger(), controllers.CloseRental)

	// Cobranças
	validated.POST("/cobrancas/gerar", Logger(), controllers.GerarCobranca)
	validated.GET("/cobrancas", Logger(), controllers.GetCharges)

	// Rotas exclusivas de locador
	locador := validated.Group("")
	locador.Use(Locador())

	// Imóveis CRUD (locador)
	locador.GET("/properties", Logger(), controllers.GetProperties)
	locador.GET("/properties/:id", Logger(), controllers.GetPropertyByID)
	locador.POST("/properties", Logger(), controllers.CreateProperty)
	locador.PUT("/properties/:id", Logger(), controllers.UpdateProperty)
	locador.DELETE("/properties/:id", Logger(), controllers.DeleteProperty)

	// Integração Asaas / wallet (locador)
	locador.POST("/locador/integrar", Logger(), controllers.IntegrarLocador)
	locador.GET("/wallet", Logger(), controllers.GetWallet)
	locador.GET("/wallet/payments", Logger(), controllers.GetWalletPayments)

	// Dashboard (locador)
	locador.GET("/dashboard/summary", Logger(), controllers.GetDashboardSummary)
	locador.GET("/dashboard/monthly", Logger(), controllers.GetDashboardMonthly)

	log.Printf("Routes initialized")
}
