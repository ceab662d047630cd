package main

import (
	"log"
	"os"

	"yggdrasil/asaas"
	"yggdrasil/config"
	"yggdrasil/controllers"
	dbpkg "yggdrasil/db"
	"yggdrasil/router"
	"yggdrasil/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// =====================
// ENV esperadas
// =====================
//
// Server
// - PORT                        (ex: 8080)
// - CONFIG_PATH                 (opcional, default config.json se existir)
// - AUTOMIGRATE                 (1 para rodar automigrate no boot)
// - JWT_SECRET
//
// Asaas
// - ASAAS_URL                   (ex: https://api-sandbox.asaas.com/v3)
// - ASAAS_API_KEY
// - ASAAS_PLATFORM_WALLET_ID    (wallet da Yggdrasil para a fatia da taxa)
// - ASAAS_WEBHOOK_TOKEN         (token configurado no painel de webhooks)
//
// =====================

func main() {
	// .env é opcional; em produção as envs vêm do ambiente
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if _, err := os.Stat("config.json"); err == nil {
			configPath = "config.json"
		}
	}
	cfg := config.Get(configPath)

	dbpkg.SetConfigurations(cfg)
	controllers.SetConfigurations(cfg)

	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	client := asaas.NewClient(cfg)
	if !client.Configured() {
		log.Printf("AVISO: Asaas não configurado; cobrança e integração de locador vão responder 500")
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	r.Use(asaas.SetClientToContext(client))
	router.Initialize(r, cfg)

	workers.StartChargeReconciler(database, client)

	log.Printf("Yggdrasil listening on :%s", cfg.ApiPort)
	log.Fatal(r.Run(":" + cfg.ApiPort))
}
