package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret     string `json:"jwt_secret"`
		TokenValidHrs int    `json:"token_valid_hours"`
	} `json:"security"`

	Asaas struct {
		Url                string  `json:"url"`
		ApiKey             string  `json:"api_key"`
		PlatformWalletId   string  `json:"platform_wallet_id"`
		WebhookToken       string  `json:"webhook_token"`
		PlatformFeePercent float64 `json:"platform_fee_percent"`
	} `json:"asaas"`
}

// Get carrega a configuração a partir de um arquivo JSON (opcional) e aplica
// overrides de ambiente. Variáveis de ambiente sempre ganham do arquivo.
func Get(path string) Configuration {
	var c Configuration

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		if err := json.Unmarshal(b, &c); err != nil {
			log.Fatal(err)
		}
	}

	applyEnvOverrides(&c)

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Security.TokenValidHrs <= 0 {
		c.Security.TokenValidHrs = 24
	}
	if c.Asaas.PlatformFeePercent <= 0 {
		c.Asaas.PlatformFeePercent = 5.0
	}

	return c
}

func applyEnvOverrides(c *Configuration) {
	if v := os.Getenv("PORT"); v != "" {
		c.ApiPort = v
	}
	if v := os.Getenv("DATABASE"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.DbHost = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		c.DbPort = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.DbUser = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.DbName = v
	}
	if v := os.Getenv("DB_PASS"); v != "" {
		c.DbPass = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Security.JwtSecret = v
	}
	if v := os.Getenv("ASAAS_URL"); v != "" {
		c.Asaas.Url = v
	}
	if v := os.Getenv("ASAAS_API_KEY"); v != "" {
		c.Asaas.ApiKey = v
	}
	if v := os.Getenv("ASAAS_PLATFORM_WALLET_ID"); v != "" {
		c.Asaas.PlatformWalletId = v
	}
	if v := os.Getenv("ASAAS_WEBHOOK_TOKEN"); v != "" {
		c.Asaas.WebhookToken = v
	}
}
