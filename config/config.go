package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

var (
	JwtKey          []byte
	ServiceAPIKey   string
	MPWebhookSecret string
	VerifikAPIKey   string
	VerifikSecret   string
	VerifikEnabled  bool
	AfipCUIT        string
)

// LoadEnv carga las variables de entorno desde .env (si existe) y valida
// las obligatorias. JWT_SECRET no tiene valor por defecto a propósito.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No se encontró archivo .env, se usan las variables del entorno.")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Error crítico: la variable de entorno JWT_SECRET no está definida.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)

	ServiceAPIKey = os.Getenv("SERVICE_API_KEY")
	MPWebhookSecret = os.Getenv("MP_WEBHOOK_SECRET")
	VerifikAPIKey = os.Getenv("VERIFIK_API_KEY")
	VerifikSecret = os.Getenv("VERIFIK_SECRET")
	VerifikEnabled = VerifikAPIKey != ""
	AfipCUIT = os.Getenv("AFIP_CUIT")
}
