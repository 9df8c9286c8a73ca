package config

import (
	"log/slog"
	"os"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MPPreference es el cliente de preferencias de MercadoPago. Queda en nil
// cuando falta el access token; los endpoints de pasarela responden 503.
var MPPreference preference.Client

func InitMercadoPago() {
	accessToken := os.Getenv("MP_ACCESS_TOKEN")
	if accessToken == "" {
		slog.Warn("MP_ACCESS_TOKEN no está definida, la pasarela de pagos queda deshabilitada.")
		return
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		slog.Error("No se pudo inicializar MercadoPago", "error", err)
		return
	}

	MPPreference = preference.NewClient(cfg)
	slog.Info("Cliente de MercadoPago inicializado")
}
