package main

import (
	"log/slog"
	"os"

	"alquiler-motos/config"
	"alquiler-motos/internal/jobs"
	"alquiler-motos/internal/routes"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.DB.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Moto{},
		&models.Contrato{},
		&models.Pago{},
		&models.Factura{},
		&models.Alerta{},
		&models.Verificacion{},
		&models.PricingConfig{},
	); err != nil {
		slog.Error("Error en la migración de la base de datos", "error", err)
		os.Exit(1)
	}

	if err := config.InitGemini(); err != nil {
		slog.Error("No se pudo inicializar el asistente", "error", err)
	}
	config.InitMercadoPago()

	scheduler := jobs.IniciarScheduler(config.DB)
	defer scheduler.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Servidor iniciado", "puerto", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("El servidor terminó con error", "error", err)
		os.Exit(1)
	}
}
