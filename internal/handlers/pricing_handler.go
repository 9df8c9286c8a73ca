package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"alquiler-motos/config"
	"alquiler-motos/internal/pricing"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cachePricingKey = "pricing:config"

// PricingInput refleja el formato histórico de la pantalla de precios:
// los tramos de duración van anidados.
type PricingInput struct {
	PrecioBaseMensual float64 `json:"precioBaseMensual"`
	DescuentoSemanal  float64 `json:"descuentoSemanal"`
	Duraciones        struct {
		Meses3  float64 `json:"meses3"`
		Meses6  float64 `json:"meses6"`
		Meses9  float64 `json:"meses9"`
		Meses12 float64 `json:"meses12"`
	} `json:"duraciones"`
	FormulaTotal string `json:"formulaTotal"`
}

type CotizarRequest struct {
	DuracionMeses int    `json:"duracionMeses" binding:"required"`
	TipoPago      string `json:"tipoPago" binding:"required"`
}

// ObtenerPricingConfig devuelve la fila única de configuración, creándola
// con los valores por defecto la primera vez. Pasa por el caché de Redis;
// GuardarPricing lo invalida.
func ObtenerPricingConfig(db *gorm.DB) (models.PricingConfig, error) {
	if config.RDB != nil {
		cached, err := config.RDB.Get(config.Ctx, cachePricingKey).Result()
		if err == nil {
			var cfg models.PricingConfig
			if json.Unmarshal([]byte(cached), &cfg) == nil {
				return cfg, nil
			}
		} else if err != redis.Nil {
			slog.Error("Falló el GET del caché de pricing", "error", err)
		}
	}

	var cfg models.PricingConfig
	err := db.First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		cfg = models.PricingPorDefecto()
		if err := db.Create(&cfg).Error; err != nil {
			return models.PricingConfig{}, err
		}
	} else if err != nil {
		return models.PricingConfig{}, err
	}

	if config.RDB != nil {
		if jsonData, err := json.Marshal(cfg); err == nil {
			config.RDB.Set(config.Ctx, cachePricingKey, jsonData, 0)
		}
	}

	return cfg, nil
}

func aConfigDePrecios(cfg models.PricingConfig) pricing.Config {
	return pricing.Config{
		PrecioBaseMensual: cfg.PrecioBaseMensual,
		DescuentoSemanal:  cfg.DescuentoSemanal,
		DescuentoMeses3:   cfg.DescuentoMeses3,
		DescuentoMeses6:   cfg.DescuentoMeses6,
		DescuentoMeses9:   cfg.DescuentoMeses9,
		DescuentoMeses12:  cfg.DescuentoMeses12,
		FormulaTotal:      cfg.FormulaTotal,
	}
}

func respuestaPricing(cfg models.PricingConfig) gin.H {
	return gin.H{
		"precioBaseMensual": cfg.PrecioBaseMensual,
		"descuentoSemanal":  cfg.DescuentoSemanal,
		"duraciones": gin.H{
			"meses3":  cfg.DescuentoMeses3,
			"meses6":  cfg.DescuentoMeses6,
			"meses9":  cfg.DescuentoMeses9,
			"meses12": cfg.DescuentoMeses12,
		},
		"formulaTotal": cfg.FormulaTotal,
	}
}

func GetPricingHandler(c *gin.Context) {
	cfg, err := ObtenerPricingConfig(config.DB)
	if err != nil {
		slog.Error("No se pudo obtener la configuración de precios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, respuestaPricing(cfg))
}

// GetPricingPublicHandler expone la configuración vigente sin sesión,
// para la pantalla pública de cotización.
func GetPricingPublicHandler(c *gin.Context) {
	GetPricingHandler(c)
}

// GuardarPricingHandler actualiza la fila única y tira el caché.
func GuardarPricingHandler(c *gin.Context) {
	var input PricingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	if input.PrecioBaseMensual <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El precio base debe ser positivo"})
		return
	}

	var cfg models.PricingConfig
	err := config.DB.First(&cfg).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	cfg.PrecioBaseMensual = input.PrecioBaseMensual
	cfg.DescuentoSemanal = input.DescuentoSemanal
	cfg.DescuentoMeses3 = input.Duraciones.Meses3
	cfg.DescuentoMeses6 = input.Duraciones.Meses6
	cfg.DescuentoMeses9 = input.Duraciones.Meses9
	cfg.DescuentoMeses12 = input.Duraciones.Meses12
	cfg.FormulaTotal = input.FormulaTotal

	if err := config.DB.Save(&cfg).Error; err != nil {
		slog.Error("No se pudo guardar la configuración de precios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando configuración"})
		return
	}

	if config.RDB != nil {
		if err := config.RDB.Del(config.Ctx, cachePricingKey).Err(); err != nil {
			slog.Error("No se pudo invalidar el caché de pricing", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CotizarHandler calcula una cotización con la configuración vigente.
func CotizarHandler(c *gin.Context) {
	var req CotizarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duración y tipo de pago son requeridos"})
		return
	}

	cfg, err := ObtenerPricingConfig(config.DB)
	if err != nil {
		slog.Error("No se pudo obtener la configuración de precios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	cotizacion, err := pricing.Cotizar(aConfigDePrecios(cfg), req.DuracionMeses, req.TipoPago)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cotizacion)
}
