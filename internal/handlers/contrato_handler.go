package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"alquiler-motos/config"
	"alquiler-motos/internal/pricing"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContratoInput struct {
	ClienteID     uint   `json:"clienteId" binding:"required"`
	MotoID        uint   `json:"motoId" binding:"required"`
	FechaInicio   string `json:"fechaInicio" binding:"required"`
	DuracionMeses int    `json:"duracionMeses" binding:"required"`
	TipoPago      string `json:"tipoPago" binding:"required"`
	Estado        string `json:"estado"`
}

type ContratoUpdateInput struct {
	FechaFin string `json:"fechaFin"`
	Estado   string `json:"estado"`
}

func estadoContratoValido(estado string) bool {
	switch estado {
	case models.ContratoPendiente, models.ContratoActivo,
		models.ContratoVencido, models.ContratoFinalizado:
		return true
	}
	return false
}

func ListContratosHandler(c *gin.Context) {
	var contratos []models.Contrato

	query := config.DB.Model(&models.Contrato{}).
		Preload("Cliente").Preload("Moto").
		Order("created_at DESC")

	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Find(&contratos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de contratos"})
		return
	}

	if contratos == nil {
		contratos = make([]models.Contrato, 0)
	}
	c.JSON(http.StatusOK, contratos)
}

func GetContratoHandler(c *gin.Context) {
	var contrato models.Contrato
	if err := config.DB.Preload("Cliente").Preload("Moto").Preload("Pagos").
		First(&contrato, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando el contrato"})
		return
	}
	c.JSON(http.StatusOK, contrato)
}

// CreateContratoHandler crea el contrato con su plan de precios. Rechaza
// con 409 la moto que ya tiene otro contrato activo o pendiente que se
// superponga con el rango pedido.
func CreateContratoHandler(c *gin.Context) {
	var input ContratoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos los campos son requeridos"})
		return
	}

	fechaInicio, err := time.Parse("2006-01-02", input.FechaInicio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de fecha inválido. Use YYYY-MM-DD."})
		return
	}
	fechaFin := fechaInicio.AddDate(0, input.DuracionMeses, 0)

	estado := input.Estado
	if estado == "" {
		estado = models.ContratoPendiente
	}
	if !estadoContratoValido(estado) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado de contrato inválido"})
		return
	}

	cfg, err := ObtenerPricingConfig(config.DB)
	if err != nil {
		slog.Error("No se pudo obtener la configuración de precios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	cotizacion, err := pricing.Cotizar(aConfigDePrecios(cfg), input.DuracionMeses, input.TipoPago)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contrato models.Contrato
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var cliente models.Cliente
		if err := tx.First(&cliente, input.ClienteID).Error; err != nil {
			return errNoEncontrado{"Cliente no encontrado"}
		}

		var moto models.Moto
		if err := tx.First(&moto, input.MotoID).Error; err != nil {
			return errNoEncontrado{"Moto no encontrada"}
		}
		if moto.Estado == models.MotoMantenimiento {
			return errConflicto{"La moto está en mantenimiento"}
		}

		// Chequeo de superposición: misma moto, contrato vigente cuyo
		// rango pisa al pedido.
		var superpuestos int64
		if err := tx.Model(&models.Contrato{}).
			Where("moto_id = ? AND estado IN ? AND fecha_inicio < ? AND fecha_fin > ?",
				input.MotoID,
				[]string{models.ContratoPendiente, models.ContratoActivo},
				fechaFin, fechaInicio).
			Count(&superpuestos).Error; err != nil {
			return err
		}
		if superpuestos > 0 {
			return errConflicto{"La moto ya tiene un contrato vigente en ese rango de fechas"}
		}

		contrato = models.Contrato{
			ClienteID:         input.ClienteID,
			MotoID:            input.MotoID,
			FechaInicio:       fechaInicio,
			FechaFin:          fechaFin,
			TipoPago:          input.TipoPago,
			DuracionMeses:     input.DuracionMeses,
			PrecioMensual:     cotizacion.PrecioMensual,
			PrecioSemanal:     cotizacion.PrecioSemanal,
			PrecioTotal:       cotizacion.PrecioTotal,
			DescuentoDuracion: cotizacion.DescuentoDuracion,
			DescuentoSemanal:  cotizacion.DescuentoSemanal,
			Estado:            estado,
		}
		if err := tx.Create(&contrato).Error; err != nil {
			return err
		}

		if estado == models.ContratoActivo {
			if err := tx.Model(&moto).Update("estado", models.MotoAlquilada).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		responderErrorDeNegocio(c, err, "No se pudo crear el contrato")
		return
	}

	config.DB.Preload("Cliente").Preload("Moto").First(&contrato, contrato.ID)
	c.JSON(http.StatusCreated, contrato)
}

// UpdateContratoHandler cambia fecha de fin o estado. Al finalizar o
// vencer un contrato la moto vuelve a estar disponible.
func UpdateContratoHandler(c *gin.Context) {
	var contrato models.Contrato
	if err := config.DB.First(&contrato, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando el contrato"})
		return
	}

	var input ContratoUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	if input.Estado != "" && !estadoContratoValido(input.Estado) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado de contrato inválido"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if input.FechaFin != "" {
			fechaFin, err := time.Parse("2006-01-02", input.FechaFin)
			if err != nil {
				return errValidacion{"Formato de fecha inválido. Use YYYY-MM-DD."}
			}
			contrato.FechaFin = fechaFin
		}

		if input.Estado != "" && input.Estado != contrato.Estado {
			contrato.Estado = input.Estado

			estadoMoto := models.MotoAlquilada
			if input.Estado == models.ContratoFinalizado || input.Estado == models.ContratoVencido {
				estadoMoto = models.MotoDisponible
			}
			if err := tx.Model(&models.Moto{}).
				Where("id = ?", contrato.MotoID).
				Update("estado", estadoMoto).Error; err != nil {
				return err
			}
		}

		return tx.Save(&contrato).Error
	})

	if err != nil {
		responderErrorDeNegocio(c, err, "No se pudo actualizar el contrato")
		return
	}

	config.DB.Preload("Cliente").Preload("Moto").First(&contrato, contrato.ID)
	c.JSON(http.StatusOK, contrato)
}

func DeleteContratoHandler(c *gin.Context) {
	resultado := config.DB.Delete(&models.Contrato{}, c.Param("id"))
	if resultado.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el contrato"})
		return
	}
	if resultado.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
