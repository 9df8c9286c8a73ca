package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"alquiler-motos/config"
	"alquiler-motos/internal/afip"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListFacturasHandler(c *gin.Context) {
	var facturas []models.Factura
	if err := config.DB.
		Preload("Contrato.Cliente").Preload("Contrato.Moto").Preload("Pago").
		Order("emitida_at DESC").Find(&facturas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de facturas"})
		return
	}

	if facturas == nil {
		facturas = make([]models.Factura, 0)
	}
	c.JSON(http.StatusOK, facturas)
}

// AfipFacturaHandler timbra la factura: pide el CAE, lo guarda y deja la
// alerta fiscal. Re-timbrar una factura ya enviada devuelve 409.
func AfipFacturaHandler(c *gin.Context) {
	var factura models.Factura
	if err := config.DB.First(&factura, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Factura no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando la factura"})
		return
	}

	if factura.AfipEstado == models.AfipEnviado {
		c.JSON(http.StatusConflict, gin.H{"error": "La factura ya fue enviada a AFIP"})
		return
	}

	cliente := afip.NewClient(config.AfipCUIT)
	resultado, err := cliente.SolicitarCAE(factura.Numero, factura.Monto)
	if err != nil {
		slog.Error("Falló la solicitud de CAE", "factura_id", factura.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error procesando AFIP"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		factura.AfipEstado = models.AfipEnviado
		factura.CAE = resultado.CAE
		factura.CAEVencimiento = &resultado.Vencimiento
		if err := tx.Save(&factura).Error; err != nil {
			return err
		}

		pagoID := factura.PagoID
		return tx.Create(&models.Alerta{
			Tipo:    models.AlertaFacturaAfip,
			Mensaje: fmt.Sprintf("Factura %s enviada a AFIP. CAE: %s", factura.Numero, resultado.CAE),
			PagoID:  &pagoID,
		}).Error
	})

	if err != nil {
		slog.Error("No se pudo guardar el resultado de AFIP", "factura_id", factura.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error procesando AFIP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"afipEstado":     factura.AfipEstado,
		"cae":            factura.CAE,
		"caeVencimiento": factura.CAEVencimiento,
	})
}
