package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type PagoInput struct {
	ContratoID  uint    `json:"contratoId" binding:"required"`
	Monto       float64 `json:"monto" binding:"required"`
	Metodo      string  `json:"metodo" binding:"required"`
	Referencia  string  `json:"referencia"`
	Vencimiento string  `json:"vencimiento"`
}

type ConfirmarPagoRequest struct {
	PagoID uint   `json:"pagoId" binding:"required"`
	Metodo string `json:"metodo"`
}

func ListPagosHandler(c *gin.Context) {
	var pagos []models.Pago

	query := config.DB.Model(&models.Pago{}).
		Preload("Contrato").
		Order("created_at DESC")

	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Find(&pagos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de pagos"})
		return
	}

	if pagos == nil {
		pagos = make([]models.Pago, 0)
	}
	c.JSON(http.StatusOK, pagos)
}

func CreatePagoHandler(c *gin.Context) {
	var input PagoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan datos obligatorios"})
		return
	}

	if input.Monto <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El monto debe ser positivo"})
		return
	}

	var contrato models.Contrato
	if err := config.DB.First(&contrato, input.ContratoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando el contrato"})
		return
	}

	referencia := input.Referencia
	if referencia == "" {
		referencia = uuid.NewString()
	}

	pago := models.Pago{
		ContratoID: input.ContratoID,
		Monto:      input.Monto,
		Metodo:     input.Metodo,
		Estado:     models.PagoPendiente,
		Referencia: referencia,
	}

	if input.Vencimiento != "" {
		vencimiento, err := time.Parse("2006-01-02", input.Vencimiento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de vencimiento inválido. Use YYYY-MM-DD."})
			return
		}
		pago.VencimientoAt = &vencimiento
	}

	if err := config.DB.Create(&pago).Error; err != nil {
		slog.Error("No se pudo crear el pago", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el pago"})
		return
	}

	c.JSON(http.StatusCreated, pago)
}

// ConfirmarPagoHandler pasa un pago pendiente o vencido a pagado y activa
// el contrato. Un pago ya pagado devuelve 409: idempotente en efecto, no
// en resultado.
func ConfirmarPagoHandler(c *gin.Context) {
	var req ConfirmarPagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pago requerido"})
		return
	}

	pago, err := confirmarPago(config.DB, req.PagoID, req.Metodo)
	if err != nil {
		responderErrorDeNegocio(c, err, "No se pudo confirmar el pago")
		return
	}

	c.JSON(http.StatusOK, pago)
}

// MarcarPagadoHandler es la variante administrativa por parámetro de ruta.
func MarcarPagadoHandler(c *gin.Context) {
	var pago models.Pago
	if err := config.DB.First(&pago, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "El pago no existe"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando el pago"})
		return
	}

	actualizado, err := confirmarPago(config.DB, pago.ID, "")
	if err != nil {
		responderErrorDeNegocio(c, err, "No se pudo marcar el pago")
		return
	}

	c.JSON(http.StatusOK, actualizado)
}

// confirmarPago es la transición compartida por el endpoint, la variante
// administrativa y el webhook de la pasarela: pago a pagado con fecha y
// contrato a activo, todo o nada.
func confirmarPago(db *gorm.DB, pagoID uint, metodo string) (models.Pago, error) {
	var pago models.Pago

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pago, pagoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoEncontrado{"Pago no encontrado"}
			}
			return err
		}

		if pago.Estado == models.PagoPagado {
			return errConflicto{"El pago ya está confirmado"}
		}

		ahora := time.Now()
		pago.Estado = models.PagoPagado
		pago.PagadoAt = &ahora
		if metodo != "" {
			pago.Metodo = metodo
		}

		if err := tx.Save(&pago).Error; err != nil {
			return err
		}

		return tx.Model(&models.Contrato{}).
			Where("id = ?", pago.ContratoID).
			Update("estado", models.ContratoActivo).Error
	})

	return pago, err
}

// ExportPagosHandler arma el reporte XLSX de pagos con cliente y moto.
func ExportPagosHandler(c *gin.Context) {
	var pagos []models.Pago
	if err := config.DB.Preload("Contrato.Cliente").Preload("Contrato.Moto").
		Order("created_at DESC").Find(&pagos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de pagos"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Pagos"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Fecha", "Cliente", "Moto", "Monto", "Método", "Estado", "Referencia"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, p := range pagos {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.CreatedAt.Format("2006-01-02"))
		if p.Contrato != nil && p.Contrato.Cliente != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.Contrato.Cliente.Nombre)
		}
		if p.Contrato != nil && p.Contrato.Moto != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row),
				p.Contrato.Moto.Marca+" "+p.Contrato.Moto.Modelo)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Monto)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Metodo)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Estado)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.Referencia)
	}

	fileName := fmt.Sprintf("pagos_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo escribir el archivo"})
	}
}
