package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type CrearPreferenciaRequest struct {
	PagoID uint `json:"pagoId" binding:"required"`
}

// CrearPreferenciaHandler crea una preferencia de pago en MercadoPago para
// un pago pendiente. La referencia externa es la Referencia del pago, que
// es lo que el webhook usa para encontrarlo después.
func CrearPreferenciaHandler(c *gin.Context) {
	if config.MPPreference == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "La pasarela de pagos no está configurada"})
		return
	}

	var req CrearPreferenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pagoId es requerido"})
		return
	}

	var pago models.Pago
	if err := config.DB.First(&pago, req.PagoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pago no encontrado"})
		return
	}
	if pago.Estado == models.PagoPagado {
		c.JSON(http.StatusConflict, gin.H{"error": "El pago ya está confirmado"})
		return
	}

	baseURL := os.Getenv("APP_BASE_URL")
	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     "Alquiler de moto",
				Quantity:  1,
				UnitPrice: pago.Monto,
			},
		},
		ExternalReference: pago.Referencia,
		BackURLs: &preference.BackURLsRequest{
			Success: baseURL + "/pagos",
			Failure: baseURL + "/pagos",
		},
		AutoReturn: "approved",
	}

	resultado, err := config.MPPreference.Create(c.Request.Context(), request)
	if err != nil {
		slog.Error("No se pudo crear la preferencia de MercadoPago", "pago_id", pago.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la preferencia de pago"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": resultado.ID, "url": resultado.InitPoint})
}

type notificacionMP struct {
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
	CollectionStatus  string `json:"collection_status"`
	Data              struct {
		ExternalReference string `json:"external_reference"`
		Status            string `json:"status"`
	} `json:"data"`
}

// WebhookMPHandler procesa las notificaciones de MercadoPago. Solo los
// estados "approved" confirman el pago; todo lo demás se responde con ok
// para que la pasarela no reintente.
func WebhookMPHandler(c *gin.Context) {
	if config.MPWebhookSecret != "" && c.GetHeader("x-webhook-secret") != config.MPWebhookSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
		return
	}

	var notificacion notificacionMP
	if err := c.ShouldBindJSON(&notificacion); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notificación inválida"})
		return
	}

	referencia := notificacion.Data.ExternalReference
	if referencia == "" {
		referencia = notificacion.ExternalReference
	}
	estado := notificacion.Data.Status
	if estado == "" {
		estado = notificacion.CollectionStatus
	}
	if estado == "" {
		estado = notificacion.Status
	}

	if referencia == "" || !strings.EqualFold(estado, "approved") {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	var pago models.Pago
	if err := config.DB.Where("referencia = ?", referencia).First(&pago).Error; err != nil {
		slog.Warn("Webhook de MercadoPago con referencia desconocida", "referencia", referencia)
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if _, err := confirmarPago(config.DB, pago.ID, "mercadopago"); err != nil {
		var conflicto errConflicto
		if errors.As(err, &conflicto) {
			// Ya estaba pagado: la notificación es un reintento.
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		slog.Error("No se pudo confirmar el pago desde el webhook", "pago_id", pago.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la notificación"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
