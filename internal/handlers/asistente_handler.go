package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"alquiler-motos/config"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
)

type AsistenteRequest struct {
	Mensaje string `json:"mensaje" binding:"required"`
}

// AsistenteHandler responde consultas operativas del negocio con el
// asistente de IA. El prompt fija el dominio para que no invente datos.
func AsistenteHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "El asistente no está configurado"})
		return
	}

	var req AsistenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mensaje es requerido"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Sos el asistente de una empresa de alquiler de motos en Argentina. "+
			"Respondés consultas sobre contratos de alquiler, pagos, facturación y gestión de flota. "+
			"Respondé en español, de forma breve y precisa. No inventes datos. "+
			"Si no sabés la respuesta, decilo claramente. "+
			"Consulta del usuario: %q", req.Mensaje)

	resp, err := config.GeminiClient.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		slog.Error("Error del asistente de IA", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener una respuesta del asistente"})
		return
	}

	var respuesta string
	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Content.Parts) > 0 {
		if texto, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
			respuesta = string(texto)
		}
	}
	if respuesta == "" {
		respuesta = "No pude procesar la consulta. Probá reformularla."
	}

	c.JSON(http.StatusOK, gin.H{"respuesta": respuesta})
}
