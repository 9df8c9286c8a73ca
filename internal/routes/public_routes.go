package routes

import (
	"alquiler-motos/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registra el catálogo público y el webhook de
// MercadoPago. El webhook se autentica por x-webhook-secret dentro del
// propio handler.
func RegisterPublicRoutes(r *gin.Engine) {
	public := r.Group("/api/public")
	{
		public.GET("/motos", handlers.ListMotosPublicHandler)
		public.GET("/pricing", handlers.GetPricingPublicHandler)
	}

	r.POST("/api/mp/webhook", handlers.WebhookMPHandler)
}
