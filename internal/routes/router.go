package routes

import (
	"alquiler-motos/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes inicializa todas las rutas de la aplicación.
func SetupRoutes(r *gin.Engine) {
	// Rutas públicas: autenticación, catálogo y el webhook de la pasarela
	// (que se valida por secreto compartido, no por sesión).
	RegisterAuthRoutes(r)
	RegisterPublicRoutes(r)

	// Todo lo demás exige identidad resuelta: sesión JWT o clave de
	// servicio (que solo otorga auditor).
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
