package routes

import (
	"alquiler-motos/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registra las rutas públicas de autenticación.
// No pasan por el middleware de sesión.
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", handlers.LoginHandler)
		auth.POST("/register", handlers.RegisterHandler)
		auth.GET("/logout", handlers.LogoutHandler)
	}
}
