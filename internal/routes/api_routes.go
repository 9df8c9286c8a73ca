package routes

import (
	"alquiler-motos/internal/handlers"
	"alquiler-motos/internal/middleware"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registra las rutas protegidas. Las lecturas admiten
// auditor (y por lo tanto la clave de servicio); las escrituras quedan
// para admin y operador. La administración de usuarios es solo admin.
func RegisterAPIRoutes(rg *gin.RouterGroup) {
	lectura := middleware.RequireRol(models.RolAdmin, models.RolOperador, models.RolAuditor)
	escritura := middleware.RequireRol(models.RolAdmin, models.RolOperador)
	soloAdmin := middleware.RequireRol(models.RolAdmin)
	cualquiera := middleware.RequireRol(models.RolAdmin, models.RolOperador, models.RolAuditor, models.RolCliente)

	api := rg.Group("/api")
	{
		// Clientes
		api.GET("/clientes", lectura, handlers.ListClientesHandler)
		api.GET("/clientes/:id", lectura, handlers.GetClienteHandler)
		api.POST("/clientes", escritura, handlers.CreateClienteHandler)
		api.PUT("/clientes/:id", escritura, handlers.UpdateClienteHandler)
		api.DELETE("/clientes/:id", escritura, handlers.DeleteClienteHandler)

		// Motos
		api.GET("/motos", lectura, handlers.ListMotosHandler)
		api.GET("/motos/:id", lectura, handlers.GetMotoHandler)
		api.POST("/motos", escritura, handlers.CreateMotoHandler)
		api.PUT("/motos/:id", escritura, handlers.UpdateMotoHandler)
		api.DELETE("/motos/:id", escritura, handlers.DeleteMotoHandler)

		// Contratos
		api.GET("/contratos", lectura, handlers.ListContratosHandler)
		api.GET("/contratos/:id", lectura, handlers.GetContratoHandler)
		api.POST("/contratos", escritura, handlers.CreateContratoHandler)
		api.PUT("/contratos/:id", escritura, handlers.UpdateContratoHandler)
		api.DELETE("/contratos/:id", escritura, handlers.DeleteContratoHandler)

		// Pagos
		api.GET("/pagos", lectura, handlers.ListPagosHandler)
		api.GET("/pagos/export", lectura, handlers.ExportPagosHandler)
		api.POST("/pagos", escritura, handlers.CreatePagoHandler)
		api.POST("/pagos/confirmar", escritura, handlers.ConfirmarPagoHandler)
		api.POST("/pagos/:id/marcar-pagado", escritura, handlers.MarcarPagadoHandler)

		// Facturas
		api.GET("/facturas", lectura, handlers.ListFacturasHandler)
		api.POST("/facturas/:id/afip", escritura, handlers.AfipFacturaHandler)

		// Alertas
		api.GET("/alertas", lectura, handlers.ListAlertasHandler)
		api.GET("/alertas/count", lectura, handlers.CountAlertasHandler)
		api.POST("/alertas/:id/leer", escritura, handlers.LeerAlertaHandler)

		// Usuarios
		api.GET("/usuarios", soloAdmin, handlers.ListUsuariosHandler)
		api.POST("/usuarios", soloAdmin, handlers.CreateUsuarioHandler)
		api.PATCH("/usuarios/:id", soloAdmin, handlers.PatchUsuarioHandler)

		// Pricing
		api.GET("/pricing", soloAdmin, handlers.GetPricingHandler)
		api.POST("/pricing", soloAdmin, handlers.GuardarPricingHandler)
		api.POST("/pricing/cotizar", cualquiera, handlers.CotizarHandler)

		// Verificaciones KYC
		api.POST("/verificaciones/dni", escritura, handlers.ValidarDNIHandler)
		api.GET("/verificaciones", lectura, handlers.ListVerificacionesHandler)

		// Dashboard
		api.GET("/dashboard", lectura, handlers.DashboardHandler)
		api.GET("/charts/ingresos", lectura, handlers.ChartIngresosHandler)
		api.GET("/charts/ingresos-mes", lectura, handlers.ChartIngresosMesHandler)

		// Pasarela de pagos: el cliente final paga su propio contrato.
		api.POST("/mp/preference", cualquiera, handlers.CrearPreferenciaHandler)

		// Asistente
		api.POST("/asistente", escritura, handlers.AsistenteHandler)

		// Jobs manuales
		jobs := api.Group("/jobs", escritura)
		{
			jobs.POST("/contratos-por-vencer", handlers.EjecutarContratosPorVencerHandler)
			jobs.POST("/vencimientos", handlers.EjecutarVencimientosHandler)
			jobs.POST("/facturar-pagos", handlers.EjecutarFacturacionHandler)
			jobs.POST("/renovar-contratos", handlers.EjecutarRenovacionHandler)
		}
	}
}
