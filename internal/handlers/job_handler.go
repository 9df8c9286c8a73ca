package handlers

import (
	"net/http"

	"alquiler-motos/config"
	"alquiler-motos/internal/jobs"

	"github.com/gin-gonic/gin"
)

// Disparadores manuales de los jobs programados. El scheduler corre los
// mismos procesos de madrugada; estos endpoints existen para operar fuera
// de horario y para probar en staging.

func EjecutarContratosPorVencerHandler(c *gin.Context) {
	c.JSON(http.StatusOK, jobs.ContratosPorVencer(config.DB))
}

func EjecutarVencimientosHandler(c *gin.Context) {
	c.JSON(http.StatusOK, jobs.VencimientosPagos(config.DB))
}

func EjecutarFacturacionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, jobs.FacturarPagos(config.DB))
}

func EjecutarRenovacionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, jobs.RenovarContratos(config.DB))
}
