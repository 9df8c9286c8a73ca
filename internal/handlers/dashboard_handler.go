package handlers

import (
	"net/http"
	"sort"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
)

// DashboardHandler devuelve los contadores de la pantalla principal.
func DashboardHandler(c *gin.Context) {
	var totalMotos, totalContratos, totalClientes, pagosPendientes, alertasNoLeidas int64

	config.DB.Model(&models.Moto{}).Count(&totalMotos)
	config.DB.Model(&models.Contrato{}).Count(&totalContratos)
	config.DB.Model(&models.Cliente{}).Count(&totalClientes)
	config.DB.Model(&models.Pago{}).Where("estado = ?", models.PagoPendiente).Count(&pagosPendientes)
	config.DB.Model(&models.Alerta{}).Where("leida = ?", false).Count(&alertasNoLeidas)

	c.JSON(http.StatusOK, gin.H{
		"totalMotos":      totalMotos,
		"totalContratos":  totalContratos,
		"totalClientes":   totalClientes,
		"pagosPendientes": pagosPendientes,
		"alertasNoLeidas": alertasNoLeidas,
	})
}

type totalPorNombre struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// ChartIngresosHandler agrupa los pagos cobrados por cliente y por moto.
func ChartIngresosHandler(c *gin.Context) {
	var pagos []models.Pago
	if err := config.DB.Preload("Contrato.Cliente").Preload("Contrato.Moto").
		Where("estado = ?", models.PagoPagado).Find(&pagos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener los ingresos"})
		return
	}

	porCliente := map[string]float64{}
	porMoto := map[string]float64{}

	for _, p := range pagos {
		if p.Contrato == nil {
			continue
		}
		if p.Contrato.Cliente != nil {
			porCliente[p.Contrato.Cliente.Nombre] += p.Monto
		}
		if p.Contrato.Moto != nil {
			porMoto[p.Contrato.Moto.Marca+" "+p.Contrato.Moto.Modelo] += p.Monto
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"clientes": aListaOrdenada(porCliente),
		"motos":    aListaOrdenada(porMoto),
	})
}

// ChartIngresosMesHandler agrupa los pagos cobrados por mes calendario.
func ChartIngresosMesHandler(c *gin.Context) {
	var pagos []models.Pago
	if err := config.DB.
		Where("estado = ? AND pagado_at IS NOT NULL", models.PagoPagado).
		Find(&pagos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener los ingresos"})
		return
	}

	porMes := map[string]float64{}
	for _, p := range pagos {
		porMes[p.PagadoAt.Format("2006-01")] += p.Monto
	}

	type ingresoMes struct {
		Mes   string  `json:"mes"`
		Total float64 `json:"total"`
	}

	data := make([]ingresoMes, 0, len(porMes))
	for mes, total := range porMes {
		data = append(data, ingresoMes{Mes: mes, Total: total})
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Mes < data[j].Mes })

	c.JSON(http.StatusOK, data)
}

func aListaOrdenada(totales map[string]float64) []totalPorNombre {
	lista := make([]totalPorNombre, 0, len(totales))
	for name, total := range totales {
		lista = append(lista, totalPorNombre{Name: name, Total: total})
	}
	sort.Slice(lista, func(i, j int) bool { return lista[i].Total > lista[j].Total })
	return lista
}
