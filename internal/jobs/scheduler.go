package jobs

import (
	"log/slog"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// IniciarScheduler programa los barridos diarios en los mismos horarios
// que corrían históricamente. Los endpoints POST /api/jobs/* disparan los
// mismos barridos a mano.
func IniciarScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		resumen := VencimientosPagos(db)
		slog.Info("Job de vencimientos ejecutado",
			"revisados", resumen.PagosRevisados, "marcados", resumen.PagosMarcados, "fallidos", resumen.Fallidos)
	})

	c.AddFunc("30 3 * * *", func() {
		resumen := ContratosPorVencer(db)
		slog.Info("Job de contratos por vencer ejecutado",
			"revisados", resumen.ContratosRevisados, "alertas", resumen.AlertasCreadas, "fallidos", resumen.Fallidos)
	})

	c.AddFunc("10 4 * * *", func() {
		resumen := FacturarPagos(db)
		slog.Info("Job de facturación ejecutado",
			"procesados", resumen.PagosProcesados, "facturas", resumen.FacturasCreadas, "fallidos", resumen.Fallidos)
	})

	c.AddFunc("30 4 * * *", func() {
		resumen := RenovarContratos(db)
		slog.Info("Job de renovación ejecutado",
			"revisados", resumen.ContratosRevisados, "vencidos", resumen.ContratosVencidos)
	})

	c.Start()
	slog.Info("Scheduler de jobs inicializado")
	return c
}
