// Package jobs contiene los barridos periódicos que mueven el estado de
// contratos, pagos y facturas. Cada job es un escaneo independiente y
// reporta cuántas filas revisó y cuántas mutó. Las fallas por fila se
// aíslan: una fila rota no aborta el resto del barrido.
package jobs

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"alquiler-motos/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiasAvisoVencimiento es la ventana de anticipación para avisar que un
// contrato está por vencer.
const DiasAvisoVencimiento = 3

type ResumenContratosPorVencer struct {
	OK                 bool `json:"ok"`
	ContratosRevisados int  `json:"contratosRevisados"`
	AlertasCreadas     int  `json:"alertasCreadas"`
	Fallidos           int  `json:"fallidos"`
}

type ResumenVencimientos struct {
	OK             bool      `json:"ok"`
	PagosRevisados int       `json:"pagosRevisados"`
	PagosMarcados  int       `json:"pagosMarcados"`
	Fallidos       int       `json:"fallidos"`
	EjecutadoAt    time.Time `json:"ejecutadoAt"`
}

type ResumenFacturacion struct {
	OK              bool `json:"ok"`
	PagosProcesados int  `json:"pagosProcesados"`
	FacturasCreadas int  `json:"facturasCreadas"`
	Fallidos        int  `json:"fallidos"`
}

type ResumenRenovacion struct {
	OK                 bool `json:"ok"`
	ContratosRevisados int  `json:"contratosRevisados"`
	ContratosVencidos  int  `json:"contratosVencidos"`
}

// ContratosPorVencer avisa sobre contratos activos cuya fecha de fin cae
// dentro de la ventana de anticipación. La verificación de alerta ya
// existente y el insert van en la misma transacción; con eso la corrida
// repetida no duplica mientras la alerta siga sin leer.
func ContratosPorVencer(db *gorm.DB) ResumenContratosPorVencer {
	hoy := time.Now()
	limite := hoy.AddDate(0, 0, DiasAvisoVencimiento)

	var contratos []models.Contrato
	if err := db.Where("estado = ? AND fecha_fin >= ? AND fecha_fin <= ?",
		models.ContratoActivo, hoy, limite).Find(&contratos).Error; err != nil {
		slog.Error("No se pudieron consultar los contratos por vencer", "error", err)
		return ResumenContratosPorVencer{}
	}

	resumen := ResumenContratosPorVencer{OK: true, ContratosRevisados: len(contratos)}

	for _, contrato := range contratos {
		creada := false
		err := db.Transaction(func(tx *gorm.DB) error {
			var existentes int64
			if err := tx.Model(&models.Alerta{}).
				Where("tipo = ? AND contrato_id = ? AND leida = ?",
					models.AlertaContratoPorVencer, contrato.ID, false).
				Count(&existentes).Error; err != nil {
				return err
			}
			if existentes > 0 {
				return nil
			}

			contratoID := contrato.ID
			if err := tx.Create(&models.Alerta{
				Tipo: models.AlertaContratoPorVencer,
				Mensaje: fmt.Sprintf("El contrato %d vence el %s",
					contrato.ID, contrato.FechaFin.Format("02/01/2006")),
				ContratoID: &contratoID,
			}).Error; err != nil {
				return err
			}
			creada = true
			return nil
		})

		if err != nil {
			slog.Error("Falló el aviso de contrato por vencer", "contrato_id", contrato.ID, "error", err)
			resumen.Fallidos++
			continue
		}
		if creada {
			resumen.AlertasCreadas++
		}
	}

	return resumen
}

// VencimientosPagos marca como vencidos los pagos pendientes cuya fecha de
// vencimiento ya pasó y deja una alerta por cada uno. El cambio de estado
// y la alerta van juntos en una transacción: no puede quedar un pago
// vencido sin su alerta.
func VencimientosPagos(db *gorm.DB) ResumenVencimientos {
	ahora := time.Now()

	var pagos []models.Pago
	if err := db.Where("estado = ? AND vencimiento_at < ?",
		models.PagoPendiente, ahora).Find(&pagos).Error; err != nil {
		slog.Error("No se pudieron consultar los pagos vencidos", "error", err)
		return ResumenVencimientos{EjecutadoAt: ahora}
	}

	resumen := ResumenVencimientos{OK: true, PagosRevisados: len(pagos), EjecutadoAt: ahora}

	for _, pago := range pagos {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Pago{}).
				Where("id = ? AND estado = ?", pago.ID, models.PagoPendiente).
				Update("estado", models.PagoVencido).Error; err != nil {
				return err
			}

			pagoID := pago.ID
			contratoID := pago.ContratoID
			return tx.Create(&models.Alerta{
				Tipo:       models.AlertaPagoVencido,
				Mensaje:    fmt.Sprintf("El pago %d se encuentra vencido", pago.ID),
				ContratoID: &contratoID,
				PagoID:     &pagoID,
			}).Error
		})

		if err != nil {
			slog.Error("Falló el marcado de pago vencido", "pago_id", pago.ID, "error", err)
			resumen.Fallidos++
			continue
		}
		resumen.PagosMarcados++
	}

	return resumen
}

// FacturarPagos emite una factura por cada pago pagado que todavía no la
// tiene. La garantía de a-lo-sumo-una es el índice único sobre pago_id:
// si dos corridas compiten, la segunda falla el insert y se contabiliza
// como fila fallida, nunca como factura doble.
func FacturarPagos(db *gorm.DB) ResumenFacturacion {
	var pagos []models.Pago
	if err := db.Where("estado = ? AND id NOT IN (SELECT pago_id FROM facturas)",
		models.PagoPagado).Find(&pagos).Error; err != nil {
		slog.Error("No se pudieron consultar los pagos sin factura", "error", err)
		return ResumenFacturacion{}
	}

	resumen := ResumenFacturacion{OK: true, PagosProcesados: len(pagos)}

	for _, pago := range pagos {
		numero := nuevoNumeroFactura()

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&models.Factura{
				Numero:     numero,
				Monto:      pago.Monto,
				Estado:     models.FacturaEmitida,
				EmitidaAt:  time.Now(),
				ContratoID: pago.ContratoID,
				PagoID:     pago.ID,
			}).Error; err != nil {
				return err
			}

			pagoID := pago.ID
			contratoID := pago.ContratoID
			return tx.Create(&models.Alerta{
				Tipo:       models.AlertaFacturaEmitida,
				Mensaje:    fmt.Sprintf("Factura %s emitida por pago %d", numero, pago.ID),
				ContratoID: &contratoID,
				PagoID:     &pagoID,
			}).Error
		})

		if err != nil {
			slog.Error("Falló la emisión de factura", "pago_id", pago.ID, "error", err)
			resumen.Fallidos++
			continue
		}
		resumen.FacturasCreadas++
	}

	return resumen
}

// RenovarContratos pasa a vencido todo contrato activo cuya fecha de fin
// ya quedó atrás.
func RenovarContratos(db *gorm.DB) ResumenRenovacion {
	ahora := time.Now()

	var contratos []models.Contrato
	if err := db.Where("estado = ? AND fecha_fin <= ?",
		models.ContratoActivo, ahora).Find(&contratos).Error; err != nil {
		slog.Error("No se pudieron consultar los contratos vencidos", "error", err)
		return ResumenRenovacion{}
	}

	resumen := ResumenRenovacion{OK: true, ContratosRevisados: len(contratos)}

	for _, contrato := range contratos {
		if err := db.Model(&models.Contrato{}).
			Where("id = ?", contrato.ID).
			Update("estado", models.ContratoVencido).Error; err != nil {
			slog.Error("No se pudo vencer el contrato", "contrato_id", contrato.ID, "error", err)
			continue
		}
		resumen.ContratosVencidos++
	}

	return resumen
}

// nuevoNumeroFactura arma F-<fecha>-<sufijo uuid>. El sufijo aleatorio
// evita colisiones entre corridas concurrentes; la unicidad dura la
// garantiza el índice de la tabla.
func nuevoNumeroFactura() string {
	sufijo := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("F-%s-%s", time.Now().Format("20060102"), sufijo)
}
