// Package pricing calcula los precios de alquiler. Es código puro: la
// configuración entra por parámetro y no toca la base de datos.
package pricing

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/Knetic/govaluate"
)

// SemanasPorMes es el factor comercial usado para convertir precios
// mensuales en semanales (52 semanas / 12 meses).
const SemanasPorMes = 4.33

// Config son los parámetros vigentes de precios. Se mapea 1 a 1 desde la
// fila PricingConfig.
type Config struct {
	PrecioBaseMensual float64
	DescuentoSemanal  float64

	DescuentoMeses3  float64
	DescuentoMeses6  float64
	DescuentoMeses9  float64
	DescuentoMeses12 float64

	FormulaTotal string
}

// Cotizacion es el resultado del cálculo, ya redondeado a centavos.
type Cotizacion struct {
	PrecioMensual     float64 `json:"precioMensual"`
	PrecioSemanal     float64 `json:"precioSemanal"`
	PrecioTotal       float64 `json:"precioTotal"`
	DescuentoDuracion float64 `json:"descuentoDuracion"`
	DescuentoSemanal  float64 `json:"descuentoSemanal"`
}

// DescuentoDuracion devuelve el descuento del tramo. Los tramos son fijos:
// 3, 6, 9 y 12 meses.
func (c Config) DescuentoDuracion(meses int) (float64, bool) {
	switch meses {
	case 3:
		return c.DescuentoMeses3, true
	case 6:
		return c.DescuentoMeses6, true
	case 9:
		return c.DescuentoMeses9, true
	case 12:
		return c.DescuentoMeses12, true
	}
	return 0, false
}

// RedondearCentavos aplica redondeo half-up a dos decimales. Se usa al
// persistir y al cotizar, no solo al mostrar.
func RedondearCentavos(x float64) float64 {
	return math.Round(x*100) / 100
}

// Cotizar calcula mensual, semanal y total para una duración y cadencia.
func Cotizar(cfg Config, meses int, tipoPago string) (Cotizacion, error) {
	descuento, ok := cfg.DescuentoDuracion(meses)
	if !ok {
		return Cotizacion{}, fmt.Errorf("duración inválida: %d meses (los tramos son 3, 6, 9 y 12)", meses)
	}

	if tipoPago != "mensual" && tipoPago != "semanal" {
		return Cotizacion{}, fmt.Errorf("tipo de pago inválido: %q", tipoPago)
	}

	mensual := cfg.PrecioBaseMensual * (1 - descuento/100)
	semanal := mensual * (1 - cfg.DescuentoSemanal/100) / SemanasPorMes

	unitario := mensual
	unidades := 1.0
	if tipoPago == "semanal" {
		unitario = semanal
		unidades = SemanasPorMes
	}

	total := calcularTotal(cfg.FormulaTotal, unitario, unidades, float64(meses))

	return Cotizacion{
		PrecioMensual:     RedondearCentavos(mensual),
		PrecioSemanal:     RedondearCentavos(semanal),
		PrecioTotal:       RedondearCentavos(total),
		DescuentoDuracion: descuento,
		DescuentoSemanal:  cfg.DescuentoSemanal,
	}, nil
}

// calcularTotal evalúa la fórmula configurada si existe. Una fórmula rota
// no debe voltear una cotización: se registra y se usa la aritmética
// estándar.
func calcularTotal(formula string, unitario, unidades, meses float64) float64 {
	porDefecto := unitario * unidades * meses
	if formula == "" {
		return porDefecto
	}

	expression, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		slog.Warn("Fórmula de total inválida, se usa la aritmética estándar", "formula", formula, "error", err)
		return porDefecto
	}

	parameters := map[string]interface{}{
		"unitario": unitario,
		"unidades": unidades,
		"meses":    meses,
	}

	result, err := expression.Evaluate(parameters)
	if err != nil {
		slog.Warn("No se pudo evaluar la fórmula de total", "formula", formula, "error", err)
		return porDefecto
	}

	total, ok := result.(float64)
	if !ok {
		slog.Warn("El resultado de la fórmula no es un número", "formula", formula)
		return porDefecto
	}

	return total
}
