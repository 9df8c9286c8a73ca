package pricing

import (
	"math"
	"testing"
)

func configDePrueba() Config {
	return Config{
		PrecioBaseMensual: 150,
		DescuentoSemanal:  10,
		DescuentoMeses3:   0,
		DescuentoMeses6:   5,
		DescuentoMeses9:   10,
		DescuentoMeses12:  15,
	}
}

func TestCotizarMensual(t *testing.T) {
	cfg := configDePrueba()

	cot, err := Cotizar(cfg, 6, "mensual")
	if err != nil {
		t.Fatalf("Cotizar: %v", err)
	}

	// 150 * 0.95 = 142.50
	if cot.PrecioMensual != 142.50 {
		t.Errorf("precio mensual = %v, se esperaba 142.50", cot.PrecioMensual)
	}
	// total = mensual * 1 * 6
	if cot.PrecioTotal != 855.00 {
		t.Errorf("precio total = %v, se esperaba 855.00", cot.PrecioTotal)
	}
}

func TestSemanalNoSuperaAlMensual(t *testing.T) {
	cfg := configDePrueba()

	for _, meses := range []int{3, 6, 9, 12} {
		cot, err := Cotizar(cfg, meses, "semanal")
		if err != nil {
			t.Fatalf("Cotizar(%d): %v", meses, err)
		}
		if cot.PrecioSemanal > cot.PrecioMensual {
			t.Errorf("meses=%d: semanal %v > mensual %v con descuento semanal positivo",
				meses, cot.PrecioSemanal, cot.PrecioMensual)
		}
	}
}

func TestTotalEscalaLinealConLaDuracion(t *testing.T) {
	// Con el mismo descuento por tramo el total debe ser lineal en los
	// meses. Se fuerza el mismo descuento en todos los tramos.
	cfg := configDePrueba()
	cfg.DescuentoMeses3 = 5
	cfg.DescuentoMeses6 = 5
	cfg.DescuentoMeses9 = 5
	cfg.DescuentoMeses12 = 5

	cot3, err := Cotizar(cfg, 3, "mensual")
	if err != nil {
		t.Fatalf("Cotizar(3): %v", err)
	}
	cot12, err := Cotizar(cfg, 12, "mensual")
	if err != nil {
		t.Fatalf("Cotizar(12): %v", err)
	}

	if math.Abs(cot12.PrecioTotal-4*cot3.PrecioTotal) > 0.05 {
		t.Errorf("total(12)=%v no es 4×total(3)=%v", cot12.PrecioTotal, 4*cot3.PrecioTotal)
	}
}

func TestDuracionFueraDeTramo(t *testing.T) {
	if _, err := Cotizar(configDePrueba(), 5, "mensual"); err == nil {
		t.Error("se esperaba error para 5 meses")
	}
}

func TestTipoDePagoInvalido(t *testing.T) {
	if _, err := Cotizar(configDePrueba(), 3, "quincenal"); err == nil {
		t.Error("se esperaba error para cadencia desconocida")
	}
}

func TestFormulaTotalConfigurable(t *testing.T) {
	cfg := configDePrueba()
	cfg.FormulaTotal = "unitario * unidades * meses * 0.5"

	cot, err := Cotizar(cfg, 6, "mensual")
	if err != nil {
		t.Fatalf("Cotizar: %v", err)
	}
	if cot.PrecioTotal != 427.50 {
		t.Errorf("precio total con fórmula = %v, se esperaba 427.50", cot.PrecioTotal)
	}
}

func TestFormulaRotaUsaAritmeticaEstandar(t *testing.T) {
	cfg := configDePrueba()
	cfg.FormulaTotal = "unitario *** meses"

	cot, err := Cotizar(cfg, 6, "mensual")
	if err != nil {
		t.Fatalf("Cotizar: %v", err)
	}
	if cot.PrecioTotal != 855.00 {
		t.Errorf("precio total = %v, se esperaba el cálculo estándar 855.00", cot.PrecioTotal)
	}
}

func TestRedondeoACentavos(t *testing.T) {
	cfg := configDePrueba()

	// semanal = 142.5 * 0.9 / 4.33 = 29.618...
	cot, err := Cotizar(cfg, 6, "semanal")
	if err != nil {
		t.Fatalf("Cotizar: %v", err)
	}
	if cot.PrecioSemanal != 29.62 {
		t.Errorf("precio semanal = %v, se esperaba 29.62", cot.PrecioSemanal)
	}
}
