package models

import "time"

// PricingConfig es la fila única de configuración de precios. Se crea con
// valores por defecto la primera vez que alguien la lee.
type PricingConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`

	PrecioBaseMensual float64 `gorm:"column:precio_base_mensual" json:"precioBaseMensual"`
	DescuentoSemanal  float64 `gorm:"column:descuento_semanal" json:"descuentoSemanal"`

	// Descuento porcentual por duración, una columna por tramo.
	DescuentoMeses3  float64 `gorm:"column:descuento_meses_3" json:"descuentoMeses3"`
	DescuentoMeses6  float64 `gorm:"column:descuento_meses_6" json:"descuentoMeses6"`
	DescuentoMeses9  float64 `gorm:"column:descuento_meses_9" json:"descuentoMeses9"`
	DescuentoMeses12 float64 `gorm:"column:descuento_meses_12" json:"descuentoMeses12"`

	// Expresión opcional para el total (variables: unitario, unidades,
	// meses). Vacía = aritmética estándar.
	FormulaTotal string `gorm:"column:formula_total" json:"formulaTotal"`
}

func (PricingConfig) TableName() string { return "pricing_config" }

// PricingPorDefecto replica los valores con los que arranca el sistema.
func PricingPorDefecto() PricingConfig {
	return PricingConfig{
		PrecioBaseMensual: 150,
		DescuentoSemanal:  10,
		DescuentoMeses3:   0,
		DescuentoMeses6:   5,
		DescuentoMeses9:   10,
		DescuentoMeses12:  15,
	}
}
