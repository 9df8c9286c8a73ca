// Package verifik habla con el servicio de verificación de identidad.
// La política ante caídas del colaborador es fail-open: un screening que
// no responde no bloquea la operación; solo el riesgo HIGH confirmado
// rechaza.
package verifik

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

const (
	urlValidacion = "https://api.verifik.com/v1/document/validate"
	urlScreening  = "https://api.verifik.com/v1/screening/check"
)

var soloDigitos = regexp.MustCompile(`\D`)

// Client encapsula credenciales y transporte. Con Enabled en false todas
// las validaciones devuelven el resultado neutro.
type Client struct {
	APIKey  string
	Secret  string
	Enabled bool

	HTTPClient *http.Client
}

func NewClient(apiKey, secret string, enabled bool) *Client {
	return &Client{
		APIKey:     apiKey,
		Secret:     secret,
		Enabled:    enabled,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ResultadoKYC es lo que el resto del sistema consume: verificado sí/no y
// el nivel de riesgo del screening.
type ResultadoKYC struct {
	Exito       bool            `json:"exito"`
	Verificado  bool            `json:"verificado"`
	NivelRiesgo string          `json:"nivelRiesgo"`
	Detalle     json.RawMessage `json:"detalle,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// LimpiarDNI deja solo los dígitos del documento.
func LimpiarDNI(dni string) string {
	return soloDigitos.ReplaceAllString(dni, "")
}

// FormatoValido exige los 8 dígitos del DNI argentino.
func FormatoValido(dni string) bool {
	return len(LimpiarDNI(dni)) == 8
}

// RespuestaValidacion es la respuesta cruda de la validación de documento.
type RespuestaValidacion struct {
	Verified  bool   `json:"verified"`
	Status    string `json:"status"`
	FullName  string `json:"fullName"`
	RiskLevel string `json:"riskLevel"`
}

type respuestaScreening struct {
	Matched   bool   `json:"matched"`
	RiskLevel string `json:"riskLevel"`
	Details   string `json:"details"`
}

// ValidarDNI consulta el documento contra el verificador.
func (c *Client) ValidarDNI(dni string) (RespuestaValidacion, error) {
	var vacia RespuestaValidacion
	if !c.Enabled || c.APIKey == "" {
		return vacia, fmt.Errorf("verifik no está configurado")
	}

	cuerpo, _ := json.Marshal(map[string]string{
		"documentType":   "DNI",
		"documentNumber": LimpiarDNI(dni),
		"country":        "AR",
	})

	req, err := http.NewRequest(http.MethodPost, urlValidacion, bytes.NewReader(cuerpo))
	if err != nil {
		return vacia, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("X-Secret", c.Secret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return vacia, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return vacia, fmt.Errorf("verifik respondió %s", resp.Status)
	}

	var datos RespuestaValidacion
	if err := json.NewDecoder(resp.Body).Decode(&datos); err != nil {
		return vacia, err
	}
	if datos.RiskLevel == "" {
		datos.RiskLevel = "LOW"
	}
	return datos, nil
}

// VerificarAntecedentes corre el screening contra listas de fraude. Si el
// colaborador falla se devuelve limpio con riesgo LOW (fail-open).
func (c *Client) VerificarAntecedentes(dni, nombre string) (limpio bool, riesgo string) {
	if !c.Enabled || c.APIKey == "" {
		return true, "LOW"
	}

	cuerpo, _ := json.Marshal(map[string]string{
		"documentNumber": LimpiarDNI(dni),
		"fullName":       nombre,
		"country":        "AR",
	})

	req, err := http.NewRequest(http.MethodPost, urlScreening, bytes.NewReader(cuerpo))
	if err != nil {
		return true, "LOW"
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return true, "LOW"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return true, "LOW"
	}

	var datos respuestaScreening
	if err := json.NewDecoder(resp.Body).Decode(&datos); err != nil {
		return true, "LOW"
	}
	if datos.RiskLevel == "" {
		datos.RiskLevel = "LOW"
	}
	return !datos.Matched, datos.RiskLevel
}

// KYCCompleto combina validación de documento y screening.
func (c *Client) KYCCompleto(dni, nombre string) ResultadoKYC {
	validacion, err := c.ValidarDNI(dni)
	limpio, riesgo := c.VerificarAntecedentes(dni, nombre)

	resultado := ResultadoKYC{
		Exito:       err == nil && limpio,
		Verificado:  err == nil && (validacion.Verified || validacion.Status == "VERIFIED") && limpio,
		NivelRiesgo: riesgo,
	}
	if err != nil {
		resultado.Error = err.Error()
	}
	if detalle, merr := json.Marshal(validacion); merr == nil {
		resultado.Detalle = detalle
	}
	return resultado
}
