package dolarapi

type quote struct {
	Source    string   `json:"fuente"`
	Name      string   `json:"nombre"`
	Buy       *float64 `json:"compra"`
	Sell      *float64 `json:"venta"`
	Average   *float64 `json:"promedio"`
	UpdatedAt string   `json:"fechaActualizacion"`
}
