package entity

import "time"

// ReportCode contraseña compartida para consultar el reporte sin sesión.
// Se guarda el hash; la vigente es la más reciente.
type ReportCode struct {
	ID           string
	PasswordHash string
	CreatedBy    string
	CreatedAt    time.Time
}
