package models

import "strings"

// ClientData is the caller-supplied reference record for one credit
// application. It is immutable for the duration of a request and used only
// as the comparison baseline during validation.
type ClientData struct {
	SolicitudID      string
	FechaCurse       string // optional; ISO-8601 timestamp or YYYY-MM-DD
	Nombres          string
	ApellidoPaterno  string // optional
	ApellidoMaterno  string // optional
	RUT              string // optional
}

// FullName joins the client's given names and surnames, skipping absent parts.
func (c ClientData) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Nombres, c.ApellidoPaterno, c.ApellidoMaterno} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}
