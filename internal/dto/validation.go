package dto

import "validocs/internal/models"

// ValidationRequest is the POST /api/v1/validaciones body.
type ValidationRequest struct {
	DataCliente    ClientDataRequest `json:"data_cliente"`
	DataDocuments  []DocumentRequest `json:"data_documents"`
}

// ClientDataRequest carries the applicant's reference data used as the
// comparison baseline during validation.
type ClientDataRequest struct {
	SolicitudID     string `json:"solicitud_id"`
	FechaCurse      string `json:"solicitud_fecha_curse,omitempty"`
	Nombres         string `json:"cliente_nombres"`
	ApellidoPaterno string `json:"cliente_apellido_paterno,omitempty"`
	ApellidoMaterno string `json:"cliente_apellido_materno,omitempty"`
	RUT             string `json:"cliente_rut,omitempty"`
}

// DocumentRequest is one submitted document. Filename identifies the
// document within the request and must be unique.
type DocumentRequest struct {
	Filename      string `json:"filename"`
	Tipo          string `json:"tipo,omitempty"`
	Base64Content string `json:"base64_content"`
	ContentType   string `json:"content_type"`
}

// ToModel converts the request client block to the domain type.
func (r ClientDataRequest) ToModel() models.ClientData {
	return models.ClientData{
		SolicitudID:     r.SolicitudID,
		FechaCurse:      r.FechaCurse,
		Nombres:         r.Nombres,
		ApellidoPaterno: r.ApellidoPaterno,
		ApellidoMaterno: r.ApellidoMaterno,
		RUT:             r.RUT,
	}
}

// ToModel converts one request document to the domain type.
func (r DocumentRequest) ToModel() models.DocumentInput {
	return models.DocumentInput{
		Filename:      r.Filename,
		Tipo:          r.Tipo,
		Base64Content: r.Base64Content,
		ContentType:   r.ContentType,
	}
}

// ValidationResponse wraps the pipeline result with the server-assigned
// request identifier.
type ValidationResponse struct {
	RequestID string `json:"request_id"`
	*models.GlobalResult
}
