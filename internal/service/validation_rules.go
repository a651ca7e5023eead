package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"validocs/internal/models"
)

var (
	// rutPattern accepts the dotted form (12.345.678-9) and the plain form
	// (12345678-9), with K as a valid check digit.
	rutPattern = regexp.MustCompile(`^\d{1,2}\.\d{3}\.\d{3}-[0-9Kk]$|^\d{7,8}-[0-9Kk]$`)

	// phonePattern matches Chilean mobile and landline numbers after
	// normalizePhone, with an optional 56 country prefix.
	phonePattern = regexp.MustCompile(`^(56)?(9\d{8}|[2-8]\d{7})$`)
)

func critical(field, message string) models.Finding {
	return models.Finding{Field: field, Message: message, Severity: models.SeverityCritical}
}

func manual(field, message string) models.Finding {
	return models.Finding{Field: field, Message: message, Severity: models.SeverityManualReview}
}

// requireFields appends a CRITICAL finding for every listed key missing from
// the extracted fields.
func requireFields(fields models.FieldMap, keys ...string) []models.Finding {
	var findings []models.Finding
	for _, key := range keys {
		if _, ok := fields.Get(key); !ok {
			findings = append(findings, critical(key, fmt.Sprintf("campo requerido '%s' no encontrado en el documento", key)))
		}
	}
	return findings
}

func isValidRUT(rut string) bool {
	return rutPattern.MatchString(strings.TrimSpace(rut))
}

// normalizeRUT strips thousands dots and uppercases the check digit so the
// dotted and plain forms compare equal.
func normalizeRUT(rut string) string {
	rut = strings.TrimSpace(rut)
	rut = strings.ReplaceAll(rut, ".", "")
	return strings.ToUpper(rut)
}

func rutsMatch(a, b string) bool {
	return normalizeRUT(a) == normalizeRUT(b)
}

// normalizePhone removes formatting characters before pattern matching.
func normalizePhone(phone string) string {
	replacer := strings.NewReplacer("+", "", " ", "", "-", "", ".", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

func isValidPhone(phone string) bool {
	return phonePattern.MatchString(normalizePhone(phone))
}

// normalizeIdentity lowercases, drops punctuation and collapses whitespace so
// OCR artifacts don't defeat name comparison.
func normalizeIdentity(s string) string {
	replacer := strings.NewReplacer(".", " ", ",", " ", "-", " ")
	return strings.Join(strings.Fields(strings.ToLower(replacer.Replace(s))), " ")
}

// nameMatchesClient reports whether the document name matches the client's
// full name exactly, or failing that, contains every non-empty client name
// component. Comparison is skipped (true) when either side is empty.
func nameMatchesClient(documentName string, client models.ClientData) bool {
	doc := normalizeIdentity(documentName)
	if doc == "" {
		return true
	}
	if doc == normalizeIdentity(client.FullName()) {
		return true
	}
	for _, component := range []string{client.Nombres, client.ApellidoPaterno, client.ApellidoMaterno} {
		norm := normalizeIdentity(component)
		if norm == "" {
			continue
		}
		if !strings.Contains(doc, norm) {
			return false
		}
	}
	return true
}

func parseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// isNumericAmount reports whether a Chilean-formatted monetary string
// (1.234.567 or 1.234.567,50) parses as a number once separators are
// normalized.
func isNumericAmount(amount string) bool {
	s := strings.TrimSpace(amount)
	if s == "" {
		return false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// anchorDate is the temporal reference every date rule is measured against.
// Degraded means the request carried an unparseable curse date: date-relative
// rules downgrade to MANUAL_REVIEW or are skipped, per-type.
type anchorDate struct {
	date     time.Time
	degraded bool
	findings []models.Finding
}

// resolveAnchor derives the anchor from the request's curse date. Absent →
// today. RFC3339 timestamps and plain YYYY-MM-DD are both accepted.
func resolveAnchor(fechaCurse string, now func() time.Time) anchorDate {
	raw := strings.TrimSpace(fechaCurse)
	if raw == "" {
		return anchorDate{date: dateOnly(now())}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return anchorDate{date: dateOnly(t)}
	}
	if t, err := parseISODate(raw); err == nil {
		return anchorDate{date: dateOnly(t)}
	}
	return anchorDate{
		date:     dateOnly(now()),
		degraded: true,
		findings: []models.Finding{
			critical("solicitud_fecha_curse", fmt.Sprintf("fecha de curse inválida: %q", raw)),
		},
	}
}

func validateCedula(client models.ClientData, fields models.FieldMap, anchor anchorDate) []models.Finding {
	findings := requireFields(fields, "nombre_completo", "run", "fecha_nacimiento", "fecha_vencimiento")

	if name, ok := fields.Get("nombre_completo"); ok {
		if !nameMatchesClient(name, client) {
			findings = append(findings, critical("nombre_completo", "el nombre del documento no coincide con los datos del cliente"))
		}
	}

	if run, ok := fields.Get("run"); ok {
		if !isValidRUT(run) {
			findings = append(findings, critical("run", fmt.Sprintf("formato de RUN inválido: %q", run)))
		} else if client.RUT != "" && !rutsMatch(run, client.RUT) {
			findings = append(findings, critical("run", "el RUN del documento no coincide con el del cliente"))
		}
	}

	for _, key := range []string{"fecha_nacimiento", "fecha_emision", "fecha_vencimiento"} {
		value, ok := fields.Get(key)
		if !ok {
			continue
		}
		parsed, err := parseISODate(value)
		if err != nil {
			findings = append(findings, critical(key, fmt.Sprintf("fecha inválida en '%s': %q", key, value)))
			continue
		}
		if key == "fecha_vencimiento" {
			if anchor.degraded {
				findings = append(findings, manual(key, "no se pudo verificar la vigencia de la cédula por fecha de curse inválida"))
			} else if parsed.Before(anchor.date) {
				findings = append(findings, critical(key, fmt.Sprintf("la cédula está vencida (vencimiento %s)", value)))
			}
		}
	}

	if sexo, ok := fields.Get("sexo"); ok {
		if upper := strings.ToUpper(strings.TrimSpace(sexo)); upper != "M" && upper != "F" {
			findings = append(findings, manual("sexo", fmt.Sprintf("valor de sexo no reconocido: %q", sexo)))
		}
	}

	return findings
}

func validateComprobante(client models.ClientData, fields models.FieldMap, anchor anchorDate) []models.Finding {
	findings := requireFields(fields, "nombre_titular", "direccion_completa", "empresa_emisora", "fecha_emision")

	if name, ok := fields.Get("nombre_titular"); ok {
		if !nameMatchesClient(name, client) {
			findings = append(findings, critical("nombre_titular", "el titular del comprobante no coincide con los datos del cliente"))
		}
	}

	if value, ok := fields.Get("fecha_emision"); ok {
		emision, err := parseISODate(value)
		switch {
		case err != nil:
			findings = append(findings, critical("fecha_emision", fmt.Sprintf("fecha de emisión inválida: %q", value)))
		case anchor.degraded:
			// antiquity check skipped, anchor finding already reported
		case emision.After(anchor.date):
			findings = append(findings, critical("fecha_emision", "la fecha de emisión es posterior a la fecha de curse"))
		case emision.Before(anchor.date.AddDate(0, 0, -60)):
			findings = append(findings, critical("fecha_emision", "el comprobante tiene más de 60 días de antigüedad"))
		}
	}

	if value, ok := fields.Get("fecha_vencimiento"); ok {
		vencimiento, err := parseISODate(value)
		switch {
		case err != nil:
			findings = append(findings, critical("fecha_vencimiento", fmt.Sprintf("fecha de vencimiento inválida: %q", value)))
		case anchor.degraded:
		case vencimiento.Before(anchor.date.AddDate(0, 0, -10)):
			findings = append(findings, critical("fecha_vencimiento", "el comprobante venció hace más de 10 días"))
		}
	}

	return findings
}

func validateCertificado(client models.ClientData, fields models.FieldMap, anchor anchorDate) []models.Finding {
	findings := requireFields(fields, "nombre_titular", "run_titular", "estado_deuda", "fecha_emision")

	if run, ok := fields.Get("run_titular"); ok {
		if !isValidRUT(run) {
			findings = append(findings, critical("run_titular", fmt.Sprintf("formato de RUN inválido: %q", run)))
		} else if client.RUT != "" && !rutsMatch(run, client.RUT) {
			findings = append(findings, critical("run_titular", "el RUN del certificado no coincide con el del cliente"))
		}
	}

	if value, ok := fields.Get("fecha_emision"); ok {
		emision, err := parseISODate(value)
		switch {
		case err != nil:
			findings = append(findings, critical("fecha_emision", fmt.Sprintf("fecha de emisión inválida: %q", value)))
		case anchor.degraded:
			findings = append(findings, manual("fecha_emision", "no se pudo verificar la fecha del certificado por fecha de curse inválida"))
		case !emision.Equal(anchor.date):
			findings = append(findings, critical("fecha_emision", "el certificado debe emitirse el mismo día del curse de la solicitud"))
		}
	}

	if estado, ok := fields.Get("estado_deuda"); ok {
		normalized := strings.ToLower(estado)
		switch {
		case strings.Contains(normalized, "con anotaciones"):
			findings = append(findings, critical("estado_deuda", "el certificado registra anotaciones de deuda"))
		case strings.Contains(normalized, "sin anotaciones"):
			// clean certificate
		default:
			findings = append(findings, manual("estado_deuda", fmt.Sprintf("estado de deuda no concluyente: %q", estado)))
		}
	}

	return findings
}

func validateReferencias(references []models.FieldMap) []models.Finding {
	var findings []models.Finding
	if len(references) < 2 {
		findings = append(findings, critical("count", fmt.Sprintf("se requieren al menos 2 referencias personales, se encontraron %d", len(references))))
	}

	for i, ref := range references {
		if _, ok := ref.Get("nombre_referencia"); !ok {
			findings = append(findings, critical(fmt.Sprintf("referencias[%d].nombre_referencia", i), "la referencia no tiene nombre"))
		}
		phone, ok := ref.Get("numero_telefono")
		if !ok {
			findings = append(findings, critical(fmt.Sprintf("referencias[%d].numero_telefono", i), "la referencia no tiene número de teléfono"))
			continue
		}
		if !isValidPhone(phone) {
			findings = append(findings, critical(fmt.Sprintf("referencias[%d].numero_telefono", i), fmt.Sprintf("número de teléfono inválido: %q", phone)))
		}
	}

	return findings
}

func validateLiquidacion(client models.ClientData, fields models.FieldMap, anchor anchorDate) []models.Finding {
	findings := requireFields(fields,
		"nombre_trabajador", "rut_trabajador", "nombre_empleador", "rut_empleador",
		"fecha_emision", "sueldo_bruto", "sueldo_liquido",
	)

	for _, key := range []string{"rut_trabajador", "rut_empleador"} {
		if rut, ok := fields.Get(key); ok && !isValidRUT(rut) {
			findings = append(findings, critical(key, fmt.Sprintf("formato de RUT inválido: %q", rut)))
		}
	}

	if value, ok := fields.Get("fecha_emision"); ok {
		emision, err := parseISODate(value)
		switch {
		case err != nil:
			findings = append(findings, critical("fecha_emision", fmt.Sprintf("fecha de emisión inválida: %q", value)))
		case anchor.degraded:
			findings = append(findings, manual("fecha_emision", "no se pudo verificar la antigüedad de la liquidación por fecha de curse inválida"))
		case emision.After(anchor.date):
			findings = append(findings, critical("fecha_emision", "la fecha de emisión es posterior a la fecha de curse"))
		case emision.Before(anchor.date.AddDate(0, -3, 0)):
			findings = append(findings, critical("fecha_emision", "la liquidación tiene más de 3 meses de antigüedad"))
		case emision.Before(anchor.date.AddDate(0, -2, 0)):
			findings = append(findings, manual("fecha_emision", "la liquidación tiene entre 2 y 3 meses de antigüedad"))
		}
	}

	for _, key := range []string{"sueldo_bruto", "sueldo_liquido", "total_descuentos"} {
		if amount, ok := fields.Get(key); ok && !isNumericAmount(amount) {
			findings = append(findings, manual(key, fmt.Sprintf("monto no numérico en '%s': %q", key, amount)))
		}
	}

	return findings
}
