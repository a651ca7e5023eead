package service

import (
	"fmt"

	"validocs/internal/models"
)

// ocrPrompt instructs the model to transcribe scanned pages verbatim, with no
// summarizing or commentary.
const ocrPrompt = `Extrae TODO el texto visible, palabra por palabra, caracter por caracter, de las siguientes imágenes, sin omitir nada. Incluye texto de tablas, campos y cualquier sección del documento. No hagas resúmenes, no interpretes, no añadas comentarios ni explicaciones. Responde ÚNICAMENTE con el texto plano extraído.`

// classificationPrompt builds the text-only prompt that resolves a document
// to one of the six allowed labels.
func classificationPrompt(rawText string) string {
	return fmt.Sprintf(`Eres un asistente experto en la clasificación de documentos chilenos.
Tu tarea es identificar el tipo de documento basándote en el texto proporcionado.

Los tipos de documentos posibles son:
- CEDULA_IDENTIDAD (Cédula de Identidad)
- LIQUIDACION_SUELDO (Liquidación de Sueldo)
- COMPROBANTE_DOMICILIO (Comprobante de Domicilio, ej. boleta de servicios, certificado de residencia)
- CERTIFICADO_DEUDA (Certificado de No Deuda de Alimentos u otros certificados de deuda)
- REFERENCIAS_PERSONALES (Documentos con listas de contactos o referencias)
- OTRO (si no encaja en ninguna de las categorías anteriores o el texto es insuficiente)

Responde ÚNICAMENTE con la palabra clave que mejor represente el tipo de documento, sin añadir explicaciones ni ningún otro texto.
Por ejemplo: "CEDULA_IDENTIDAD" o "COMPROBANTE_DOMICILIO".
Si no puedes clasificarlo con certeza, responde "OTRO".

Texto del documento:
---
%s
---
Tipo de documento:`, rawText)
}

const cedulaExtractionPrompt = `Eres un asistente experto en la extracción de información de cédulas de identidad chilenas.
Dada la imagen de una cédula de identidad chilena, extrae la siguiente información en formato JSON.
Asegúrate de que la fecha de nacimiento, emisión y vencimiento estén en formato ISO 8601 (YYYY-MM-DD).
El RUN debe incluir puntos y guion.

JSON esperado:
` + "```json" + `
{
    "nombre_completo": "Nombre completo del titular",
    "apellido_paterno": "Primer apellido del titular",
    "apellido_materno": "Segundo apellido del titular",
    "run": "RUN del titular (ej. 12.345.678-9)",
    "nacionalidad": "Nacionalidad (ej. CHILENA)",
    "sexo": "Sexo (M o F)",
    "fecha_nacimiento": "YYYY-MM-DD",
    "numero_documento": "Número de documento (9 dígitos, sin puntos ni guiones, si es posible)",
    "fecha_emision": "YYYY-MM-DD",
    "fecha_vencimiento": "YYYY-MM-DD",
    "lugar_nacimiento": "Lugar de nacimiento"
}
` + "```" + `
Si un campo no se encuentra en la imagen o no es claro, déjalo como null.
IMPORTANTE: Responde ÚNICAMENTE con el objeto JSON. No añadas comentarios ni explicaciones.`

const comprobanteExtractionPrompt = `Eres un asistente experto en la extracción de información de comprobantes de domicilio chilenos (ej. boletas de servicios).
Dada la imagen de un comprobante de domicilio, extrae la siguiente información en formato JSON.

JSON esperado:
` + "```json" + `
{
    "nombre_titular": "Nombre completo del titular del servicio/cuenta",
    "direccion_completa": "Dirección completa (calle, número, depto/casa, comuna, ciudad, región)",
    "empresa_emisora": "Nombre de la empresa que emite el comprobante (ej. VTR, CGE, Aguas Andinas)",
    "numero_cliente_cuenta": "Número de cliente o cuenta del servicio",
    "fecha_emision": "Fecha de emisión del comprobante (YYYY-MM-DD)",
    "fecha_vencimiento": "Fecha de vencimiento del comprobante (YYYY-MM-DD)",
    "monto_total_pagar": "Monto total a pagar (solo número)",
    "periodo_facturado": "Periodo de facturación (ej. Enero 2025)"
}
` + "```" + `
Si un campo no se encuentra en la imagen o no es claro, déjalo como null.
IMPORTANTE: Responde ÚNICAMENTE con el objeto JSON. No añadas comentarios ni explicaciones.
RECUERDA: EL FORMATO DE FECHAS DEBE SER YYYY-MM-DD ASEGURATE DE RESPETARLO AL EXTRAER.`

const certificadoExtractionPrompt = `Eres un asistente experto en la extracción de información de certificados de deuda chilenos.
Dada la imagen de un certificado de deuda, extrae la siguiente información en formato JSON.

JSON esperado:
` + "```json" + `
{
    "nombre_titular": "Nombre completo del titular del certificado",
    "run_titular": "RUN del titular (ej. 12.345.678-9)",
    "tipo_certificado": "Tipo específico de certificado (ej. Certificado de No Deuda de Alimentos)",
    "estado_deuda": "Estado de la deuda (ej. Sin anotaciones, Con anotaciones)",
    "fecha_emision": "Fecha de emisión del certificado (YYYY-MM-DD)",
    "codigo_verificacion": "Código de verificación del certificado"
}
` + "```" + `
Si un campo no se encuentra en la imagen o no es claro, déjalo como null.
IMPORTANTE: Responde ÚNICAMENTE con el objeto JSON. No añadas comentarios ni explicaciones.`

const referenciasExtractionPrompt = `Eres un asistente experto en la extracción de información de documentos de referencias personales.
Dada la imagen de un documento con referencias personales, extrae la siguiente información en formato JSON.
Debe ser una lista de objetos, donde cada objeto representa una referencia.

JSON esperado:
` + "```json" + `
[
    {
        "nombre_referencia": "Nombre completo de la persona de referencia",
        "relacion": "Relación con el solicitante (ej. HERMANA, MADRE, AMIGO, COLEGA)",
        "numero_telefono": "Número de teléfono de la referencia (ej. +56912345678)"
    },
    {
        "nombre_referencia": "...",
        "relacion": "...",
        "numero_telefono": "..."
    }
]
` + "```" + `
Si un campo no se encuentra o no es claro, déjalo como null.
IMPORTANTE: Responde ÚNICAMENTE con el array JSON. No añadas comentarios ni explicaciones.`

const liquidacionExtractionPrompt = `Eres un asistente experto en la extracción de información de liquidaciones de sueldo chilenas.
Dada la imagen de una liquidación de sueldo, extrae la siguiente información en formato JSON.
Los montos deben conservar el formato del documento (ej. 1.234.567 o 1.234.567,50).

JSON esperado:
` + "```json" + `
{
    "nombre_trabajador": "Nombre completo del trabajador",
    "rut_trabajador": "RUT del trabajador (ej. 12.345.678-9)",
    "nombre_empleador": "Razón social del empleador",
    "rut_empleador": "RUT del empleador (ej. 76.123.456-7)",
    "fecha_emision": "Fecha de emisión de la liquidación (YYYY-MM-DD)",
    "periodo": "Periodo liquidado (ej. Enero 2025)",
    "sueldo_bruto": "Sueldo bruto del periodo",
    "sueldo_liquido": "Sueldo líquido del periodo",
    "total_descuentos": "Total de descuentos legales"
}
` + "```" + `
Si un campo no se encuentra en la imagen o no es claro, déjalo como null.
IMPORTANTE: Responde ÚNICAMENTE con el objeto JSON. No añadas comentarios ni explicaciones.
RECUERDA: EL FORMATO DE FECHAS DEBE SER YYYY-MM-DD ASEGURATE DE RESPETARLO AL EXTRAER.`

// extractionPrompt selects the structured-extraction prompt for a document
// type. The empty string means the type has no structured prompt and the
// extractor falls back to raw text.
func extractionPrompt(docType models.DocumentType) string {
	switch docType {
	case models.DocumentTypeCedulaIdentidad:
		return cedulaExtractionPrompt
	case models.DocumentTypeComprobanteDomicilio:
		return comprobanteExtractionPrompt
	case models.DocumentTypeCertificadoDeuda:
		return certificadoExtractionPrompt
	case models.DocumentTypeReferencias:
		return referenciasExtractionPrompt
	case models.DocumentTypeLiquidacionSueldo:
		return liquidacionExtractionPrompt
	case models.DocumentTypeOtro:
		return ""
	default:
		return ""
	}
}
