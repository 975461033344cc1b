// Package mapping holds the declarative payload-to-destination mapping for
// each entity type: which destination table an approved record is merged
// into, which payload keys feed which columns, the natural business key the
// upsert is keyed on, and the required-field sets the public intake enforces.
package mapping

import (
	"strings"

	"github.com/andessoft/registro-api/internal/models"
)

// Field binds one payload key to one destination column
type Field struct {
	PayloadKey string
	Column     string
}

// EntitySpec describes the destination schema of one entity type
type EntitySpec struct {
	Tipo        string
	Table       string
	BusinessKey string // payload key and column name of the natural key
	Fields      []Field
	Required    []string
	// RequiredByRegimen adds required keys depending on the value of the
	// payload's tipo_regimen field. Empty for entities without regimes.
	RequiredByRegimen map[string][]string
}

var empleadoSpec = EntitySpec{
	Tipo:        models.TipoEmpleado,
	Table:       "empleados",
	BusinessKey: "cedula",
	Fields: []Field{
		{"nombres", "nombres"},
		{"apellidos", "apellidos"},
		{"cedula", "cedula"},
		{"fecha_nacimiento", "fecha_nacimiento"},
		{"telefono", "telefono"},
		{"correo", "correo"},
		{"direccion", "direccion"},
		{"ciudad", "ciudad"},
		{"cargo", "cargo"},
		{"sede", "sede"},
		{"fecha_ingreso", "fecha_ingreso"},
		{"eps", "eps"},
		{"fondo_pension", "fondo_pension"},
		{"url_documento_identidad", "url_documento_identidad"},
		{"url_certificacion_bancaria", "url_certificacion_bancaria"},
		{"url_certificado_eps", "url_certificado_eps"},
		{"url_certificado_pension", "url_certificado_pension"},
		{"url_hoja_vida", "url_hoja_vida"},
	},
	Required: []string{
		"nombres", "apellidos", "cedula",
		"url_documento_identidad", "url_certificacion_bancaria",
		"url_certificado_eps", "url_certificado_pension", "url_hoja_vida",
	},
}

var clienteSpec = EntitySpec{
	Tipo:        models.TipoCliente,
	Table:       "clientes",
	BusinessKey: "nit",
	Fields: []Field{
		{"tipo_regimen", "tipo_regimen"},
		{"nit", "nit"},
		{"digito_verificacion", "digito_verificacion"},
		{"razon_social", "razon_social"},
		{"nombres", "nombres"},
		{"apellidos", "apellidos"},
		{"correo", "correo"},
		{"telefono", "telefono"},
		{"direccion", "direccion"},
		{"ciudad", "ciudad"},
		{"departamento", "departamento"},
		{"codigo_ciiu", "codigo_ciiu"},
		{"actividad_economica", "actividad_economica"},
		{"rep_legal_nombre", "rep_legal_nombre"},
		{"rep_legal_cedula", "rep_legal_cedula"},
		{"rep_legal_correo", "rep_legal_correo"},
		{"gran_contribuyente", "gran_contribuyente"},
		{"autorretenedor", "autorretenedor"},
		{"responsable_iva", "responsable_iva"},
		{"declarante_renta", "declarante_renta"},
		{"cupo", "cupo"},
		{"plazo", "plazo"},
		{"url_rut", "url_rut"},
		{"url_camara_comercio", "url_camara_comercio"},
		{"url_documento_identidad", "url_documento_identidad"},
		{"url_certificacion_bancaria", "url_certificacion_bancaria"},
		{"url_estados_financieros", "url_estados_financieros"},
		{"url_certificado_sagrilaft", "url_certificado_sagrilaft"},
	},
	Required: []string{"tipo_regimen", "nit", "url_rut", "url_certificado_sagrilaft"},
	RequiredByRegimen: map[string][]string{
		models.RegimenJuridica: {"razon_social"},
		models.RegimenNatural:  {"nombres", "apellidos", "url_documento_identidad"},
	},
}

var proveedorSpec = EntitySpec{
	Tipo:        models.TipoProveedor,
	Table:       "proveedores",
	BusinessKey: "nit",
	Fields: []Field{
		{"tipo_regimen", "tipo_regimen"},
		{"nit", "nit"},
		{"digito_verificacion", "digito_verificacion"},
		{"razon_social", "razon_social"},
		{"nombres", "nombres"},
		{"apellidos", "apellidos"},
		{"correo", "correo"},
		{"telefono", "telefono"},
		{"direccion", "direccion"},
		{"ciudad", "ciudad"},
		{"departamento", "departamento"},
		{"codigo_ciiu", "codigo_ciiu"},
		{"rep_legal_nombre", "rep_legal_nombre"},
		{"rep_legal_cedula", "rep_legal_cedula"},
		{"banco", "banco"},
		{"tipo_cuenta", "tipo_cuenta"},
		{"numero_cuenta", "numero_cuenta"},
		{"cupo_aprobado", "cupo_aprobado"},
		{"url_rut", "url_rut"},
		{"url_camara_comercio", "url_camara_comercio"},
		{"url_documento_identidad", "url_documento_identidad"},
		{"url_certificacion_bancaria", "url_certificacion_bancaria"},
		{"url_composicion_accionaria", "url_composicion_accionaria"},
		{"url_certificado_sagrilaft", "url_certificado_sagrilaft"},
	},
	Required: []string{"tipo_regimen", "nit", "url_rut", "url_certificacion_bancaria"},
	RequiredByRegimen: map[string][]string{
		models.RegimenJuridica: {"razon_social"},
		models.RegimenNatural:  {"nombres", "apellidos", "url_documento_identidad"},
	},
}

var specs = map[string]*EntitySpec{
	models.TipoEmpleado:  &empleadoSpec,
	models.TipoCliente:   &clienteSpec,
	models.TipoProveedor: &proveedorSpec,
}

// SpecFor returns the destination spec for an entity type
func SpecFor(tipo string) (*EntitySpec, bool) {
	spec, ok := specs[tipo]
	return spec, ok
}

// NormalizeValue canonicalizes a scalar payload value: empty or
// whitespace-only strings and nil become SQL NULL; everything else passes
// through unchanged.
func NormalizeValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return s
	}
	return v
}

// MissingRequired returns the required payload keys that are absent or
// normalize to NULL, including the regime-conditional ones.
func (s *EntitySpec) MissingRequired(payload map[string]interface{}) []string {
	required := append([]string{}, s.Required...)
	if len(s.RequiredByRegimen) > 0 {
		if regimen, ok := payload["tipo_regimen"].(string); ok {
			required = append(required, s.RequiredByRegimen[regimen]...)
		}
	}

	var missing []string
	for _, key := range required {
		if NormalizeValue(payload[key]) == nil {
			missing = append(missing, key)
		}
	}
	return missing
}

// BuildRow maps a payload onto destination columns, normalizing every scalar.
// Columns come back in the spec's declaration order so the generated SQL is
// stable.
func (s *EntitySpec) BuildRow(payload map[string]interface{}) ([]string, []interface{}) {
	columns := make([]string, 0, len(s.Fields))
	values := make([]interface{}, 0, len(s.Fields))
	for _, f := range s.Fields {
		columns = append(columns, f.Column)
		values = append(values, NormalizeValue(payload[f.PayloadKey]))
	}
	return columns, values
}
