package models

// Regime values for clientes and proveedores
const (
	RegimenNatural  = "natural"
	RegimenJuridica = "juridica"
)

// EmpleadoPayload is the public registration form for an employee.
// The natural business key is the cedula (document number).
type EmpleadoPayload struct {
	Nombres                 string `json:"nombres"`
	Apellidos               string `json:"apellidos"`
	Cedula                  string `json:"cedula"`
	FechaNacimiento         string `json:"fecha_nacimiento,omitempty"`
	Telefono                string `json:"telefono,omitempty"`
	Correo                  string `json:"correo,omitempty"`
	Direccion               string `json:"direccion,omitempty"`
	Ciudad                  string `json:"ciudad,omitempty"`
	Cargo                   string `json:"cargo,omitempty"`
	Sede                    string `json:"sede,omitempty"`
	FechaIngreso            string `json:"fecha_ingreso,omitempty"`
	EPS                     string `json:"eps,omitempty"`
	FondoPension            string `json:"fondo_pension,omitempty"`
	URLDocumentoIdentidad   string `json:"url_documento_identidad"`
	URLCertificacionBancaria string `json:"url_certificacion_bancaria"`
	URLCertificadoEPS       string `json:"url_certificado_eps"`
	URLCertificadoPension   string `json:"url_certificado_pension"`
	URLHojaVida             string `json:"url_hoja_vida"`
}

// ClientePayload is the public registration form for a client.
// The natural business key is the NIT.
type ClientePayload struct {
	TipoRegimen        string   `json:"tipo_regimen"`
	NIT                string   `json:"nit"`
	DigitoVerificacion string   `json:"digito_verificacion,omitempty"`
	RazonSocial        string   `json:"razon_social,omitempty"`
	Nombres            string   `json:"nombres,omitempty"`
	Apellidos          string   `json:"apellidos,omitempty"`
	Correo             string   `json:"correo,omitempty"`
	Telefono           string   `json:"telefono,omitempty"`
	Direccion          string   `json:"direccion,omitempty"`
	Ciudad             string   `json:"ciudad,omitempty"`
	Departamento       string   `json:"departamento,omitempty"`
	CodigoCIIU         string   `json:"codigo_ciiu,omitempty"`
	ActividadEconomica string   `json:"actividad_economica,omitempty"`
	RepLegalNombre     string   `json:"rep_legal_nombre,omitempty"`
	RepLegalCedula     string   `json:"rep_legal_cedula,omitempty"`
	RepLegalCorreo     string   `json:"rep_legal_correo,omitempty"`
	GranContribuyente  *bool    `json:"gran_contribuyente,omitempty"`
	Autorretenedor     *bool    `json:"autorretenedor,omitempty"`
	ResponsableIVA     *bool    `json:"responsable_iva,omitempty"`
	DeclaranteRenta    *bool    `json:"declarante_renta,omitempty"`
	Cupo               *float64 `json:"cupo,omitempty"`
	Plazo              *int     `json:"plazo,omitempty"`

	URLRut                  string `json:"url_rut"`
	URLCamaraComercio       string `json:"url_camara_comercio,omitempty"`
	URLDocumentoIdentidad   string `json:"url_documento_identidad,omitempty"`
	URLCertificacionBancaria string `json:"url_certificacion_bancaria,omitempty"`
	URLEstadosFinancieros   string `json:"url_estados_financieros,omitempty"`
	URLCertificadoSagrilaft string `json:"url_certificado_sagrilaft"`
}

// ProveedorPayload is the public registration form for a supplier.
// The natural business key is the NIT.
type ProveedorPayload struct {
	TipoRegimen        string   `json:"tipo_regimen"`
	NIT                string   `json:"nit"`
	DigitoVerificacion string   `json:"digito_verificacion,omitempty"`
	RazonSocial        string   `json:"razon_social,omitempty"`
	Nombres            string   `json:"nombres,omitempty"`
	Apellidos          string   `json:"apellidos,omitempty"`
	Correo             string   `json:"correo,omitempty"`
	Telefono           string   `json:"telefono,omitempty"`
	Direccion          string   `json:"direccion,omitempty"`
	Ciudad             string   `json:"ciudad,omitempty"`
	Departamento       string   `json:"departamento,omitempty"`
	CodigoCIIU         string   `json:"codigo_ciiu,omitempty"`
	RepLegalNombre     string   `json:"rep_legal_nombre,omitempty"`
	RepLegalCedula     string   `json:"rep_legal_cedula,omitempty"`
	Banco              string   `json:"banco,omitempty"`
	TipoCuenta         string   `json:"tipo_cuenta,omitempty"`
	NumeroCuenta       string   `json:"numero_cuenta,omitempty"`
	CupoAprobado       *float64 `json:"cupo_aprobado,omitempty"`

	URLRut                   string `json:"url_rut"`
	URLCamaraComercio        string `json:"url_camara_comercio,omitempty"`
	URLDocumentoIdentidad    string `json:"url_documento_identidad,omitempty"`
	URLCertificacionBancaria string `json:"url_certificacion_bancaria"`
	URLComposicionAccionaria string `json:"url_composicion_accionaria,omitempty"`
	URLCertificadoSagrilaft  string `json:"url_certificado_sagrilaft,omitempty"`
}
