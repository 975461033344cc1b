package models

// Token validation failure reasons, exposed on the public wire as `motivo`
const (
	MotivoNoEncontrado = "no_encontrado"
	MotivoUsado        = "usado"
	MotivoExpirado     = "expirado"
)

// RegistrationToken is a single-use, time-limited credential granting access
// to one public registration form for one entity type.
type RegistrationToken struct {
	ID        int64  `db:"id" json:"id"`
	Token     string `db:"token" json:"token"`
	Tipo      string `db:"tipo" json:"tipo"`
	CreadoEn  int64  `db:"creado_en" json:"creado_en"`
	ExpiraEn  int64  `db:"expira_en" json:"expira_en"`
	Usado     bool   `db:"usado" json:"usado"`
	UsadoEn   *int64 `db:"usado_en" json:"usado_en,omitempty"`
	CreadoPor string `db:"creado_por" json:"creado_por"`
}

// TokenWithIssuer is a token row with the issuer name joined from usuarios
type TokenWithIssuer struct {
	RegistrationToken
	CreadoPorNombre *string `db:"creado_por_nombre" json:"creado_por_nombre,omitempty"`
}

// TokenGenerateRequest is the body of POST /tokens/generar
type TokenGenerateRequest struct {
	Tipo string `json:"tipo" binding:"required"`
}

// TokenResponse is the issued token plus its public registration URL
type TokenResponse struct {
	RegistrationToken
	URLRegistro string `json:"url_registro"`
}

// TokenValidation is the result of GET /tokens/validar/:token. Motivo is
// only set when Valido is false.
type TokenValidation struct {
	Valido  bool   `json:"valido"`
	Tipo    string `json:"tipo,omitempty"`
	Motivo  string `json:"motivo,omitempty"`
	Message string `json:"message"`
}
