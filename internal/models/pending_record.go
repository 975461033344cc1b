package models

// Workflow states of a pending registration record
const (
	EstadoPendiente          = "pendiente"
	EstadoAprobado           = "aprobado"
	EstadoRechazado          = "rechazado"
	EstadoArchivadoAprobado  = "archivado_aprobado"
	EstadoArchivadoRechazado = "archivado_rechazado"

	// EstadoCreadoContabilidad is stamped by the downstream accounting
	// integration, never by this service. It is listed in the historial.
	EstadoCreadoContabilidad = "creado_contabilidad"
)

// ArchivedState returns the archive counterpart of a decided state.
// Only aprobado and rechazado records can be archived.
func ArchivedState(estado string) (string, bool) {
	switch estado {
	case EstadoAprobado:
		return EstadoArchivadoAprobado, true
	case EstadoRechazado:
		return EstadoArchivadoRechazado, true
	default:
		return "", false
	}
}

// RestoredState returns the pre-archive state of an archived record
func RestoredState(estado string) (string, bool) {
	switch estado {
	case EstadoArchivadoAprobado:
		return EstadoAprobado, true
	case EstadoArchivadoRechazado:
		return EstadoRechazado, true
	default:
		return "", false
	}
}

// PendingRecord is a submitted-but-undecided registration awaiting approval.
// Datos holds the entity-specific payload as an opaque JSON blob; its shape
// is decided by Tipo.
type PendingRecord struct {
	ID                int64   `db:"id" json:"id"`
	Tipo              string  `db:"tipo" json:"tipo"`
	Estado            string  `db:"estado" json:"estado"`
	Datos             JSON    `db:"datos" json:"datos"`
	TokenID           *int64  `db:"token_id" json:"token_id,omitempty"`
	CreadoPor         string  `db:"creado_por" json:"creado_por"`
	CreadoEn          int64   `db:"creado_en" json:"creado_en"`
	DecididoPor       *string `db:"decidido_por" json:"decidido_por,omitempty"`
	DecididoEn        *int64  `db:"decidido_en" json:"decidido_en,omitempty"`
	MotivoRechazo     *string `db:"motivo_rechazo" json:"motivo_rechazo,omitempty"`
	RegistroDestinoID *int64  `db:"registro_destino_id" json:"registro_destino_id,omitempty"`
}

// RejectRequest is the body of POST /aprobaciones/rechazar/:id
type RejectRequest struct {
	Motivo string `json:"motivo"`
}

// ApproveRequest is the body of POST /aprobaciones/aprobar/:id. Overrides
// are reviewer-supplied field corrections merged onto the stored payload.
type ApproveRequest struct {
	Overrides map[string]interface{} `json:"overrides"`
}
