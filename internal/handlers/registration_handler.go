package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/models"
	"github.com/andessoft/registro-api/internal/service"
	"github.com/andessoft/registro-api/internal/serviceerror"
)

// RegistrationHandler handles the token-gated public intake endpoints.
// Each entity type binds its own payload struct so field names and value
// types are enforced at the edge; the required-field check happens in the
// service against the mapping tables.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
	logger              *logrus.Logger
}

// NewRegistrationHandler creates a new registration handler instance
func NewRegistrationHandler(registrationService *service.RegistrationService, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		logger:              logger,
	}
}

// SubmitEmpleado handles POST /registro-publico/empleado/:token
func (h *RegistrationHandler) SubmitEmpleado(c *gin.Context) {
	var payload models.EmpleadoPayload
	h.submit(c, models.TipoEmpleado, &payload)
}

// SubmitCliente handles POST /registro-publico/cliente/:token
func (h *RegistrationHandler) SubmitCliente(c *gin.Context) {
	var payload models.ClientePayload
	h.submit(c, models.TipoCliente, &payload)
}

// SubmitProveedor handles POST /registro-publico/proveedor/:token
func (h *RegistrationHandler) SubmitProveedor(c *gin.Context) {
	var payload models.ProveedorPayload
	h.submit(c, models.TipoProveedor, &payload)
}

func (h *RegistrationHandler) submit(c *gin.Context, tipo string, payload interface{}) {
	if err := c.ShouldBindJSON(payload); err != nil {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, err.Error()))
		return
	}

	datos, err := json.Marshal(payload)
	if err != nil {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InternalServerError, "failed to encode payload"))
		return
	}

	record, svcErr := h.registrationService.Submit(c.Request.Context(), tipo, c.Param("token"), models.JSON(datos))
	if svcErr != nil {
		if status, validation, ok := tokenFailure(svcErr); ok {
			c.JSON(status, validation)
			return
		}
		SendServiceError(c, svcErr)
		return
	}

	SendCreatedResponse(c, gin.H{
		"message": "Registro recibido, queda pendiente de aprobación",
		"data":    record,
	})
}

// tokenFailure translates a token rejection into the same wire shape the
// validator endpoint returns, so the form frontend can branch on motivo on
// both paths.
func tokenFailure(svcErr *serviceerror.ServiceError) (int, *models.TokenValidation, bool) {
	var motivo string
	status := http.StatusGone

	switch svcErr.Error {
	case serviceerror.TokenUsedError.Error:
		motivo = models.MotivoUsado
	case serviceerror.TokenExpiredError.Error:
		motivo = models.MotivoExpirado
	case serviceerror.ResourceNotFoundError.Error:
		motivo = models.MotivoNoEncontrado
		status = http.StatusNotFound
	default:
		return 0, nil, false
	}

	return status, &models.TokenValidation{
		Valido:  false,
		Motivo:  motivo,
		Message: svcErr.ErrorDescription,
	}, true
}
