package handlers

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/models"
	"github.com/andessoft/registro-api/internal/service"
	"github.com/andessoft/registro-api/internal/serviceerror"
)

// ApprovalHandler handles the back-office review endpoints
type ApprovalHandler struct {
	approvalService *service.ApprovalService
	logger          *logrus.Logger
}

// NewApprovalHandler creates a new approval handler instance
func NewApprovalHandler(approvalService *service.ApprovalService, logger *logrus.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		logger:          logger,
	}
}

// Approve handles POST /aprobaciones/aprobar/:id. The body is optional;
// when present it carries reviewer overrides for payload fields.
func (h *ApprovalHandler) Approve(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	// An absent body (EOF before any JSON) means no overrides; anything else
	// that fails to bind is a caller error. Checking ContentLength instead
	// would drop overrides sent with chunked encoding.
	var req models.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, err.Error()))
		return
	}

	destino, svcErr := h.approvalService.Approve(c.Request.Context(), id, req.Overrides, GetUserIDFromContext(c))
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	SendOKResponse(c, gin.H{
		"message": "Registro aprobado",
		"data":    destino,
	})
}

// Reject handles POST /aprobaciones/rechazar/:id
func (h *ApprovalHandler) Reject(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	var req models.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, err.Error()))
		return
	}

	record, svcErr := h.approvalService.Reject(c.Request.Context(), id, req.Motivo, GetUserIDFromContext(c))
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	SendOKResponse(c, gin.H{
		"message": "Registro rechazado",
		"data":    record,
	})
}

// Archive handles POST /aprobaciones/archivar/:id
func (h *ApprovalHandler) Archive(c *gin.Context) {
	h.transition(c, h.approvalService.Archive, "Registro archivado")
}

// Restore handles POST /aprobaciones/restaurar/:id
func (h *ApprovalHandler) Restore(c *gin.Context) {
	h.transition(c, h.approvalService.Restore, "Registro restaurado")
}

// ListPendientes handles GET /aprobaciones/pendientes
func (h *ApprovalHandler) ListPendientes(c *gin.Context) {
	h.list(c, h.approvalService.ListPendientes)
}

// ListHistorial handles GET /aprobaciones/historial
func (h *ApprovalHandler) ListHistorial(c *gin.Context) {
	h.list(c, h.approvalService.ListHistorial)
}

// ListArchivados handles GET /aprobaciones/archivados
func (h *ApprovalHandler) ListArchivados(c *gin.Context) {
	h.list(c, h.approvalService.ListArchivados)
}

func (h *ApprovalHandler) recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "id must be a number"))
		return 0, false
	}
	return id, true
}

func (h *ApprovalHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, id int64) (*models.PendingRecord, *serviceerror.ServiceError),
	message string,
) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	record, svcErr := fn(c.Request.Context(), id)
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	SendOKResponse(c, gin.H{
		"message": message,
		"data":    record,
	})
}

func (h *ApprovalHandler) list(
	c *gin.Context,
	fn func(ctx context.Context) ([]models.PendingRecord, *serviceerror.ServiceError),
) {
	records, svcErr := fn(c.Request.Context())
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	if records == nil {
		records = []models.PendingRecord{}
	}
	SendOKResponse(c, records)
}
