package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/models"
	"github.com/andessoft/registro-api/internal/service"
	"github.com/andessoft/registro-api/internal/serviceerror"
)

// TokenHandler handles the registration token endpoints
type TokenHandler struct {
	tokenService *service.TokenService
	logger       *logrus.Logger
}

// NewTokenHandler creates a new token handler instance
func NewTokenHandler(tokenService *service.TokenService, logger *logrus.Logger) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
		logger:       logger,
	}
}

// GenerateToken handles POST /tokens/generar
func (h *TokenHandler) GenerateToken(c *gin.Context) {
	var req models.TokenGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, err.Error()))
		return
	}

	resp, svcErr := h.tokenService.IssueToken(c.Request.Context(), req.Tipo, GetUserIDFromContext(c))
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	SendCreatedResponse(c, resp)
}

// ValidateToken handles GET /tokens/validar/:token. This is a public
// endpoint used by the form frontend before rendering; the validation body
// is returned on failure too so the frontend can show the exact motivo.
func (h *TokenHandler) ValidateToken(c *gin.Context) {
	validation, svcErr := h.tokenService.ValidateToken(c.Request.Context(), c.Param("token"))
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	if !validation.Valido {
		status := http.StatusGone
		if validation.Motivo == models.MotivoNoEncontrado {
			status = http.StatusNotFound
		}
		c.JSON(status, validation)
		return
	}

	SendOKResponse(c, validation)
}

// ListTokens handles GET /tokens/listar
func (h *TokenHandler) ListTokens(c *gin.Context) {
	tokens, svcErr := h.tokenService.ListTokens(c.Request.Context())
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	if tokens == nil {
		tokens = []models.TokenWithIssuer{}
	}
	SendOKResponse(c, tokens)
}

// DeleteToken handles DELETE /tokens/eliminar/:id
func (h *TokenHandler) DeleteToken(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "id must be a number"))
		return
	}

	if svcErr := h.tokenService.DeleteToken(c.Request.Context(), id); svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}

	SendOKResponse(c, gin.H{"message": "Token eliminado"})
}
