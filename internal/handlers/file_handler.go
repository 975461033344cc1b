package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/service"
	"github.com/andessoft/registro-api/internal/serviceerror"
	"github.com/andessoft/registro-api/internal/storage"
	"github.com/andessoft/registro-api/pkg/utils"
)

const maxUploadBytes = 10 << 20

// FileHandler proxies supporting-document uploads from the public forms to
// the object storage service. Uploads are gated by the same registration
// token as the form itself, but the token is only checked, never consumed:
// the applicant uploads documents before submitting.
type FileHandler struct {
	tokenService  *service.TokenService
	storageClient *storage.Client
	logger        *logrus.Logger
}

// NewFileHandler creates a new file handler instance
func NewFileHandler(tokenService *service.TokenService, storageClient *storage.Client, logger *logrus.Logger) *FileHandler {
	return &FileHandler{
		tokenService:  tokenService,
		storageClient: storageClient,
		logger:        logger,
	}
}

// Upload handles POST /archivos/subir?tipo=...&token=...
func (h *FileHandler) Upload(c *gin.Context) {
	tipo := c.Query("tipo")
	tokenStr := c.Query("token")
	if tipo == "" || tokenStr == "" {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError,
			"los parámetros tipo y token son obligatorios"))
		return
	}

	validation, svcErr := h.tokenService.ValidateToken(c.Request.Context(), tokenStr)
	if svcErr != nil {
		SendServiceError(c, svcErr)
		return
	}
	if !validation.Valido || validation.Tipo != tipo {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.UnauthenticatedError,
			"el token de registro no es válido para esta carga"))
		return
	}

	// Cap the body before multipart parsing so an oversized upload is cut
	// off mid-read instead of buffered in full and then rejected
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			SendServiceError(c, serviceerror.CustomServiceError(serviceerror.ValidationError,
				"el archivo supera el tamaño máximo de 10MB"))
			return
		}
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError,
			"el campo archivo es obligatorio"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.InternalServerError, "failed to read upload"))
		return
	}
	defer file.Close()

	// Keys are grouped by tipo and token so one applicant's documents land
	// together
	prefix := tokenStr
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	key := fmt.Sprintf("%s/%s/%s%s", tipo, prefix, utils.GenerateID(), sanitizeExtension(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storageClient.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		h.logger.WithError(err).WithField("key", key).Error("Document upload failed")
		SendServiceError(c, serviceerror.CustomServiceError(serviceerror.UpstreamError,
			"no fue posible guardar el archivo"))
		return
	}

	SendCreatedResponse(c, gin.H{"url": url})
}

// sanitizeExtension keeps only a simple lowercase extension from the original
// filename
func sanitizeExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
