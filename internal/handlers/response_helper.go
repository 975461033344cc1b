package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andessoft/registro-api/internal/serviceerror"
)

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendServiceError translates a service-layer error into its HTTP status
func SendServiceError(c *gin.Context, svcErr *serviceerror.ServiceError) {
	c.JSON(statusForServiceError(svcErr), svcErr)
}

func statusForServiceError(svcErr *serviceerror.ServiceError) int {
	switch svcErr.Error {
	case serviceerror.InvalidRequestError.Error, serviceerror.ValidationError.Error:
		return http.StatusBadRequest
	case serviceerror.UnauthenticatedError.Error:
		return http.StatusUnauthorized
	case serviceerror.ResourceNotFoundError.Error:
		return http.StatusNotFound
	case serviceerror.AlreadyProcessedError.Error,
		serviceerror.InvalidStateError.Error,
		serviceerror.ConflictError.Error:
		return http.StatusConflict
	case serviceerror.TokenUsedError.Error, serviceerror.TokenExpiredError.Error:
		return http.StatusGone
	case serviceerror.UpstreamError.Error:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetUserIDFromContext extracts the authenticated user id set by the auth
// middleware
func GetUserIDFromContext(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return userID.(string)
}
