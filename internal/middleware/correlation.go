package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/andessoft/registro-api/pkg/utils"
)

// CorrelationID attaches a request correlation id, generating one when the
// caller does not supply it
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = utils.GenerateID()
		}

		c.Set("correlationID", correlationID)
		c.Header("X-Correlation-ID", correlationID)
		c.Next()
	}
}
