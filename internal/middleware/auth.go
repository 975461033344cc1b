package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/andessoft/registro-api/internal/serviceerror"
)

// Auth validates the Bearer JWT on back-office routes and stores the subject
// claim in the gin context under "userID"
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthenticated(c, "Authorization header must be a Bearer token")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthenticated(c, "invalid token claims")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			abortUnauthenticated(c, "token is missing the subject claim")
			return
		}

		c.Set("userID", sub)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, description string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		serviceerror.CustomServiceError(serviceerror.UnauthenticatedError, description))
}
