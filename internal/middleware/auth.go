package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/identity"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextClaims    = "claims"
)

// TokenParser é o lado de validação do emissor de tokens.
type TokenParser interface {
	Parse(ctx context.Context, raw string) (*identity.Claims, error)
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			switch {
			case httperr.IsBusiness(err, "token_revoked"):
				httperr.Unauthorized(c, "token_revoked", "Session has been logged out")
			case httperr.IsBusiness(err, "invalid_token"):
				httperr.Unauthorized(c, "invalid_token", "Invalid or expired token")
			default:
				httperr.Unavailable(c, "auth_unavailable", "Could not validate session")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// UserID devolve o id do usuário autenticado ("" fora de rotas protegidas).
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Claims(c *gin.Context) *identity.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*identity.Claims)
	return claims
}
