package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
)

const (
	ContextProfileID = "profileID"
	ContextUserRole  = "userRole"
	ContextBarberID  = "barberID"
)

// AuthMiddleware valida o Bearer token (HS256) emitido pelo provedor de
// autenticação. O "sub" é o id do profile.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token não informado.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho Authorization inválido.")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(
			strings.TrimSpace(parts[1]),
			claims,
			func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido ou expirado.")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token sem subject.")
			return
		}

		profileID, err := uuid.Parse(sub)
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Subject inválido.")
			return
		}

		role, _ := claims["role"].(string)

		c.Set(ContextProfileID, profileID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func ProfileID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextProfileID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func BarberID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextBarberID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
