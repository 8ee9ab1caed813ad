package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type BarberResolver interface {
	GetBarberByProfile(ctx context.Context, profileID uuid.UUID) (*models.Barber, error)
}

// RequireBarber resolve o barbeiro do profile autenticado; rotas /me só
// existem para quem tem cadastro de barbeiro.
func RequireBarber(repo BarberResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := ProfileID(c)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "unauthorized", "Não autenticado.")
			return
		}

		barber, err := repo.GetBarberByProfile(c.Request.Context(), profileID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(c, http.StatusForbidden, "not_a_barber", "Perfil sem cadastro de barbeiro.")
			return
		}
		if err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Erro interno.")
			return
		}

		c.Set(ContextBarberID, barber.ID)
		c.Next()
	}
}
