package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httpresp"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/middleware"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type MeResponse struct {
	Profile models.Profile `json:"profile"`
	Barber  *models.Barber `json:"barber"`
}

// GetMe devolve o profile do token e, se houver, o cadastro de barbeiro.
func (h *MeHandler) GetMe(c *gin.Context) {
	profileID, ok := middleware.ProfileID(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var resp MeResponse
	if err := db.First(&resp.Profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
			return
		}
		writeError(c, err)
		return
	}

	var barber models.Barber
	err := db.Where("profile_id = ?", profileID).First(&barber).Error
	switch {
	case err == nil:
		resp.Barber = &barber
	case !errors.Is(err, gorm.ErrRecordNotFound):
		writeError(c, err)
		return
	}

	httpresp.OK(c, resp)
}
