package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httpresp"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/timezone"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	repo         domain.Repository
	availability *appointment.GetAvailability
	tz           string
}

func NewPublicHandler(
	repo domain.Repository,
	availability *appointment.GetAvailability,
	tz string,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		availability: availability,
		tz:           tz,
	}
}

type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

////////////////////////////////////////////////////////
// BARBERS / SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.repo.ListBarbers(c.Request.Context(), true)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, barbers)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	barberID, ok := h.activeBarber(c)
	if !ok {
		return
	}

	services, err := h.repo.ListServices(c.Request.Context(), barberID, true)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	serviceIDStr := strings.TrimSpace(c.Query("service_id"))
	dateStr := strings.TrimSpace(c.Query("date"))

	if serviceIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "service_id e date são obrigatórios.")
		return
	}

	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id inválido.")
		return
	}

	date, err := timezone.ParseDate(dateStr, h.tz)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	barberID, ok := h.activeBarber(c)
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, AvailabilityResponse{
		Date:  dateStr,
		Slots: slots,
	})
}

// activeBarber lê :barberId e garante que o barbeiro existe e atende.
func (h *PublicHandler) activeBarber(c *gin.Context) (uuid.UUID, bool) {
	barberID, err := uuid.Parse(c.Param("barberId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return uuid.Nil, false
	}

	barber, err := h.repo.GetBarber(c.Request.Context(), barberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return uuid.Nil, false
		}
		writeError(c, err)
		return uuid.Nil, false
	}

	if !barber.Active {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return uuid.Nil, false
	}

	return barber.ID, true
}
