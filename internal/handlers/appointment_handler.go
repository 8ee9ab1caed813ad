package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httpresp"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/middleware"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *appointment.CreateAppointment
	confirm     *appointment.ConfirmAppointment
	cancel      *appointment.CancelAppointment
	complete    *appointment.CompleteAppointment
	listByDate  *appointment.ListAppointmentsByDate
	listByMonth *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	confirm *appointment.ConfirmAppointment,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	listByDate *appointment.ListAppointmentsByDate,
	listByMonth *appointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		confirm:     confirm,
		cancel:      cancel,
		complete:    complete,
		listByDate:  listByDate,
		listByMonth: listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uuid.UUID `json:"barber_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Date      string    `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string    `json:"time" binding:"required"` // HH:MM
	Notes     string    `json:"notes" binding:"max=255"`
}

// ======================================================
// CREATE (cliente autenticado)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID, ok := middleware.ProfileID(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BarberID:  req.BarberID,
		ClientID:  clientID,
		ServiceID: req.ServiceID,
		Date:      strings.TrimSpace(req.Date),
		Time:      strings.TrimSpace(req.Time),
		Notes:     strings.TrimSpace(req.Notes),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST (painel do barbeiro)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data.")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Informe year e month.")
		return
	}

	items, err := h.listByMonth.Execute(c.Request.Context(), barberID, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// STATUS
// ======================================================

type statusChange func(ctx context.Context, in appointment.StatusChangeInput) (*models.Appointment, error)

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete.Execute)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, run statusChange) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)
	actorID, _ := middleware.ProfileID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := run(c.Request.Context(), appointment.StatusChangeInput{
		BarberID:      barberID,
		ActorID:       actorID,
		AppointmentID: id,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
