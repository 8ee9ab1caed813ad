package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httpresp"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/middleware"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type WorkingHoursHandler struct {
	repo domain.Repository
}

func NewWorkingHoursHandler(repo domain.Repository) *WorkingHoursHandler {
	return &WorkingHoursHandler{repo: repo}
}

type WorkingDayConfig struct {
	DayOfWeek  *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	IsActive   bool   `json:"is_active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)

	hours, err := h.repo.ListWorkingHours(c.Request.Context(), barberID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, hours)
}

// Update substitui a semana inteira.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	rows := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[*d.DayOfWeek] {
			httperr.BadRequest(c, "duplicated_day", "Dia da semana repetido.")
			return
		}
		seen[*d.DayOfWeek] = true

		if code, ok := validateDay(d); !ok {
			httperr.BadRequest(c, code, "Horário de funcionamento inválido.")
			return
		}

		rows = append(rows, models.WorkingHours{
			DayOfWeek:  *d.DayOfWeek,
			IsActive:   d.IsActive,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	if err := h.repo.ReplaceWorkingHours(c.Request.Context(), barberID, rows); err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, rows)
}

// validateDay exige abertura antes do fechamento e pausa, quando houver,
// completa e dentro do expediente. Dia inativo não é validado.
func validateDay(d WorkingDayConfig) (string, bool) {
	if !d.IsActive {
		return "", true
	}

	start, okS := availability.ParseClock(d.StartTime)
	end, okE := availability.ParseClock(d.EndTime)
	if !okS || !okE || start >= end {
		return "invalid_hours", false
	}

	if d.BreakStart == "" && d.BreakEnd == "" {
		return "", true
	}

	bs, okBS := availability.ParseClock(d.BreakStart)
	be, okBE := availability.ParseClock(d.BreakEnd)
	if !okBS || !okBE || bs >= be || bs < start || be > end {
		return "invalid_break", false
	}

	return "", true
}
