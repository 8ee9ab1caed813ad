package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/config"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/handlers"
	infraRepo "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/infra/repository"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/middleware"
	ucAppointment "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/usecase/appointment"
)

type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Audit   *audit.Dispatcher
	Limiter middleware.Limiter
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Log),
		middleware.CORSMiddleware(),
	)

	rateLimit := middleware.RateLimit(deps.Limiter, deps.Log, true)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		deps.Log,
		cfg.MinAdvanceMinutes,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		deps.Audit,
		deps.Log,
		cfg.DefaultTimezone,
		cfg.MinAdvanceMinutes,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, deps.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, deps.Audit)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, deps.Audit)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		appointmentRepo,
		getAvailabilityUC,
		cfg.DefaultTimezone,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	meHandler := handlers.NewMeHandler(deps.DB)
	serviceHandler := handlers.NewServiceHandler(appointmentRepo)
	workingHoursHandler := handlers.NewWorkingHoursHandler(appointmentRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	// ======================================================
	// ❤️ HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public", rateLimit)
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/barbers/:barberId/services", publicHandler.ListServices)
			publicAPI.GET("/barbers/:barberId/availability", publicHandler.Availability)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/appointments", rateLimit, appointmentHandler.Create)

			barber := secured.Group("/me")
			barber.Use(middleware.RequireBarber(appointmentRepo))
			{
				barber.GET("/working-hours", workingHoursHandler.Get)
				barber.PUT("/working-hours", workingHoursHandler.Update)

				barber.GET("/services", serviceHandler.List)
				barber.POST("/services", serviceHandler.Create)
				barber.PATCH("/services/:id", serviceHandler.Update)

				// ------------------------------
				// APPOINTMENTS
				// ------------------------------
				barber.GET("/appointments", appointmentHandler.ListByDate)
				barber.GET("/appointments/month", appointmentHandler.ListByMonth)
				barber.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				barber.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				barber.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

				barber.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
