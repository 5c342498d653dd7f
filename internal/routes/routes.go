package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	"github.com/CareMeshHealth/hospital-scheduler/internal/config"
	"github.com/CareMeshHealth/hospital-scheduler/internal/handlers"
	infraRepo "github.com/CareMeshHealth/hospital-scheduler/internal/infra/repository"
	"github.com/CareMeshHealth/hospital-scheduler/internal/middleware"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/tokens"
	ucAppointment "github.com/CareMeshHealth/hospital-scheduler/internal/usecase/appointment"
	ucSchedule "github.com/CareMeshHealth/hospital-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, denylist *tokens.Denylist) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(schedulingRepo, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(schedulingRepo, auditDispatcher)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(schedulingRepo, auditDispatcher)
	deleteUC := ucAppointment.NewDeleteAppointment(schedulingRepo, auditDispatcher)
	setStatusUC := ucAppointment.NewSetAppointmentStatus(schedulingRepo, auditDispatcher)

	setAvailabilityUC := ucSchedule.NewSetAvailability(schedulingRepo, auditDispatcher)
	createSlotUC := ucSchedule.NewCreateSlot(schedulingRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, denylist)
	userHandler := handlers.NewUserHandler(db)
	departmentHandler := handlers.NewDepartmentHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db, setAvailabilityUC)
	patientHandler := handlers.NewPatientHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db, createSlotUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		bookUC,
		cancelUC,
		rescheduleUC,
		deleteUC,
		setStatusUC,
	)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH / REGISTRATION
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/patients/register", patientHandler.Register)
		api.POST("/doctors/register", doctorHandler.Register)

		// ------------------------------
		// AUTHENTICATED API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, denylist))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/users/me", userHandler.GetMe)

			adminOnly := middleware.RequireRoles(models.RoleAdmin)
			staff := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor)
			anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor, models.RolePatient)

			// ------------------------------
			// USERS (ADMIN)
			// ------------------------------
			secured.GET("/users", adminOnly, userHandler.List)
			secured.POST("/users", adminOnly, userHandler.Create)
			secured.GET("/users/:id", adminOnly, userHandler.Get)
			secured.PUT("/users/:id", adminOnly, userHandler.Update)
			secured.DELETE("/users/:id", adminOnly, userHandler.Delete)

			// ------------------------------
			// DEPARTMENTS
			// ------------------------------
			secured.GET("/departments", anyRole, departmentHandler.List)
			secured.GET("/departments/:id", anyRole, departmentHandler.Get)
			secured.POST("/departments", adminOnly, departmentHandler.Create)
			secured.PUT("/departments/:id", adminOnly, departmentHandler.Update)
			secured.DELETE("/departments/:id", adminOnly, departmentHandler.Delete)

			// ------------------------------
			// DOCTORS
			// ------------------------------
			secured.GET("/doctors", anyRole, doctorHandler.List)
			secured.GET("/doctors/:id", anyRole, doctorHandler.Get)
			secured.POST("/doctors", adminOnly, doctorHandler.Create)
			secured.PUT("/doctors/:id", adminOnly, doctorHandler.Update)
			secured.DELETE("/doctors/:id", adminOnly, doctorHandler.Delete)

			secured.POST("/doctors/:id/set-availability", staff, doctorHandler.SetAvailability)
			secured.GET("/doctors/:id/schedule", anyRole, doctorHandler.Schedule)
			secured.GET("/doctors/:id/appointments", staff, doctorHandler.Appointments)
			secured.GET("/doctors/:id/appointments/sorted", staff, doctorHandler.SortedAppointments)

			// ------------------------------
			// PATIENTS
			// ------------------------------
			secured.GET("/patients", staff, patientHandler.List)
			secured.GET("/patients/:id", anyRole, patientHandler.Get)
			secured.POST("/patients", staff, patientHandler.Create)
			secured.PUT("/patients/:id", anyRole, patientHandler.Update)
			secured.DELETE("/patients/:id", adminOnly, patientHandler.Delete)

			secured.GET("/patients/:id/appointments", anyRole, patientHandler.Appointments)
			secured.GET("/patients/:id/appointments/sorted", anyRole, patientHandler.SortedAppointments)
			secured.GET("/patients/:id/medical-records", staff, medicalRecordHandler.ListForPatient)

			// ------------------------------
			// SCHEDULES (SLOTS)
			// ------------------------------
			secured.GET("/schedules", anyRole, scheduleHandler.List)
			secured.GET("/schedules/:id", anyRole, scheduleHandler.Get)
			secured.POST("/schedules", staff, scheduleHandler.Create)
			secured.DELETE("/schedules/:id", adminOnly, scheduleHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", staff, appointmentHandler.List)
			secured.GET("/appointments/:id", anyRole, appointmentHandler.Get)
			secured.POST("/appointments", anyRole, appointmentHandler.Create)
			secured.PUT("/appointments/:id/cancel", anyRole, appointmentHandler.Cancel)
			secured.PUT("/appointments/:id/reschedule", anyRole, appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/status", staff, appointmentHandler.SetStatus)
			secured.DELETE("/appointments/:id", adminOnly, appointmentHandler.Delete)

			// ------------------------------
			// MEDICAL RECORDS
			// ------------------------------
			secured.GET("/medical-records", staff, medicalRecordHandler.List)
			secured.GET("/medical-records/:id", staff, medicalRecordHandler.Get)
			secured.POST("/medical-records", staff, medicalRecordHandler.Create)
			secured.PUT("/medical-records/:id", staff, medicalRecordHandler.Update)
			secured.DELETE("/medical-records/:id", adminOnly, medicalRecordHandler.Delete)

			secured.GET("/audit-logs", adminOnly, auditLogsHandler.List)
		}
	}
}
