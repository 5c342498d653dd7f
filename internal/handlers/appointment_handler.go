package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httpresp"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	ucAppointment "github.com/CareMeshHealth/hospital-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	bookUC       *ucAppointment.BookAppointment
	cancelUC     *ucAppointment.CancelAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	deleteUC     *ucAppointment.DeleteAppointment
	setStatusUC  *ucAppointment.SetAppointmentStatus
}

func NewAppointmentHandler(
	db *gorm.DB,
	bookUC *ucAppointment.BookAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	setStatusUC *ucAppointment.SetAppointmentStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		bookUC:       bookUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		deleteUC:     deleteUC,
		setStatusUC:  setStatusUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	PatientID  string `json:"patient_id" binding:"required"`
	ScheduleID string `json:"schedule_id" binding:"required"`
}

type RescheduleRequest struct {
	NewScheduleID string `json:"new_schedule_id" binding:"required"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "patient_id and schedule_id are required.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), req.PatientID, req.ScheduleID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancelUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "new_schedule_id is required.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), c.Param("id"), req.NewScheduleID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Appointment deleted"})
}

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	ap, err := h.setStatusUC.Execute(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// READS
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.db.Preload("Schedule").Order("id ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}
	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	var ap models.Appointment
	if err := h.db.Preload("Schedule").
		First(&ap, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	httpresp.OK(c, ap)
}
