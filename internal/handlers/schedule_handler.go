package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httpresp"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	ucSchedule "github.com/CareMeshHealth/hospital-scheduler/internal/usecase/schedule"
)

type ScheduleHandler struct {
	db           *gorm.DB
	createSlotUC *ucSchedule.CreateSlot
}

func NewScheduleHandler(db *gorm.DB, createSlotUC *ucSchedule.CreateSlot) *ScheduleHandler {
	return &ScheduleHandler{db: db, createSlotUC: createSlotUC}
}

type CreateScheduleRequest struct {
	DoctorID    string    `json:"doctor_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"required"`
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "doctor_id, start_time and duration_min are required.")
		return
	}

	sched, err := h.createSlotUC.Execute(c.Request.Context(), req.DoctorID, req.StartTime, req.DurationMin)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, sched)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	var sched models.Schedule
	if err := h.db.First(&sched, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", "Schedule not found.")
		return
	}
	httpresp.OK(c, sched)
}

func (h *ScheduleHandler) List(c *gin.Context) {
	q := h.db.Order("start_time ASC")

	if doctorID := c.Query("doctor_id"); doctorID != "" {
		q = q.Where("doctor_id = ?", doctorID)
	}

	var schedules []models.Schedule
	if err := q.Find(&schedules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "Could not list schedules.")
		return
	}
	httpresp.List(c, schedules)
}

// Delete removes a slot that no appointment references.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var count int64
	h.db.Model(&models.Appointment{}).Where("schedule_id = ?", id).Count(&count)
	if count > 0 {
		httperr.Conflicted(c, "schedule_in_use", "Slot is referenced by an appointment.")
		return
	}

	res := h.db.Delete(&models.Schedule{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_schedule", "Could not delete schedule.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "schedule_not_found", "Schedule not found.")
		return
	}
	httpresp.OK(c, gin.H{"message": "Schedule deleted"})
}
