package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httpresp"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
	ucSchedule "github.com/CareMeshHealth/hospital-scheduler/internal/usecase/schedule"
	"github.com/CareMeshHealth/hospital-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type DoctorHandler struct {
	db                *gorm.DB
	setAvailabilityUC *ucSchedule.SetAvailability
}

func NewDoctorHandler(
	db *gorm.DB,
	setAvailabilityUC *ucSchedule.SetAvailability,
) *DoctorHandler {
	return &DoctorHandler{
		db:                db,
		setAvailabilityUC: setAvailabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDoctorRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
}

type RegisterDoctorRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	Email        string `json:"email" binding:"required,email"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
}

type SetAvailabilityRequest struct {
	Availability models.WeeklyTemplate `json:"availability" binding:"required"`
}

// ======================================================
// CRUD
// ======================================================

func (h *DoctorHandler) List(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.db.Preload("Department").Order("id ASC").Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}
	httpresp.List(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	var doctor models.Doctor
	if err := h.db.Preload("Department").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}
	httpresp.OK(c, doctor)
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor payload.")
		return
	}

	if err := validators.ValidatePhone(req.Phone); err != nil {
		httperr.Respond(c, err)
		return
	}

	var user models.User
	if err := h.db.Where("id = ? AND role = ?", req.UserID, models.RoleDoctor).
		First(&user).Error; err != nil {
		httperr.BadRequest(c, "invalid_user", "User missing or not a doctor account.")
		return
	}

	if err := h.db.First(&models.Department{}, "id = ?", req.DepartmentID).Error; err != nil {
		httperr.NotFound(c, "department_not_found", "Department not found.")
		return
	}

	var doctor models.Doctor
	err := h.db.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.Doctors)
		if err != nil {
			return err
		}
		doctor = models.Doctor{
			ID:           id,
			UserID:       req.UserID,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			DepartmentID: req.DepartmentID,
			Availability: models.WeeklyTemplate{},
			Phone:        req.Phone,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, doctor)
}

// Register creates the login account and the doctor profile in one
// transaction.
func (h *DoctorHandler) Register(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid registration payload.")
		return
	}

	if err := validators.ValidatePhone(req.Phone); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.First(&models.Department{}, "id = ?", req.DepartmentID).Error; err != nil {
		httperr.NotFound(c, "department_not_found", "Department not found.")
		return
	}

	var doctor models.Doctor
	err := h.db.Transaction(func(tx *gorm.DB) error {
		user, err := createUser(tx, req.Username, req.Password, req.Email, models.RoleDoctor)
		if err != nil {
			return err
		}

		id, err := sequence.Next(tx, sequence.Doctors)
		if err != nil {
			return err
		}
		doctor = models.Doctor{
			ID:           id,
			UserID:       user.ID,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			DepartmentID: req.DepartmentID,
			Availability: models.WeeklyTemplate{},
			Phone:        req.Phone,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, doctor)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor payload.")
		return
	}

	var doctor models.Doctor
	if err := h.db.First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	doctor.DepartmentID = req.DepartmentID
	doctor.Phone = req.Phone

	if err := h.db.Save(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_update_doctor", "Could not update doctor.")
		return
	}
	httpresp.OK(c, doctor)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.Doctor{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_doctor", "Could not delete doctor.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}
	httpresp.OK(c, gin.H{"message": "Doctor deleted"})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *DoctorHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Availability template is required.")
		return
	}

	result, err := h.setAvailabilityUC.Execute(c.Request.Context(), c.Param("id"), req.Availability)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, result)
}

// Schedule lists a doctor's available slots, optionally narrowed to an
// inclusive [start_date, end_date] window, ascending by start time.
func (h *DoctorHandler) Schedule(c *gin.Context) {
	doctorID := c.Param("id")

	if err := h.db.First(&models.Doctor{}, "id = ?", doctorID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	q := h.db.Where("doctor_id = ? AND is_available = ?", doctorID, true)

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr != "" || endStr != "" {
		start, end, err := dateRange(startStr, endStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD bounds.")
			return
		}
		q = q.Where("start_time >= ? AND start_time < ?", start, end)
	}

	var schedules []models.Schedule
	if err := q.Order("start_time ASC").Find(&schedules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedule", "Could not list the schedule.")
		return
	}
	httpresp.List(c, schedules)
}

// ======================================================
// APPOINTMENT VIEWS
// ======================================================

func (h *DoctorHandler) Appointments(c *gin.Context) {
	doctorID := c.Param("id")

	if err := h.db.First(&models.Doctor{}, "id = ?", doctorID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.Preload("Schedule").
		Where("doctor_id = ?", doctorID).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}
	httpresp.List(c, appointments)
}

func (h *DoctorHandler) SortedAppointments(c *gin.Context) {
	doctorID := c.Param("id")

	if err := h.db.First(&models.Doctor{}, "id = ?", doctorID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.Preload("Schedule").
		Where("doctor_id = ?", doctorID).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.OK(c, domain.Partition(appointments, time.Now()))
}
