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
	"github.com/CareMeshHealth/hospital-scheduler/internal/validators"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type PatientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	UserID    string `json:"user_id"`
}

type RegisterPatientRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
}

func (r *PatientRequest) validate() error {
	if err := validators.ValidateName(r.FirstName); err != nil {
		return err
	}
	if err := validators.ValidateName(r.LastName); err != nil {
		return err
	}
	if err := validators.ValidatePhone(r.Phone); err != nil {
		return err
	}
	if r.Gender != "" {
		if err := validators.ValidateGender(r.Gender); err != nil {
			return err
		}
	}
	return nil
}

func parseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, httperr.Validation("invalid_birth_date")
	}
	return &d, nil
}

// ======================================================
// CRUD
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	var patients []models.Patient
	if err := h.db.Order("id ASC").Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Could not list patients.")
		return
	}
	httpresp.List(c, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	var patient models.Patient
	if err := h.db.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}
	httpresp.OK(c, patient)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient payload.")
		return
	}
	if err := req.validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var patient models.Patient
	err = h.db.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.Patients)
		if err != nil {
			return err
		}
		patient = models.Patient{
			ID:        id,
			UserID:    req.UserID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			BirthDate: birthDate,
			Gender:    req.Gender,
			Address:   req.Address,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, patient)
}

// Register creates the login account and the patient profile in one
// transaction.
func (h *PatientHandler) Register(c *gin.Context) {
	var req RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid registration payload.")
		return
	}

	if err := validators.ValidatePhone(req.Phone); err != nil {
		httperr.Respond(c, err)
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var patient models.Patient
	err = h.db.Transaction(func(tx *gorm.DB) error {
		user, err := createUser(tx, req.Username, req.Password, req.Email, models.RolePatient)
		if err != nil {
			return err
		}

		id, err := sequence.Next(tx, sequence.Patients)
		if err != nil {
			return err
		}
		patient = models.Patient{
			ID:        id,
			UserID:    user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			BirthDate: birthDate,
			Gender:    req.Gender,
			Address:   req.Address,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient payload.")
		return
	}
	if err := req.validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.Email = req.Email
	patient.Phone = req.Phone
	patient.Gender = req.Gender
	patient.Address = req.Address
	if birthDate != nil {
		patient.BirthDate = birthDate
	}

	if err := h.db.Save(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_patient", "Could not update patient.")
		return
	}
	httpresp.OK(c, patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.Patient{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_patient", "Could not delete patient.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}
	httpresp.OK(c, gin.H{"message": "Patient deleted"})
}

// ======================================================
// APPOINTMENT VIEWS
// ======================================================

func (h *PatientHandler) Appointments(c *gin.Context) {
	patientID := c.Param("id")

	if err := h.db.First(&models.Patient{}, "id = ?", patientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.Preload("Schedule").
		Where("patient_id = ?", patientID).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}
	httpresp.List(c, appointments)
}

func (h *PatientHandler) SortedAppointments(c *gin.Context) {
	patientID := c.Param("id")

	if err := h.db.First(&models.Patient{}, "id = ?", patientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.Preload("Schedule").
		Where("patient_id = ?", patientID).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.OK(c, domain.Partition(appointments, time.Now()))
}
