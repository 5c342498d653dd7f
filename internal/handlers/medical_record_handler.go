package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httpresp"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
	"github.com/CareMeshHealth/hospital-scheduler/internal/validators"
)

type MedicalRecordHandler struct {
	db *gorm.DB
}

func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{db: db}
}

type CreateMedicalRecordRequest struct {
	PatientID     string `json:"patient_id" binding:"required"`
	AppointmentID string `json:"appointment_id"`
	DepartmentID  string `json:"department_id"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	Prescription  string `json:"prescription" binding:"required"`
	Notes         string `json:"notes"`
	VisitDate     string `json:"visit_date" binding:"required"`
}

type UpdateMedicalRecordRequest struct {
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

func (h *MedicalRecordHandler) List(c *gin.Context) {
	var records []models.MedicalRecord
	if err := h.db.Order("id ASC").Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Could not list medical records.")
		return
	}
	httpresp.List(c, records)
}

func (h *MedicalRecordHandler) Get(c *gin.Context) {
	var record models.MedicalRecord
	if err := h.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Medical record not found.")
		return
	}
	httpresp.OK(c, record)
}

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid medical record payload.")
		return
	}

	visitDate, err := validators.ValidateVisitDate(req.VisitDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.First(&models.Patient{}, "id = ?", req.PatientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	var appointmentID *string
	if req.AppointmentID != "" {
		if err := h.db.First(&models.Appointment{}, "id = ?", req.AppointmentID).Error; err != nil {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		appointmentID = &req.AppointmentID
	}

	var departmentID *string
	if req.DepartmentID != "" {
		if err := h.db.First(&models.Department{}, "id = ?", req.DepartmentID).Error; err != nil {
			httperr.NotFound(c, "department_not_found", "Department not found.")
			return
		}
		departmentID = &req.DepartmentID
	}

	var record models.MedicalRecord
	err = h.db.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.MedicalRecords)
		if err != nil {
			return err
		}
		record = models.MedicalRecord{
			ID:            id,
			PatientID:     req.PatientID,
			AppointmentID: appointmentID,
			DepartmentID:  departmentID,
			Diagnosis:     req.Diagnosis,
			Prescription:  req.Prescription,
			Notes:         req.Notes,
			VisitDate:     visitDate,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, record)
}

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid medical record payload.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Medical record not found.")
		return
	}

	if req.Diagnosis != "" {
		record.Diagnosis = req.Diagnosis
	}
	if req.Prescription != "" {
		record.Prescription = req.Prescription
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	// gorm refreshes UpdatedAt on Save.
	if err := h.db.Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Could not update medical record.")
		return
	}
	httpresp.OK(c, record)
}

func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.MedicalRecord{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_record", "Could not delete medical record.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "record_not_found", "Medical record not found.")
		return
	}
	httpresp.OK(c, gin.H{"message": "Medical record deleted"})
}

// ListForPatient returns a patient's records, newest visit first.
func (h *MedicalRecordHandler) ListForPatient(c *gin.Context) {
	patientID := c.Param("id")

	if err := h.db.First(&models.Patient{}, "id = ?", patientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	var records []models.MedicalRecord
	if err := h.db.Where("patient_id = ?", patientID).
		Order("visit_date DESC").
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Could not list medical records.")
		return
	}
	httpresp.List(c, records)
}
