package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httpresp"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
)

type DepartmentHandler struct {
	db *gorm.DB
}

func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{db: db}
}

type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *DepartmentHandler) List(c *gin.Context) {
	var departments []models.Department
	if err := h.db.Order("id ASC").Find(&departments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_departments", "Could not list departments.")
		return
	}
	httpresp.List(c, departments)
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	var dept models.Department
	if err := h.db.First(&dept, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "department_not_found", "Department not found.")
		return
	}
	httpresp.OK(c, dept)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Department name is required.")
		return
	}

	var dept models.Department
	err := h.db.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.Departments)
		if err != nil {
			return err
		}
		dept = models.Department{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
		}
		return tx.Create(&dept).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dept)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Department name is required.")
		return
	}

	var dept models.Department
	if err := h.db.First(&dept, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "department_not_found", "Department not found.")
		return
	}

	dept.Name = req.Name
	dept.Description = req.Description

	if err := h.db.Save(&dept).Error; err != nil {
		httperr.Internal(c, "failed_to_update_department", "Could not update department.")
		return
	}
	httpresp.OK(c, dept)
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.Department{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_department", "Could not delete department.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "department_not_found", "Department not found.")
		return
	}
	httpresp.OK(c, gin.H{"message": "Department deleted"})
}
