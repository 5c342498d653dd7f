package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httpresp"
	"github.com/CareMeshHealth/hospital-scheduler/internal/middleware"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=Admin Doctor Patient"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	IsActive *bool  `json:"is_active"`
}

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}
	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	httpresp.OK(c, user)
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	httpresp.OK(c, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid user payload.")
		return
	}

	var created *models.User
	err := h.db.Transaction(func(tx *gorm.DB) error {
		user, err := createUser(tx, req.Username, req.Password, req.Email, req.Role)
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, created)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid user payload.")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if req.Email != "" {
		var count int64
		h.db.Model(&models.User{}).
			Where("email = ? AND id <> ?", req.Email, user.ID).
			Count(&count)
		if count > 0 {
			httperr.Conflicted(c, "email_exists", "Email already in use.")
			return
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not update password.")
			return
		}
		user.PasswordHash = string(hashed)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update user.")
		return
	}
	httpresp.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.User{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_user", "Could not delete user.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	httpresp.OK(c, gin.H{"message": "User deleted"})
}
