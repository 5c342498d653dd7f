package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/config"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/middleware"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
	"github.com/CareMeshHealth/hospital-scheduler/internal/tokens"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	denylist *tokens.Denylist
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, denylist *tokens.Denylist) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, denylist: denylist}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Username and password are required.")
		return
	}

	username := strings.TrimSpace(req.Username)

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	if !user.IsActive {
		httperr.Unauthorized(c, "account_disabled", "Account is disabled.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout revokes the presented token until it would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)
	exp := c.GetInt64(middleware.ContextTokenExp)

	if jti != "" && h.denylist != nil {
		ttl := time.Until(time.Unix(exp, 0))
		if err := h.denylist.Revoke(c.Request.Context(), jti, ttl); err != nil {
			httperr.Internal(c, "failed_to_logout", "Could not revoke the token.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// createUser allocates a user code and inserts the row inside tx.
func createUser(tx *gorm.DB, username, password, email, role string) (*models.User, error) {
	var count int64
	if err := tx.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.Conflict("username_or_email_exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := sequence.Next(tx, sequence.Users)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hashed),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Role:         role,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"exp":  now.Add(time.Duration(h.config.TokenTTLHours) * time.Hour).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
