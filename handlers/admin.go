package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminRepo "sewakantor/database/repository/admin"
	"sewakantor/utils"
)

// AdminHandler serves admin authentication.
type AdminHandler struct {
	Repo adminRepo.AdminRepository
}

func NewAdminHandler(repo adminRepo.AdminRepository) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

// Login handles POST /api/v1/admin/login and returns a bearer token.
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	admin, err := h.Repo.GetByEmail(input.Email)
	if err != nil {
		// Same response as a bad password; do not leak which emails exist.
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(admin.ID, admin.Email, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("token generation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	}, "Login successful")
}

// Profile handles GET /api/v1/admin/me.
func (h *AdminHandler) Profile(c *gin.Context) {
	adminID := c.GetString("adminID")
	admin, err := h.Repo.GetByID(adminID)
	if err != nil {
		respondError(c, http.StatusNotFound, "admin not found")
		return
	}
	respond(c, http.StatusOK, admin, "Profile retrieved")
}
