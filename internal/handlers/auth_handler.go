package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/models"
	"github.com/mediassist/mediassist-api/internal/utils"
)

type RegisterUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Gender    string `json:"gender"`
}

// RegisterUser creates a patient account with its profile.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		h.errorHandler(c, http.StatusConflict, errors.New("email already registered"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RolePatient,
		Patient: &models.Patient{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			City:      req.City,
			Gender:    req.Gender,
		},
	}

	if err := h.DB.Create(&user).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role))
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
			"profile": gin.H{
				"id":        user.Patient.ID,
				"firstName": user.Patient.FirstName,
				"lastName":  user.Patient.LastName,
			},
		},
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("email and password are required"))
		return
	}

	var user models.User
	err := h.DB.Preload("Patient").Preload("Doctor.Specialty").
		Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role))
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":      user.ID,
			"email":   user.Email,
			"role":    user.Role,
			"profile": userProfile(&user),
		},
		"token": token,
	})
}

// GetCurrentUser returns the profile of the authenticated user.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	err := h.DB.Preload("Patient").Preload("Doctor.Specialty").
		First(&user, "id = ?", userID).Error
	if err != nil {
		h.errorHandler(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"profile": userProfile(&user),
	})
}

// UpdatePatientProfile lets a patient update their own profile fields.
func (h *Handler) UpdatePatientProfile(c *gin.Context) {
	userID, _ := c.Get("userID")
	userRole, _ := c.Get("userRole")
	if userRole != string(models.RolePatient) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var req struct {
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		Phone          string `json:"phone"`
		City           string `json:"city"`
		DateOfBirth    string `json:"dateOfBirth"`
		Gender         string `json:"gender"`
		MedicalHistory string `json:"medicalHistory"`
		Allergies      string `json:"allergies"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, err)
		return
	}

	var patient models.Patient
	if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		h.errorHandler(c, http.StatusNotFound, errors.New("patient profile not found"))
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.MedicalHistory != "" {
		updates["medical_history"] = req.MedicalHistory
	}
	if req.Allergies != "" {
		updates["allergies"] = req.Allergies
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			h.errorHandler(c, http.StatusBadRequest, errors.New("dateOfBirth must be YYYY-MM-DD"))
			return
		}
		updates["date_of_birth"] = dob
	}
	if len(updates) == 0 {
		h.errorHandler(c, http.StatusBadRequest, errors.New("no update fields provided"))
		return
	}

	if err := h.DB.Model(&patient).Updates(updates).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": patient,
	})
}

func userProfile(user *models.User) gin.H {
	switch {
	case user.Role == models.RolePatient && user.Patient != nil:
		return gin.H{
			"id":             user.Patient.ID,
			"firstName":      user.Patient.FirstName,
			"lastName":       user.Patient.LastName,
			"phone":          user.Patient.Phone,
			"city":           user.Patient.City,
			"dateOfBirth":    user.Patient.DateOfBirth,
			"gender":         user.Patient.Gender,
			"medicalHistory": user.Patient.MedicalHistory,
			"allergies":      user.Patient.Allergies,
		}
	case user.Role == models.RoleDoctor && user.Doctor != nil:
		return gin.H{
			"id":             user.Doctor.ID,
			"firstName":      user.Doctor.FirstName,
			"lastName":       user.Doctor.LastName,
			"specialty":      user.Doctor.Specialty.Name,
			"phone":          user.Doctor.Phone,
			"address":        user.Doctor.Address,
			"city":           user.Doctor.City,
			"qualifications": user.Doctor.Qualifications,
			"experience":     user.Doctor.Experience,
			"rating":         user.Doctor.Rating,
			"reviewCount":    user.Doctor.ReviewCount,
		}
	}
	return nil
}
