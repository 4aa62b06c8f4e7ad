package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mediassist/mediassist-api/internal/models"
	"github.com/mediassist/mediassist-api/internal/scheduling"
)

// GetDoctors lists active doctors with optional specialty/city filters and
// page-based pagination. Each entry carries an availableNow flag computed
// against the server clock and the doctor's three most recent reviews.
func (h *Handler) GetDoctors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := h.DB.Model(&models.Doctor{}).Where("is_active = ?", true)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Joins("JOIN specialties ON specialties.id = doctors.specialty_id").
			Where("specialties.name ILIKE ?", specialty)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("doctors.city ILIKE ?", city)
	}
	if minRating := c.Query("minRating"); minRating != "" {
		if rating, err := strconv.ParseFloat(minRating, 64); err == nil {
			query = query.Where("doctors.rating >= ?", rating)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	var doctors []models.Doctor
	err := query.Preload("Specialty").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(3)
		}).
		Order("doctors.rating desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&doctors).Error
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(doctors))
	for i := range doctors {
		out = append(out, doctorSummary(&doctors[i], now))
	}

	c.JSON(http.StatusOK, gin.H{
		"doctors": out,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetDoctor returns one doctor with their ten most recent reviews and the
// count of upcoming non-cancelled appointments.
func (h *Handler) GetDoctor(c *gin.Context) {
	var doctor models.Doctor
	err := h.DB.Preload("Specialty").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(10)
		}).
		First(&doctor, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("doctor not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	var upcoming int64
	err = h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND scheduled_at >= ? AND status NOT IN ?",
			doctor.ID, time.Now(), []models.AppointmentStatus{models.StatusCancelled, models.StatusNoShow}).
		Count(&upcoming).Error
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	out := doctorSummary(&doctor, now)
	out["address"] = doctor.Address
	out["latitude"] = doctor.Latitude
	out["longitude"] = doctor.Longitude
	out["upcomingAppointments"] = upcoming

	c.JSON(http.StatusOK, out)
}

// GetSpecialties lists specialties with active doctor counts.
func (h *Handler) GetSpecialties(c *gin.Context) {
	var specialties []models.Specialty
	if err := h.DB.Order("name asc").Find(&specialties).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	type specialtyCount struct {
		SpecialtyID string
		Count       int64
	}
	var counts []specialtyCount
	err := h.DB.Model(&models.Doctor{}).
		Select("specialty_id, count(*) as count").
		Where("is_active = ?", true).
		Group("specialty_id").
		Scan(&counts).Error
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}
	countByID := make(map[string]int64, len(counts))
	for _, sc := range counts {
		countByID[sc.SpecialtyID] = sc.Count
	}

	out := make([]gin.H, 0, len(specialties))
	for _, s := range specialties {
		out = append(out, gin.H{
			"id":          s.ID,
			"name":        s.Name,
			"description": s.Description,
			"doctorCount": countByID[s.ID],
		})
	}

	c.JSON(http.StatusOK, out)
}

// AddReview records a review and folds it into the doctor's running average
// rating. The insert and the aggregate update commit together; the doctor row
// is locked so concurrent reviews cannot lose counts.
func (h *Handler) AddReview(c *gin.Context) {
	var req struct {
		ReviewerName string `json:"reviewerName" binding:"required"`
		Rating       int    `json:"rating" binding:"required"`
		Comment      string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("reviewerName and rating are required"))
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		h.errorHandler(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}

	doctorID := c.Param("id")
	var review models.Review

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doctor, "id = ?", doctorID).Error; err != nil {
			return err
		}

		review = models.Review{
			DoctorID:     doctor.ID,
			ReviewerName: req.ReviewerName,
			Rating:       req.Rating,
			Comment:      req.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		newRating, newCount := foldRating(doctor.Rating, doctor.ReviewCount, req.Rating)
		return tx.Model(&doctor).Updates(map[string]interface{}{
			"rating":       newRating,
			"review_count": newCount,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("doctor not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added successfully",
		"review":  review,
	})
}

// foldRating folds one new rating into a doctor's running average.
func foldRating(rating float64, count, newRating int) (float64, int) {
	next := count + 1
	return (rating*float64(count) + float64(newRating)) / float64(next), next
}

func doctorSummary(d *models.Doctor, now time.Time) gin.H {
	return gin.H{
		"id":              d.ID,
		"name":            d.FullName(),
		"firstName":       d.FirstName,
		"lastName":        d.LastName,
		"specialty":       d.Specialty.Name,
		"city":            d.City,
		"qualifications":  d.Qualifications,
		"experience":      d.Experience,
		"rating":          d.Rating,
		"reviewCount":     d.ReviewCount,
		"consultationFee": d.ConsultationFee,
		"availableFrom":   d.AvailableFrom,
		"availableTo":     d.AvailableTo,
		"workingDays":     []string(d.WorkingDays),
		"isVerified":      d.IsVerified,
		"availableNow": scheduling.AvailableNow(d.WorkingDays,
			d.AvailableFrom, d.AvailableTo, now),
		"reviews": d.Reviews,
	}
}
