package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/matching"
	"github.com/mediassist/mediassist-api/internal/models"
)

// GetSymptoms lists the symptom catalog, optionally filtered by a
// case-insensitive name search.
func (h *Handler) GetSymptoms(c *gin.Context) {
	query := h.DB.Order("name asc")
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var symptoms []models.Symptom
	if err := query.Find(&symptoms).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, symptoms)
}

// GetSymptom returns one symptom with the diseases it appears in.
func (h *Handler) GetSymptom(c *gin.Context) {
	var symptom models.Symptom
	err := h.DB.Preload("Diseases.Disease.RecommendedSpecialty").
		First(&symptom, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("symptom not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	diseases := make([]gin.H, 0, len(symptom.Diseases))
	for _, ds := range symptom.Diseases {
		entry := gin.H{
			"id":     ds.Disease.ID,
			"name":   ds.Disease.Name,
			"weight": ds.Weight,
		}
		if ds.Disease.RecommendedSpecialty != nil {
			entry["recommendedSpecialty"] = ds.Disease.RecommendedSpecialty.Name
		}
		diseases = append(diseases, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          symptom.ID,
		"name":        symptom.Name,
		"description": symptom.Description,
		"severity":    symptom.Severity,
		"diseases":    diseases,
	})
}

// GetDiseases lists the full disease catalog with symptom names.
func (h *Handler) GetDiseases(c *gin.Context) {
	var diseases []models.Disease
	err := h.DB.Preload("RecommendedSpecialty").Preload("Symptoms.Symptom").
		Order("name asc").Find(&diseases).Error
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]gin.H, 0, len(diseases))
	for _, d := range diseases {
		names := make([]string, 0, len(d.Symptoms))
		for _, ds := range d.Symptoms {
			names = append(names, ds.Symptom.Name)
		}
		entry := gin.H{
			"id":          d.ID,
			"name":        d.Name,
			"description": d.Description,
			"precautions": d.Precautions,
			"symptoms":    names,
		}
		if d.RecommendedSpecialty != nil {
			entry["recommendedSpecialty"] = d.RecommendedSpecialty.Name
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, out)
}

// GetDisease returns one disease with its symptoms and per-pair weights.
func (h *Handler) GetDisease(c *gin.Context) {
	var disease models.Disease
	err := h.DB.Preload("RecommendedSpecialty").Preload("Symptoms.Symptom").
		First(&disease, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("disease not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	symptoms := make([]gin.H, 0, len(disease.Symptoms))
	for _, ds := range disease.Symptoms {
		symptoms = append(symptoms, gin.H{
			"id":       ds.Symptom.ID,
			"name":     ds.Symptom.Name,
			"severity": ds.Symptom.Severity,
			"weight":   ds.Weight,
		})
	}

	out := gin.H{
		"id":          disease.ID,
		"name":        disease.Name,
		"description": disease.Description,
		"precautions": disease.Precautions,
		"symptoms":    symptoms,
	}
	if disease.RecommendedSpecialty != nil {
		out["recommendedSpecialty"] = disease.RecommendedSpecialty.Name
	}

	c.JSON(http.StatusOK, out)
}

// SearchDiseases ranks the disease catalog against a reported symptom list.
func (h *Handler) SearchDiseases(c *gin.Context) {
	var req struct {
		Symptoms []string `json:"symptoms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("symptoms array is required"))
		return
	}
	if len(req.Symptoms) == 0 {
		h.errorHandler(c, http.StatusBadRequest, matching.ErrNoSymptoms)
		return
	}

	catalog, err := h.loadDiseaseCatalog()
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	results, err := matching.Match(req.Symptoms, catalog)
	if err != nil {
		if errors.Is(err, matching.ErrNoSymptoms) {
			h.errorHandler(c, http.StatusBadRequest, err)
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// loadDiseaseCatalog fetches a matcher-ready snapshot of the disease catalog,
// ordered by name so score ties rank alphabetically.
func (h *Handler) loadDiseaseCatalog() ([]matching.Disease, error) {
	var diseases []models.Disease
	err := h.DB.Preload("RecommendedSpecialty").Preload("Symptoms.Symptom").
		Order("name asc").Find(&diseases).Error
	if err != nil {
		return nil, err
	}

	catalog := make([]matching.Disease, 0, len(diseases))
	for _, d := range diseases {
		names := make([]string, 0, len(d.Symptoms))
		for _, ds := range d.Symptoms {
			names = append(names, ds.Symptom.Name)
		}
		entry := matching.Disease{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Precautions: d.Precautions,
			Symptoms:    names,
		}
		if d.RecommendedSpecialty != nil {
			entry.RecommendedSpecialty = d.RecommendedSpecialty.Name
		}
		catalog = append(catalog, entry)
	}
	return catalog, nil
}
