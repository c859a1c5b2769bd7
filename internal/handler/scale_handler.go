package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/gradepoint-backend/internal/gradescale"
	"github.com/acadex/gradepoint-backend/internal/model"
	"github.com/acadex/gradepoint-backend/internal/response"
)

// ScaleHandler publishes the grade scale and form defaults. The data is
// fixed at build time, so the route sits behind CacheControl.
type ScaleHandler struct{}

// NewScaleHandler creates a new ScaleHandler.
func NewScaleHandler() *ScaleHandler {
	return &ScaleHandler{}
}

// GetScale godoc
// GET /api/v1/scale
func (h *ScaleHandler) GetScale(c *gin.Context) {
	entries := gradescale.Entries()
	grades := make([]model.GradeScaleEntry, 0, len(entries))
	for _, e := range entries {
		grades = append(grades, model.GradeScaleEntry{Grade: string(e.Grade), Points: e.Points})
	}

	response.Success(c, http.StatusOK, model.GradeScaleResponse{
		Grades:             grades,
		CreditHourOptions:  gradescale.CreditHourOptions(),
		DefaultCreditHours: gradescale.DefaultCreditHours,
		DefaultGrade:       string(gradescale.DefaultGrade),
	})
}
