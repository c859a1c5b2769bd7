package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/gradepoint-backend/internal/model"
	"github.com/acadex/gradepoint-backend/internal/response"
	"github.com/acadex/gradepoint-backend/internal/service"
	"github.com/acadex/gradepoint-backend/internal/validator"
)

// CalcHandler serves the one-shot calculation endpoints.
type CalcHandler struct {
	calcService *service.CalcService
}

// NewCalcHandler creates a new CalcHandler.
func NewCalcHandler(calcService *service.CalcService) *CalcHandler {
	return &CalcHandler{calcService: calcService}
}

// CalculateGPA godoc
// POST /api/v1/calculations/gpa
// Entries with unknown grades or non-positive credit hours are excluded
// from the average, never rejected; only malformed JSON fails.
func (h *CalcHandler) CalculateGPA(c *gin.Context) {
	var req model.GPARequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	res := h.calcService.GPA(req.Courses, model.UsageSourceHTTP)
	response.Success(c, http.StatusOK, res)
}

// CalculateCGPA godoc
// POST /api/v1/calculations/cgpa
func (h *CalcHandler) CalculateCGPA(c *gin.Context) {
	var req model.CGPARequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	res := h.calcService.CGPA(req.Terms, model.UsageSourceHTTP)
	response.Success(c, http.StatusOK, res)
}
