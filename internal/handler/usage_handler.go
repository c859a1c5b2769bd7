package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/gradepoint-backend/internal/model"
	"github.com/acadex/gradepoint-backend/internal/response"
	"github.com/acadex/gradepoint-backend/internal/service"
	"github.com/acadex/gradepoint-backend/internal/validator"
)

// UsageHandler serves the aggregated usage report to operators.
type UsageHandler struct {
	usageService *service.UsageService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usageService *service.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// GetUsage godoc
// GET /api/v1/admin/usage?days=N
func (h *UsageHandler) GetUsage(c *gin.Context) {
	var q model.UsageQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report, err := h.usageService.Report(c.Request.Context(), q.Days)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if report.Rows == nil {
		report.Rows = []model.UsageDay{}
	}

	response.Success(c, http.StatusOK, report)
}
