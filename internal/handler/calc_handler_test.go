package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/acadex/gradepoint-backend/internal/config"
	"github.com/acadex/gradepoint-backend/internal/handler"
	"github.com/acadex/gradepoint-backend/internal/model"
	"github.com/acadex/gradepoint-backend/internal/response"
	"github.com/acadex/gradepoint-backend/internal/service"
	"github.com/acadex/gradepoint-backend/internal/validator"
)

// newCalcService builds a service with telemetry off so no Redis client is
// ever touched.
func newCalcService() *service.CalcService {
	cfg := &config.Config{TelemetryEnabled: false}
	return service.NewCalcService(cfg, nil, zerolog.Nop())
}

func newCalcRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	h := handler.NewCalcHandler(newCalcService())

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.POST("/api/v1/calculations/gpa", h.CalculateGPA)
	r.POST("/api/v1/calculations/cgpa", h.CalculateCGPA)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type gpaEnvelope struct {
	Data     *model.GPAResponse  `json:"data"`
	Error    *response.ErrorBody `json:"error"`
	Metadata response.Metadata   `json:"metadata"`
}

type cgpaEnvelope struct {
	Data     *model.CGPAResponse `json:"data"`
	Error    *response.ErrorBody `json:"error"`
	Metadata response.Metadata   `json:"metadata"`
}

func TestCalculateGPA(t *testing.T) {
	r := newCalcRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/calculations/gpa",
		`{"courses":[
			{"name":"Algebra","credit_hours":3,"grade":"A"},
			{"name":"History","credit_hours":3,"grade":"B"}
		]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env gpaEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Nil(t, env.Error)
	require.NotNil(t, env.Data)
	require.Equal(t, 3.5, env.Data.GPA)
	require.Equal(t, 6.0, env.Data.TotalCreditHours)
	require.NotEmpty(t, env.Metadata.RequestID)
	require.Equal(t, env.Metadata.RequestID, w.Header().Get("X-Request-ID"))
}

func TestCalculateGPAExcludesInvalidEntries(t *testing.T) {
	r := newCalcRouter()

	// Zero credits, negative credits and an unknown grade all drop out of
	// numerator and denominator; the request still succeeds.
	w := doJSON(r, http.MethodPost, "/api/v1/calculations/gpa",
		`{"courses":[
			{"credit_hours":3,"grade":"A"},
			{"credit_hours":0,"grade":"A"},
			{"credit_hours":-2,"grade":"B"},
			{"credit_hours":3,"grade":"E"}
		]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env gpaEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Nil(t, env.Error)
	require.Equal(t, 4.0, env.Data.GPA)
	require.Equal(t, 3.0, env.Data.TotalCreditHours)
}

func TestCalculateGPAEmptyList(t *testing.T) {
	r := newCalcRouter()

	for _, body := range []string{`{"courses":[]}`, `{}`} {
		w := doJSON(r, http.MethodPost, "/api/v1/calculations/gpa", body)
		require.Equal(t, http.StatusOK, w.Code, "body %s", body)

		var env gpaEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.Nil(t, env.Error)
		require.Equal(t, 0.0, env.Data.GPA)
		require.Equal(t, 0.0, env.Data.TotalCreditHours)
	}
}

func TestCalculateGPAMalformedPayload(t *testing.T) {
	r := newCalcRouter()

	// A string where a number belongs is a payload error, not an exclusion.
	w := doJSON(r, http.MethodPost, "/api/v1/calculations/gpa",
		`{"courses":[{"credit_hours":"three","grade":"A"}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var env gpaEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	require.Equal(t, response.ErrInvalidPayload, env.Error.Code)
	require.NotEmpty(t, env.Error.Fields)
}

func TestCalculateCGPA(t *testing.T) {
	r := newCalcRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/calculations/cgpa",
		`{"terms":[
			{"name":"Semester 1","gpa":3.5,"credit_hours":15},
			{"name":"Semester 2","gpa":3.0,"credit_hours":12}
		]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env cgpaEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Nil(t, env.Error)
	require.NotNil(t, env.Data.CGPA)
	require.Equal(t, 3.28, *env.Data.CGPA)
	require.Equal(t, 27.0, env.Data.TotalCreditHours)
}

func TestCalculateCGPAUndefinedIsNull(t *testing.T) {
	r := newCalcRouter()

	// An out-of-range term GPA leaves nothing to average: the cgpa field
	// must be a literal null, not absent and not zero.
	w := doJSON(r, http.MethodPost, "/api/v1/calculations/cgpa",
		`{"terms":[{"gpa":5,"credit_hours":15}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"cgpa":null`)

	var env cgpaEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Nil(t, env.Error)
	require.Nil(t, env.Data.CGPA)
	require.Equal(t, 0.0, env.Data.TotalCreditHours)
}

func TestCalculateCGPAZeroIsNotNull(t *testing.T) {
	r := newCalcRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/calculations/cgpa",
		`{"terms":[{"gpa":0,"credit_hours":12}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"cgpa":0`)

	var env cgpaEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Data.CGPA)
	require.Equal(t, 0.0, *env.Data.CGPA)
	require.Equal(t, 12.0, env.Data.TotalCreditHours)
}

func TestRequestIDEcho(t *testing.T) {
	r := newCalcRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/gpa", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "trace-me-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "trace-me-123", w.Header().Get("X-Request-ID"))

	var env gpaEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "trace-me-123", env.Metadata.RequestID)
}
