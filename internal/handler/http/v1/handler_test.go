package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_triage_system/internal/config"
	"github.com/shenikar/emergency_triage_system/internal/eventbus"
	"github.com/shenikar/emergency_triage_system/internal/handler/http/v1/mocks"
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/shenikar/emergency_triage_system/internal/queue"
	"github.com/shenikar/emergency_triage_system/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockTriageService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockTriageService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:                []string{"test-api-key"},
		StatsTimeWindowMinutes: 60,
	}

	handler := NewHandler(mockService, eventbus.NewBus(logger), logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func apiKey() map[string]string {
	return map[string]string{"X-API-Key": "test-api-key"}
}

func queuedReport(id uuid.UUID) *models.PatientReport {
	criticality := models.CriticalityUrgent
	hospitalID := uuid.New()
	return &models.PatientReport{
		ID:             id,
		Classification: "chest pain",
		Status:         models.StatusQueued,
		Criticality:    &criticality,
		HospitalID:     &hospitalID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestSubmitReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	lat, lon := 18.0179, -76.8099
	reqBody := SubmitReportRequest{
		Classification: "chest pain",
		PatientStatus:  "conscious, severe pain",
		Latitude:       &lat,
		Longitude:      &lon,
	}

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report *models.PatientReport) error {
			report.ID = reportID
			report.Status = models.StatusSubmitted
			return nil
		}).Times(1)
	mockService.EXPECT().
		GetReport(gomock.Any(), reportID).
		Return(queuedReport(reportID), nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ID)
	// Ответ отражает состояние после конвейера, а не момент приема
	assert.Equal(t, string(models.StatusQueued), resp.Status)
}

func TestSubmitReport_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBufferString(`{"classification": "pain"`), apiKey())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestSubmitReport_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := SubmitReportRequest{ // Отсутствует Classification
		PatientStatus: "conscious",
	}

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Classification' failed on the 'required' tag")
}

func TestSubmitReport_CriticalityOutOfRange(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	badCriticality := 7
	reqBody := SubmitReportRequest{
		Classification: "chest pain",
		Criticality:    &badCriticality,
	}

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Criticality' failed on the 'max' tag")
}

func TestSubmitReport_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := SubmitReportRequest{Classification: "chest pain"}
	serviceError := errors.New("failed to create report")

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Return(serviceError).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	expected := queuedReport(reportID)

	mockService.EXPECT().GetReport(gomock.Any(), reportID).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/reports/%s", reportID.String()), nil, apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ID)
	assert.Equal(t, expected.Classification, resp.Classification)
}

func TestGetReport_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/reports/invalid-uuid", nil, apiKey())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid report ID")
}

func TestGetReport_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()

	mockService.EXPECT().GetReport(gomock.Any(), reportID).Return(nil, errors.New("report not found")).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/reports/%s", reportID.String()), nil, apiKey())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "report not found")
}

func TestTriageReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	reqBody := TriageRequest{Criticality: 2}
	expected := queuedReport(reportID)

	mockService.EXPECT().
		TriageReport(gomock.Any(), reportID, models.CriticalityEmergent).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/triage", reportID.String()), bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ID)
}

func TestTriageReport_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	reqBody := TriageRequest{Criticality: 6}

	mockService.EXPECT().TriageReport(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/triage", reportID.String()), bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Criticality' failed on the 'max' tag")
}

func TestTriageReport_InvalidTransition(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	reqBody := TriageRequest{Criticality: 3}
	serviceError := fmt.Errorf("service: report in status discharged: %w", service.ErrInvalidTransition)

	mockService.EXPECT().TriageReport(gomock.Any(), reportID, models.CriticalityUrgent).Return(nil, serviceError).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/triage", reportID.String()), bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid lifecycle transition")
}

func TestStartTreatment_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	expected := queuedReport(reportID)
	expected.Status = models.StatusInTreatment

	mockService.EXPECT().StartTreatment(gomock.Any(), reportID).Return(expected, nil).Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/treatment", reportID.String()), nil, apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.StatusInTreatment))
}

func TestStartTreatment_QueueHalted(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	serviceError := fmt.Errorf("service: could not dequeue report: %w", queue.ErrQueueHalted)

	mockService.EXPECT().StartTreatment(gomock.Any(), reportID).Return(nil, serviceError).Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/treatment", reportID.String()), nil, apiKey())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "hospital queue halted")
}

func TestCompleteReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	reqBody := CompleteRequest{Outcome: "discharged"}
	expected := queuedReport(reportID)
	expected.Status = models.StatusDischarged

	mockService.EXPECT().
		CompleteReport(gomock.Any(), reportID, models.StatusDischarged).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/complete", reportID.String()), bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.StatusDischarged))
}

func TestCompleteReport_InvalidOutcome(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	reqBody := CompleteRequest{Outcome: "lost"}

	mockService.EXPECT().CompleteReport(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/complete", reportID.String()), bytes.NewBuffer(bodyBytes), apiKey())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Outcome' failed on the 'oneof' tag")
}

func TestReassignReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	expected := queuedReport(reportID)

	mockService.EXPECT().ReassignReport(gomock.Any(), reportID).Return(expected, nil).Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/reassign", reportID.String()), nil, apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReassignReport_Stale(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	serviceError := fmt.Errorf("service: reassignment of report: %w", service.ErrStaleAssignment)

	mockService.EXPECT().ReassignReport(gomock.Any(), reportID).Return(nil, serviceError).Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/reports/%s/reassign", reportID.String()), nil, apiKey())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "stale assignment")
}

func TestRetryPending_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().RetryPending(gomock.Any()).Return(3, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/assignments/retry", nil, apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp RetryResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Assigned)
}

func TestListHospitals_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	hospitals := []*models.Hospital{
		{ID: uuid.New(), Name: "Kingston Public Hospital", MaxPatients: 50},
		{ID: uuid.New(), Name: "Spanish Town Hospital", MaxPatients: 30},
	}

	mockService.EXPECT().ListHospitals(gomock.Any()).Return(hospitals, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/hospitals", nil, apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []HospitalResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, hospitals[0].Name, resp[0].Name)
}

func TestGetHospitalQueue_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	hospitalID := uuid.New()
	reportID := uuid.New()
	view := &service.QueueView{
		Snapshot: &models.QueueSnapshot{
			HospitalID: hospitalID,
			TakenAt:    time.Now(),
			Entries: []*models.QueueEntry{
				{HospitalID: hospitalID, ReportID: reportID, Position: 1, Status: models.QueueStatusWaiting, Criticality: models.CriticalityEmergent, EnteredAt: time.Now()},
			},
		},
		Waits: map[uuid.UUID]time.Duration{reportID: 35 * time.Minute},
	}

	mockService.EXPECT().GetHospitalQueue(gomock.Any(), hospitalID).Return(view, nil).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/hospitals/%s/queue", hospitalID.String()), nil, apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp QueueSnapshotResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, hospitalID, resp.HospitalID)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, reportID, resp.Entries[0].ReportID)
	assert.Equal(t, (35 * time.Minute).Seconds(), resp.Entries[0].EstimatedWaitSeconds)
}

func TestGetHospitalQueue_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	hospitalID := uuid.New()

	mockService.EXPECT().GetHospitalQueue(gomock.Any(), hospitalID).Return(nil, errors.New("не найдено")).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/hospitals/%s/queue", hospitalID.String()), nil, apiKey())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "hospital not found")
}

func TestGetStats_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetStats(gomock.Any()).Return(123, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports/stats", nil, apiKey())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 123, resp.ReportCount)
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	// Health-check открыт и не требует API-ключа
	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestProtectedRoute_RequiresAPIKey(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ListHospitals(gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/hospitals", nil) // Нет API ключа

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
