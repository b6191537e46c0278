package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_triage_system/internal/config"
	"github.com/shenikar/emergency_triage_system/internal/eventbus"
	"github.com/shenikar/emergency_triage_system/internal/geo"
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/shenikar/emergency_triage_system/internal/queue"
	"github.com/shenikar/emergency_triage_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	triageService service.TriageService
	bus           *eventbus.Bus
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(triageService service.TriageService, bus *eventbus.Bus, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		triageService: triageService,
		bus:           bus,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Submit a patient report
// @Description Accept a new emergency patient report. A report that cannot be assigned immediately is accepted as pending. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body SubmitReportRequest true "Report submission request"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input SubmitReportRequest
	log := h.logger.WithField("method", "submitReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToReportModel(input)
	if err := h.triageService.SubmitReport(c.Request.Context(), model); err != nil {
		if errors.Is(err, geo.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		log.WithError(err).Error("Failed to submit report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Конвейер мог уже продвинуть обращение - отдаем актуальное состояние
	report, err := h.triageService.GetReport(c.Request.Context(), model.ID)
	if err != nil {
		report = model
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(report))
}

// @Summary Get report by ID
// @Description Get a single patient report by its ID. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.triageService.GetReport(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Apply a triage result
// @Description Record the criticality score of a report. For a queued report this reranks its queue entry. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Param triage body TriageRequest true "Triage result"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Invalid lifecycle transition"
// @Failure 503 {object} map[string]string "Hospital queue halted"
// @Router /reports/{id}/triage [post]
func (h *Handler) triageReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "triageReport").WithField("id", id)

	var input TriageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.triageService.TriageReport(c.Request.Context(), id, models.CriticalityLevel(input.Criticality))
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Start treatment
// @Description Dequeue a waiting report for treatment, compacting positions behind it. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Invalid lifecycle transition"
// @Failure 503 {object} map[string]string "Hospital queue halted"
// @Router /reports/{id}/treatment [post]
func (h *Handler) startTreatment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "startTreatment").WithField("id", id)

	report, err := h.triageService.StartTreatment(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Complete a report
// @Description Discharge or remove a report. A still-waiting entry is removed from its queue. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Param completion body CompleteRequest true "Completion outcome"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Invalid lifecycle transition"
// @Router /reports/{id}/complete [post]
func (h *Handler) completeReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "completeReport").WithField("id", id)

	var input CompleteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := models.StatusDischarged
	if input.Outcome == string(models.StatusRemoved) {
		outcome = models.StatusRemoved
	}

	report, err := h.triageService.CompleteReport(c.Request.Context(), id, outcome)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Reassign a report
// @Description Re-run hospital selection and atomically move the queue entry to the new hospital. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Invalid transition or stale assignment"
// @Failure 503 {object} map[string]string "Hospital queue halted"
// @Router /reports/{id}/reassign [post]
func (h *Handler) reassignReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "reassignReport").WithField("id", id)

	report, err := h.triageService.ReassignReport(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Retry pending reports
// @Description Re-run hospital selection for pending reports. Called on a capacity-change signal. Requires API key.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} RetryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/retry [post]
func (h *Handler) retryPending(c *gin.Context) {
	log := h.logger.WithField("method", "retryPending")

	assigned, err := h.triageService.RetryPending(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to retry pending reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, RetryResponse{Assigned: assigned})
}

// @Summary List hospitals
// @Description Get the hospital directory. Requires API key.
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} HospitalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hospitals [get]
func (h *Handler) listHospitals(c *gin.Context) {
	log := h.logger.WithField("method", "listHospitals")

	hospitals, err := h.triageService.ListHospitals(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list hospitals from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToHospitalResponses(hospitals))
}

// @Summary Get hospital queue snapshot
// @Description Get a consistent point-in-time ordered view of one hospital's queue with estimated waits. Requires API key.
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Hospital ID"
// @Success 200 {object} QueueSnapshotResponse
// @Failure 400 {object} map[string]string "Invalid hospital ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Hospital not found"
// @Router /hospitals/{id}/queue [get]
func (h *Handler) getHospitalQueue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hospital ID"})
		return
	}
	log := h.logger.WithField("method", "getHospitalQueue").WithField("id", id)

	view, err := h.triageService.GetHospitalQueue(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get hospital queue from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "hospital not found"})
		return
	}
	c.JSON(http.StatusOK, QueueViewToResponse(view))
}

// @Summary Get report statistics
// @Description Get the count of reports submitted within the configured window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	reportCount, err := h.triageService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, StatsResponse{ReportCount: reportCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeServiceError переводит доменные ошибки в коды ответов
func (h *Handler) writeServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, geo.ErrInvalidCoordinates):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid lifecycle transition"})
	case errors.Is(err, service.ErrStaleAssignment):
		c.JSON(http.StatusConflict, gin.H{"error": "stale assignment"})
	case errors.Is(err, queue.ErrQueueHalted), errors.Is(err, queue.ErrQueueConsistency):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "hospital queue halted"})
	case errors.Is(err, queue.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "queue entry not found"})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
