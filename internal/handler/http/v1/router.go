package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check регистрируется до аутентификации и остается открытым
	api.GET("/system/health", h.healthCheck)

	// Аутентификация по API-ключу включается, когда ключи заданы
	if len(h.cfg.APIKeys) > 0 {
		api.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	// Маршруты для обращений
	reports := api.Group("/reports")
	{
		reports.POST("", h.submitReport)
		reports.GET("/stats", h.getStats)
		reports.GET("/:id", h.getReport)
		reports.POST("/:id/triage", h.triageReport)
		reports.POST("/:id/treatment", h.startTreatment)
		reports.POST("/:id/complete", h.completeReport)
		reports.POST("/:id/reassign", h.reassignReport)
	}

	// Маршруты для больниц и их очередей
	hospitals := api.Group("/hospitals")
	{
		hospitals.GET("", h.listHospitals)
		hospitals.GET("/:id/queue", h.getHospitalQueue)
	}

	// Повторный подбор по сигналу об изменении вместимости
	api.POST("/assignments/retry", h.retryPending)
}

// RegisterWebsocket регистрирует веб-сокет шины событий вне группы с API-ключом:
// браузерные клиенты подключаются без заголовков
func (h *Handler) RegisterWebsocket(router *gin.Engine) {
	router.GET("/ws", h.serveWebsocket)
}
