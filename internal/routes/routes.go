package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "payroll-reconciliation-backend/internal/handlers"
	"payroll-reconciliation-backend/internal/repository"
	"payroll-reconciliation-backend/internal/services/matching"
	service "payroll-reconciliation-backend/internal/services/reconciliation"
)

// RegisterRoutes wires the API. db may be nil, in which case every request
// must upload its own authoritative table.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, employeesTable string, cfg matching.Config) {
	var source service.RecordSource
	if db != nil {
		source = repository.NewEmployeeRepository(db, employeesTable)
	}

	reconService := service.NewReconciliationService(cfg, source)
	reconHandler := handler.NewReconciliationHandler(reconService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": db != nil})
	})

	recon := api.Group("/reconciliation")
	recon.POST("/names", reconHandler.ReconcileNames)
	recon.POST("/sections", reconHandler.ReconcileSections)

	api.POST("/accountants/link", reconHandler.LinkAccountants)
}
