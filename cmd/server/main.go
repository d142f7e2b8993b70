package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"payroll-reconciliation-backend/internal/config"
	"payroll-reconciliation-backend/internal/logger"
	"payroll-reconciliation-backend/internal/repository"
	"payroll-reconciliation-backend/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.Logger)

	var db *gorm.DB
	if cfg.Database.URL != "" {
		db, err = repository.Open(cfg.Database.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("database unavailable")
		}
		logger.Info().Str("table", cfg.Database.EmployeesTable).Msg("authoritative employees read from database")
	} else {
		logger.Info().Msg("no DATABASE_URL, authoritative table must be uploaded with each request")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Run-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg.Database.EmployeesTable, cfg.Matching.Policy())

	logger.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
