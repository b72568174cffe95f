package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/classroom-report-api/api/swagger"
	"github.com/noah-isme/classroom-report-api/internal/classroom"
	"github.com/noah-isme/classroom-report-api/internal/handler"
	"github.com/noah-isme/classroom-report-api/internal/middleware"
	"github.com/noah-isme/classroom-report-api/internal/repository"
	"github.com/noah-isme/classroom-report-api/internal/service"
	"github.com/noah-isme/classroom-report-api/pkg/config"
	"github.com/noah-isme/classroom-report-api/pkg/export"
	"github.com/noah-isme/classroom-report-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-report-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-report-api/pkg/middleware/requestid"
)

// @title Classroom Report API
// @version 0.1.0
// @description Reporting gateway over the external classroom API
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	client := classroom.New(cfg.Classroom).WithObserver(metricsSvc)
	accessor := repository.NewClassroomRepository(client)

	validate := validator.New()
	courseSvc := service.NewCourseService(accessor, logr)
	reportSvc := service.NewReportService(accessor, validate, logr)
	exportSvc := service.NewExportService(reportSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	courseHandler := handler.NewCourseHandler(courseSvc)
	reportHandler := handler.NewReportHandler(reportSvc, metricsSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id/roster", courseHandler.Roster)
		api.GET("/reports/summary", reportHandler.Summary)
		api.GET("/reports/missing", reportHandler.MissingWork)
		if cfg.Exports.Enabled {
			api.GET("/reports/summary/export", exportHandler.Summary)
			api.GET("/reports/missing/export", exportHandler.MissingWork)
		}
	}

	if cfg.UI.Enabled {
		handler.LoadTemplates(r)
		uiHandler := handler.NewUIHandler(courseSvc, reportSvc)
		ui := r.Group("/ui")
		{
			ui.GET("", uiHandler.Courses)
			ui.GET("/courses/:id", uiHandler.Roster)
			ui.GET("/courses/:id/students/:userId", uiHandler.Summary)
			ui.GET("/courses/:id/students/:userId/missing", uiHandler.MissingWork)
		}
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
