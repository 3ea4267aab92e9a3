package main

import (
	"log"
	"os"

	"github.com/mygage/credit-report-service/client"
	"github.com/mygage/credit-report-service/config"
	"github.com/mygage/credit-report-service/handler"
	"github.com/mygage/credit-report-service/logger"
	"github.com/mygage/credit-report-service/middleware"
	"github.com/mygage/credit-report-service/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	// Tesseract v5 resolves its models through this variable.
	os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage)
	scoringClient := client.NewScoringClient(
		cfg.Scoring.BaseURL,
		cfg.Scoring.APIKey,
		cfg.Scoring.Model,
		cfg.Scoring.Temperature,
		cfg.Scoring.Timeout,
	)

	pdfProcessor := service.NewPDFProcessor()
	reportStore := service.NewReportStore()

	extractService := service.NewExtractService(tesseractClient, pdfProcessor, zlog)
	statementService := service.NewStatementService(zlog)
	reportService := service.NewReportService(scoringClient, reportStore, zlog)
	chatService := service.NewChatService(scoringClient, reportStore, service.DefaultBankOffers(), zlog)

	statementHandler := handler.NewStatementHandler(extractService, statementService, zlog)
	reportHandler := handler.NewReportHandler(extractService, statementService, reportService, reportStore, zlog)
	chatHandler := handler.NewChatHandler(chatService, zlog)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.Recovery(zlog))

	// 32 MB multipart memory covers four sections of statement scans.
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Credit Report Pipeline",
		})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/statement/build", statementHandler.BuildStatement)

		report := api.Group("/report")
		{
			report.POST("/generate", reportHandler.GenerateReport)
			report.POST("/submit", reportHandler.SubmitStatement)
			report.GET("", reportHandler.GetReport)
		}

		api.POST("/chat/ask", chatHandler.Ask)
	}

	zlog.Info("starting credit report service", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
