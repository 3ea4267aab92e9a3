package handler

import (
	"net/http"

	"github.com/mygage/credit-report-service/dto"
	"github.com/mygage/credit-report-service/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	extractService   *service.ExtractService
	statementService *service.StatementService
	reportService    *service.ReportService
	store            *service.ReportStore
	logger           *zap.Logger
}

func NewReportHandler(
	extractService *service.ExtractService,
	statementService *service.StatementService,
	reportService *service.ReportService,
	store *service.ReportStore,
	logger *zap.Logger,
) *ReportHandler {
	return &ReportHandler{
		extractService:   extractService,
		statementService: statementService,
		reportService:    reportService,
		store:            store,
		logger:           logger,
	}
}

// GenerateReport handles POST /report/generate: a Statement-shaped JSON
// body in, a Report JSON body out, or {error} with a server-error status.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var statement dto.Statement
	if err := c.ShouldBindJSON(&statement); err != nil {
		sendError(c, http.StatusBadRequest, "invalid statement body", err)
		return
	}

	report, err := h.reportService.Generate(c.Request.Context(), statement)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "failed to generate report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// SubmitStatement handles POST /report/submit: runs the whole pipeline
// from multipart upload to stored report. Profile validation failures
// stop the submission before any extraction or network call.
func (h *ReportHandler) SubmitStatement(c *gin.Context) {
	profile, sections, err := parseStatementForm(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid statement submission", err)
		return
	}

	documents := h.extractService.AggregateSections(sections)
	statement := h.statementService.Build(profile, documents)

	report, err := h.reportService.Generate(c.Request.Context(), statement)
	if err != nil {
		h.logger.Warn("submission failed, report store cleared", zap.Error(err))
		sendError(c, http.StatusInternalServerError, "failed to generate report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetReport handles GET /report: the stored report, or an explicit
// absent signal for the dashboard's empty state.
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, ok := h.store.Get()
	if !ok {
		sendError(c, http.StatusNotFound, dto.ErrNoReport.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, report)
}
