package handler

import (
	"net/http"

	"github.com/mygage/credit-report-service/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatementHandler struct {
	extractService   *service.ExtractService
	statementService *service.StatementService
	logger           *zap.Logger
}

func NewStatementHandler(extractService *service.ExtractService, statementService *service.StatementService, logger *zap.Logger) *StatementHandler {
	return &StatementHandler{
		extractService:   extractService,
		statementService: statementService,
		logger:           logger,
	}
}

// BuildStatement handles POST /statement/build: extracts text from the
// uploaded section files, merges in the profile, and returns the
// Statement without scoring it.
func (h *StatementHandler) BuildStatement(c *gin.Context) {
	profile, sections, err := parseStatementForm(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid statement submission", err)
		return
	}

	documents := h.extractService.AggregateSections(sections)
	statement := h.statementService.Build(profile, documents)

	c.JSON(http.StatusOK, statement)
}
