package handler

import (
	"net/http"
	"strings"

	"github.com/mygage/credit-report-service/dto"
	"github.com/mygage/credit-report-service/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Ask handles POST /chat/ask. Assistant failures never touch the
// stored report; they only fail this one exchange.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid chat request", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		sendError(c, http.StatusBadRequest, "message is required", nil)
		return
	}

	answer, err := h.chatService.Ask(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("chat request failed", zap.Error(err))
		sendError(c, http.StatusInternalServerError, "assistant request failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{Answer: answer})
}
