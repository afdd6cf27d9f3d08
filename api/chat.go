package api

import (
	"errors"
	"net/http"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/airparadise/chatbot/internal/service/chat"
	"github.com/airparadise/chatbot/internal/session"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service chat.ChatUseCase
}

type chatRequest struct {
	SessionID string        `json:"session_id"`
	Message   string        `json:"message"`
	History   []domain.Turn `json:"history"`
}

type chatResponse struct {
	Response  string          `json:"response"`
	Flights   []domain.Flight `json:"flights"`
	SessionID string          `json:"session_id"`
}

func NewChatHandler(service chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Register(router *gin.RouterGroup) {
	router.POST("/chat", h.chat)
}

func (h *ChatHandler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and message are required"})
		return
	}

	result, err := h.service.HandleMessage(c.Request.Context(), chat.ChatInput{
		SessionID: req.SessionID,
		Message:   req.Message,
		History:   req.History,
	})
	if err != nil {
		if errors.Is(err, session.ErrTurnInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "previous message is still being processed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your request"})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Response:  result.Response,
		Flights:   result.Flights,
		SessionID: result.SessionID,
	})
}
