package handler

import (
	"net/http"

	"trekking_club/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler proxies chat messages to the AI provider
type ChatHandler struct {
	chat service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) ChatPage(c *gin.Context) {
	c.HTML(http.StatusOK, "chat.html", gin.H{})
}

// Chat forwards the message and always answers with a displayable reply
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
		return
	}

	reply := h.chat.Ask(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ListModels returns the provider's available model identifiers
func (h *ChatHandler) ListModels(c *gin.Context) {
	models, err := h.chat.ListModels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_models": models})
}

// RegisterChatRoutes registers the chat proxy routes
func (h *ChatHandler) RegisterChatRoutes(r *gin.Engine) {
	r.GET("/chat", h.ChatPage)
	r.POST("/chat", h.Chat)
	r.GET("/list-models", h.ListModels)
}
