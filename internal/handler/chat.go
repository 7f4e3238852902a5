package handler

import (
	"errors"
	"net/http"

	"spacelister/internal/model"
	"spacelister/internal/service"
	"spacelister/internal/store"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles conversation-related HTTP requests
type ChatHandler struct {
	conversationService *service.ConversationService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversationService *service.ConversationService) *ChatHandler {
	return &ChatHandler{conversationService: conversationService}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// An absent session id starts a new conversation.
	if req.SessionID == "" {
		req.SessionID = service.GenerateSessionID()
	}

	replies, state, err := h.conversationService.Process(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		SessionID: state.SessionID,
		Replies:   replies,
		Phase:     state.Phase,
		Listing:   state.Listing,
	})
}

// SetAmenities handles POST /api/v1/chat/amenities - the UI checklist writes
// the amenity list directly instead of going through text extraction
func (h *ChatHandler) SetAmenities(c *gin.Context) {
	var req model.AmenitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state, err := h.conversationService.SetAmenities(c.Request.Context(), req.SessionID, req.Amenities)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set amenities: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		SessionID: state.SessionID,
		Phase:     state.Phase,
		Listing:   state.Listing,
	})
}

// SetFeatures handles POST /api/v1/chat/features
func (h *ChatHandler) SetFeatures(c *gin.Context) {
	var req model.FeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state, err := h.conversationService.SetStandoutFeatures(c.Request.Context(), req.SessionID, req.Features)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set features: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		SessionID: state.SessionID,
		Phase:     state.Phase,
		Listing:   state.Listing,
	})
}

// GetSession handles GET /api/v1/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	state, err := h.conversationService.GetState(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get session: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}
