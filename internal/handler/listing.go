package handler

import (
	"errors"
	"net/http"

	"spacelister/internal/model"
	"spacelister/internal/service"

	"github.com/gin-gonic/gin"
)

// ListingHandler handles listing publication and retrieval HTTP requests
type ListingHandler struct {
	listingService      *service.ListingService
	conversationService *service.ConversationService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *service.ListingService, conversationService *service.ConversationService) *ListingHandler {
	return &ListingHandler{
		listingService:      listingService,
		conversationService: conversationService,
	}
}

// publishRequest publishes the completed listing of a conversation session
type publishRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Publish handles POST /api/v1/listings
func (h *ListingHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	listing, err := h.conversationService.GetFullListing(c.Request.Context(), req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session: " + err.Error()})
		return
	}
	if listing == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing is not ready to publish"})
		return
	}

	published, err := h.listingService.Publish(c.Request.Context(), listing)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish listing: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.PublishResponse{
		Success:   true,
		ListingID: published.ListingID,
		URL:       "/listing/" + published.ListingID,
	})
}

// List handles GET /api/v1/listings
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listingService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings)})
}

// Get handles GET /api/v1/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	listingID := c.Param("id")

	listing, err := h.listingService.Get(c.Request.Context(), listingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing: " + err.Error()})
		return
	}
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Export handles GET /api/v1/listings/:id/export - the shareable plain-text
// document
func (h *ListingHandler) Export(c *gin.Context) {
	listingID := c.Param("id")

	document, err := h.listingService.Export(c.Request.Context(), listingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export listing: " + err.Error()})
		return
	}
	if document == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.String(http.StatusOK, document)
}
