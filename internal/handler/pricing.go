package handler

import (
	"net/http"

	"spacelister/internal/model"
	"spacelister/internal/service"

	"github.com/gin-gonic/gin"
)

// PricingHandler handles price suggestion HTTP requests
type PricingHandler struct{}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// Suggest handles POST /api/v1/pricing/suggest - computes a suggestion and
// comparables from a partial listing without touching any session
func (h *PricingHandler) Suggest(c *gin.Context) {
	var listing model.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if listing.Location == "" || listing.Neighborhood == "" || listing.SquareFeet == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location, neighborhood and square_feet are required"})
		return
	}

	c.JSON(http.StatusOK, model.PriceSuggestResponse{
		Suggestion:  service.CalculateSuggestedPrice(&listing),
		Comparables: service.GetComparables(&listing),
	})
}
