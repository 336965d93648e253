package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/realworld-persistence/internal/service"
	"github.com/rs/zerolog"
)

// StatsHandler handles collection statistics endpoints
type StatsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(services *service.Services, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		services: services,
		log:      log.With().Str("handler", "stats").Logger(),
	}
}

// GetStats handles GET /stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, backendTimeout)
	defer cancel()

	counts, err := h.services.Stats.GetCounts(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count collections")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count collections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"backend":     h.services.Stats.Backend(),
		"collections": counts,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

// GetCollectionStats handles GET /stats/:collection
func (h *StatsHandler) GetCollectionStats(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, backendTimeout)
	defer cancel()

	collection := c.Param("collection")
	count, err := h.services.Stats.GetCount(ctx, collection)
	if errors.Is(err, service.ErrUnknownCollection) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection: " + collection})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("collection", collection).Msg("Failed to count collection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": collection,
		"count":      count,
	})
}
