package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"trekking_club/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackHandler serves the public tracking endpoints and the landing page
type TrackHandler struct {
	locations service.LocationService
}

// NewTrackHandler creates a new TrackHandler
func NewTrackHandler(locations service.LocationService) *TrackHandler {
	return &TrackHandler{locations: locations}
}

func (h *TrackHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{})
}

// TrackData returns the last-known position of a user as JSON. Public: the
// tracking page polls it without a session.
func (h *TrackHandler) TrackData(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid user id"})
		return
	}

	lat, lon, err := h.locations.LastLocation(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoLocation) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Location not available"})
			return
		}
		log.Printf("Error fetching location: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "lat": lat, "lon": lon})
}

// PublicTrack renders the live tracking page for a user
func (h *TrackHandler) PublicTrack(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid user id"})
		return
	}
	c.HTML(http.StatusOK, "track.html", gin.H{"user_id": userID})
}

// RegisterTrackRoutes registers the public tracking routes
func (h *TrackHandler) RegisterTrackRoutes(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/track-data/:user_id", h.TrackData)
	r.GET("/track/:user_id", h.PublicTrack)
}
