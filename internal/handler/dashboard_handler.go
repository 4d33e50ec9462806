package handler

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"trekking_club/internal/middleware"
	"trekking_club/internal/service"
	"trekking_club/internal/sms"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the member dashboard and its SOS/TRACK actions
type DashboardHandler struct {
	locations service.LocationService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(locations service.LocationService) *DashboardHandler {
	return &DashboardHandler{locations: locations}
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{})
}

func (h *DashboardHandler) ButtonPage(c *gin.Context) {
	c.HTML(http.StatusOK, "button.html", gin.H{})
}

// SOSAction dispatches the distress SMS for the logged-in user
func (h *DashboardHandler) SOSAction(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.locations.SendSOS(c.Request.Context(), userID); err != nil {
		var gwErr *sms.GatewayError
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		case errors.As(err, &gwErr):
			c.JSON(http.StatusBadGateway, gin.H{"status": "fail", "error": gwErr.Body})
		default:
			log.Printf("Error sending SOS: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "SOS sent successfully"})
}

type trackRequest struct {
	Lat any `json:"lat"`
	Lon any `json:"lon"`
}

// parseCoord accepts JSON numbers and numeric strings and rejects anything
// that is not a finite float.
func parseCoord(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, errors.New("not a finite number")
		}
		return val, nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errors.New("not a finite number")
		}
		return f, nil
	default:
		return 0, errors.New("expected a number")
	}
}

// TrackAction updates the user's last-known position and, when requested via
// the send_sms query flag, broadcasts the tracking links over SMS.
func (h *DashboardHandler) TrackAction(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
		return
	}

	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No JSON body received"})
		return
	}
	if req.Lat == nil || req.Lon == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing lat or lon"})
		return
	}

	lat, latErr := parseCoord(req.Lat)
	lon, lonErr := parseCoord(req.Lon)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid lat/lon"})
		return
	}

	notify := c.Query("send_sms") == "true"

	links, err := h.locations.UpdateLocation(c.Request.Context(), userID, lat, lon, notify)
	if err != nil {
		var gwErr *sms.GatewayError
		switch {
		case errors.Is(err, service.ErrInvalidCoordinate):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid lat/lon"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		case errors.As(err, &gwErr):
			// The position update stands; only the broadcast failed.
			c.JSON(http.StatusBadGateway, gin.H{"status": "fail", "error": gwErr.Body})
		case links != nil:
			// Broadcast transport failure after a successful update.
			log.Printf("SMS broadcast failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		default:
			log.Printf("Error updating location: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update location"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"google_maps_link": links.GoogleMaps,
		"live_page_link":   links.LivePage,
	})
}

// RegisterDashboardRoutes registers the session-gated dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(r *gin.Engine, pageGate, apiGate gin.HandlerFunc) {
	dash := r.Group("/dashboard")
	dash.GET("", pageGate, h.Dashboard)
	dash.GET("/btn-page", pageGate, h.ButtonPage)
	dash.GET("/action/SOS", apiGate, h.SOSAction)
	dash.POST("/action/TRACK", apiGate, h.TrackAction)
}
