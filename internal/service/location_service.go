package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"trekking_club/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNoLocation        = errors.New("location not available")
	ErrInvalidCoordinate = errors.New("lat and lon must be finite numbers")
)

// sosMessage is the fixed distress text dispatched by the SOS action.
const sosMessage = "🚨 HELP I AM IN TROUBLE 🚨\n 🏃🏻‍♂️ Message from Trekking Club 🏃🏻‍♂️"

// SMSSender dispatches one message to one phone number
type SMSSender interface {
	Send(ctx context.Context, number, message string) error
}

// TrackingLinks are the two shareable artifacts derived from a location update
type TrackingLinks struct {
	LivePage   string `json:"live_page_link"`
	GoogleMaps string `json:"google_maps_link"`
}

// LocationService implements the location tracking and alerting workflow
type LocationService interface {
	// UpdateLocation persists the coordinates and returns the shareable
	// links. When notify is set the links are additionally broadcast over
	// SMS; a broadcast failure is returned alongside the links and the
	// persisted update stands either way.
	UpdateLocation(ctx context.Context, userID int, lat, lon float64, notify bool) (*TrackingLinks, error)
	LastLocation(ctx context.Context, userID int) (lat, lon float64, err error)
	SendSOS(ctx context.Context, userID int) error
}

type locationService struct {
	userRepo repository.UserRepository
	sender   SMSSender
	baseURL  string
}

// NewLocationService creates a new LocationService. baseURL is the externally
// visible origin used to build the live tracking page link.
func NewLocationService(userRepo repository.UserRepository, sender SMSSender, baseURL string) LocationService {
	return &locationService{userRepo: userRepo, sender: sender, baseURL: baseURL}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// links builds the public tracking page URL and the direct map link for the
// given user and coordinates.
func (s *locationService) links(userID int, lat, lon float64) *TrackingLinks {
	return &TrackingLinks{
		LivePage:   fmt.Sprintf("%s/track/%d", s.baseURL, userID),
		GoogleMaps: fmt.Sprintf("https://www.google.com/maps?q=%s,%s", formatCoord(lat), formatCoord(lon)),
	}
}

func (s *locationService) UpdateLocation(ctx context.Context, userID int, lat, lon float64, notify bool) (*TrackingLinks, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return nil, ErrInvalidCoordinate
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateLocation(ctx, user.ID, lat, lon); err != nil {
		return nil, fmt.Errorf("failed to persist location: %w", err)
	}

	links := s.links(user.ID, lat, lon)

	if notify {
		if err := s.broadcast(ctx, user.Number, links); err != nil {
			// The update is already persisted; the caller decides how to
			// report the failed broadcast.
			return links, err
		}
	}

	return links, nil
}

// broadcast sends both shareable links to the given number. Fires on every
// call; deduplication is deliberately absent.
func (s *locationService) broadcast(ctx context.Context, number string, links *TrackingLinks) error {
	message := fmt.Sprintf("📍 My Location Update:\nGoogle Maps: %s\nLive Tracking: %s",
		links.GoogleMaps, links.LivePage)
	return s.sender.Send(ctx, number, message)
}

func (s *locationService) LastLocation(ctx context.Context, userID int) (float64, float64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.HasLocation() {
		return 0, 0, ErrNoLocation
	}
	return *user.LastLat, *user.LastLon, nil
}

// SendSOS dispatches the fixed distress message to the user's registered
// number. Nothing is persisted; the result mirrors the gateway's.
func (s *locationService) SendSOS(ctx context.Context, userID int) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.sender.Send(ctx, user.Number, sosMessage)
}
