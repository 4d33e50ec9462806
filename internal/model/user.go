package model

// User represents a club member in the system
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Do not expose password hash in JSON responses
	Number       string `json:"number"`
	// Last known position; nil until the first location update writes both.
	LastLat *float64 `json:"last_lat,omitempty"`
	LastLon *float64 `json:"last_lon,omitempty"`
}

// HasLocation reports whether a position has ever been recorded for the user.
func (u *User) HasLocation() bool {
	return u.LastLat != nil && u.LastLon != nil
}
