package models

import "time"

// Session is a mounted dashboard. The token identifies the browser tab that
// owns the dashboard; all state is dropped when the session ends.
type Session struct {
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	UserAgent  string    `json:"userAgent,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
}

// ExpiredAt reports whether the session has been idle past its expiry at now.
func (s Session) ExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
