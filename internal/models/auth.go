package models

import "time"

// Principal is the caller identity returned by token introspection.
type Principal struct {
	Subject   string    `json:"sub"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	ClientID  string    `json:"clientId,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}
