package session

import (
	"net/http"
	"time"
)

// Transport carries the session ID between browser and server.
type Transport interface {
	GetID(r *http.Request) (string, error)
	SetID(w http.ResponseWriter, id string, ttl time.Duration) error
	ClearID(w http.ResponseWriter) error
}
