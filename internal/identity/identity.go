// ABOUTME: Identity provider for the per-request init-data auth payload.
// ABOUTME: Falls back to a synthetic payload from the cached user.
package identity

import (
	"encoding/json"
	"net/url"
)

// Provider supplies the opaque init-data string transmitted with every
// backend request. The host environment owns the real payload; outside it a
// best-effort synthetic one is built so development calls do not hard-fail.
type Provider interface {
	InitData() string
}

// Static serves a fixed init-data string, normally the one handed over by
// the host at launch.
type Static string

func (s Static) InitData() string { return string(s) }

// Cached builds identity from the locally cached user when the host payload
// is unavailable.
type Cached struct {
	UserID    int64
	FirstName string
}

// InitData returns a synthetic "user=<json>" payload, or "" when no user is
// cached. The shape matches what the backend's permissive development path
// accepts.
func (c Cached) InitData() string {
	if c.UserID == 0 {
		return ""
	}
	user := struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
	}{ID: c.UserID, FirstName: c.FirstName}
	if user.FirstName == "" {
		user.FirstName = "User"
	}

	data, err := json.Marshal(user)
	if err != nil {
		return ""
	}
	return "user=" + url.QueryEscape(string(data))
}

// Chain returns the first provider yielding a non-empty payload.
type Chain []Provider

func (c Chain) InitData() string {
	for _, p := range c {
		if d := p.InitData(); d != "" {
			return d
		}
	}
	return ""
}
