package portalclient

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/wildcat-one/portalclient/session"
)

// RestoreSession describes the restoresession operation and its observable behavior.
//
// RestoreSession rebuilds a usable session from persisted state without
// credentials. Absent state is a quiet failure. An incomplete session is
// repaired by re-running the academic bootstrap; a complete one is probed
// against the profile endpoint for token liveness. Every failure past the
// absent-state check logs out, so the store never retains a session that was
// rejected here.
func (c *Client) RestoreSession(ctx context.Context) *RestoreResult {
	token := c.store.Token()
	ud := c.store.UserData()
	if token == "" || ud == nil {
		return &RestoreResult{}
	}

	// Best-effort expiry peek: the portal issues JWTs, but the token stays
	// an opaque credential when it does not parse as one.
	if exp, ok := session.TokenExpiry(token); ok && time.Now().After(exp) {
		log.Print("portalclient: persisted token already expired, logging out")
		c.Logout()
		return &RestoreResult{}
	}

	if !c.store.HasValidSession() {
		log.Print("portalclient: incomplete session data, re-running academic bootstrap")
		if _, err := c.BootstrapAcademicContext(ctx, ud); err != nil {
			log.Print("portalclient: bootstrap during restore failed, logging out")
			c.Logout()
			return &RestoreResult{}
		}
		if !c.store.HasValidSession() {
			c.Logout()
			return &RestoreResult{}
		}
		return &RestoreResult{Success: true, UserData: ud}
	}

	res, err := c.api.Get(ctx, "/api/user/student/"+ud.UserID+"/info", c.config.Endpoints.LoginURL)
	if err != nil || res.Status != http.StatusOK {
		log.Print("portalclient: token liveness probe failed, logging out")
		c.Logout()
		return &RestoreResult{}
	}

	return &RestoreResult{Success: true, UserData: ud}
}
