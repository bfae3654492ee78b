package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reports the expiry claim of a JWT-shaped bearer token. The
// signature is NOT verified — the server is the authority on token validity;
// this is only a local hint that lets a restore skip a liveness probe the
// backend is guaranteed to reject. Tokens that are not JWTs, or carry no exp
// claim, report false and stay fully opaque.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
