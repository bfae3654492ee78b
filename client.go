package portalclient

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/wildcat-one/portalclient/session"
	"github.com/wildcat-one/portalclient/transport"
)

// Client defines a public type used by portalclient APIs.
//
// Client is the session orchestrator: it owns the store, the transport, and
// the login/restore/logout lifecycle. Construct one through [Builder]; all
// methods are safe for concurrent use.
type Client struct {
	config Config
	store  *session.Store
	api    *transport.Client
	guard  LoadGuard

	onInvalidated func()
	invalidateMu  sync.Mutex
	stopWatch     func()
}

// Session returns the session store for direct reads and subscriptions.
func (c *Client) Session() *session.Store {
	return c.store
}

// API returns the transport client for endpoints this package does not wrap.
func (c *Client) API() *transport.Client {
	return c.api
}

// Guard returns the client's load guard for epoch-checked data loads.
func (c *Client) Guard() *LoadGuard {
	return &c.guard
}

// Login describes the login operation and its observable behavior.
//
// Login validates the credentials locally, authenticates against the portal,
// persists the token and identity, and bootstraps the academic context. A
// 401 or a token-less response maps to [ErrInvalidCredentials]; a bootstrap
// failure surfaces wrapped in [ErrBootstrap] with the credentials already
// persisted, so a later [Client.RestoreSession] can retry the bootstrap.
func (c *Client) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	if err := validateInput(loginInput{StudentID: userID, Password: password}); err != nil {
		return nil, err
	}

	res, err := c.api.Post(ctx, "/api/User/student/login",
		loginRequest{UserID: userID, Password: password, ClientID: c.config.Login.ClientID},
		c.config.Endpoints.LoginURL,
		transport.CallOptions{IsLoginRequest: true},
	)
	if err != nil {
		return nil, err
	}

	if res.Status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}

	var lr loginResponse
	if err := res.Decode(&lr); err != nil || lr.Token == "" || lr.UserInfo == nil {
		return nil, ErrInvalidCredentials
	}

	c.store.SetToken(lr.Token)
	c.store.SetUserData(lr.UserInfo)

	if _, err := c.BootstrapAcademicContext(ctx, lr.UserInfo); err != nil {
		return nil, err
	}

	return &LoginResult{Success: true, UserData: lr.UserInfo}, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout resets the session store. It is idempotent and never fails.
func (c *Client) Logout() {
	c.store.Reset()
}

// IsAuthenticated reports whether a token and identity are present. This is
// weaker than [session.Store.HasValidSession]: the academic context may still
// be missing.
func (c *Client) IsAuthenticated() bool {
	return c.store.Token() != "" && c.store.UserData() != nil
}

// CurrentUser returns the logged-in identity, or nil.
func (c *Client) CurrentUser() *session.UserData {
	return c.store.UserData()
}

// invalidateSession tears the session down after an auth failure. The token
// presence check under the mutex makes concurrent 401s collapse into one
// reset and one callback.
func (c *Client) invalidateSession() {
	c.invalidateMu.Lock()
	defer c.invalidateMu.Unlock()

	if c.store.Token() == "" {
		return
	}

	log.Print("portalclient: session invalidated, clearing stored state")
	c.store.Reset()

	if c.onInvalidated != nil {
		c.onInvalidated()
	}
}

// Close releases the background token watcher. The client must not be used
// after Close.
func (c *Client) Close() {
	if c.stopWatch != nil {
		c.stopWatch()
	}
}
