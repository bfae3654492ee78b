package portalclient

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by portalclient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Endpoints EndpointsConfig
	Secrets   SecretsConfig
	HTTP      HTTPConfig
	Login     LoginConfig
	Storage   StorageConfig
}

/*
====================================
ENDPOINTS CONFIG
====================================
*/

// EndpointsConfig defines a public type used by portalclient APIs.
//
// EndpointsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EndpointsConfig struct {
	// BaseURL serves the academic data endpoints (years, terms).
	BaseURL string
	// LoginURL serves authentication and profile endpoints.
	LoginURL string
	// RelayURL is the CORS relay base every request is routed through. The
	// percent-encoded target URL is appended directly, so the value must end
	// with its url= query parameter.
	RelayURL string
}

/*
====================================
SECRETS CONFIG
====================================
*/

// SecretsConfig defines a public type used by portalclient APIs.
//
// SecretsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// These values ship inside every client deployment: they identify the
// application to the backend but authenticate nothing. Real access control is
// the per-student bearer token.
type SecretsConfig struct {
	// EncryptionKey derives the AES key (SHA-256) and IV (first 16 bytes).
	EncryptionKey string
	// HMACSecret keys the request signature.
	HMACSecret string
	// ClientSecret is appended to the signed material.
	ClientSecret string
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig defines a public type used by portalclient APIs.
//
// HTTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPConfig struct {
	// Timeout bounds every request; 30 s when zero.
	Timeout time.Duration
	// Origin is the static origin tag sent and signed with every request.
	Origin string
}

/*
====================================
LOGIN CONFIG
====================================
*/

// LoginConfig defines a public type used by portalclient APIs.
//
// LoginConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginConfig struct {
	// ClientID is the fixed application identifier sent with login requests.
	ClientID string
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by portalclient APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	// Prefix namespaces every durable session key.
	Prefix string
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig returns the staging-portal wiring: callers override endpoints
// and secrets for other deployments through [Builder.WithConfig].
func DefaultConfig() Config {
	return Config{
		Endpoints: EndpointsConfig{
			BaseURL:  "https://rg-cit-u-staging-004-wa-014.azurewebsites.net",
			LoginURL: "https://rg-cit-u-staging-004-wa-017.azurewebsites.net",
			RelayURL: "https://wildcat-one-api-proxy.adriangwapoz125.workers.dev/?url=",
		},
		Secrets: SecretsConfig{
			EncryptionKey: "anotherUniqueSuperSecretKeyEnrollmentAdmin123",
			HMACSecret:    "ourSuperSecretKeyEnrollmentAdmin123",
			ClientSecret:  "aP9!vB7@kL3#xY5$zQ2^mN8&dR1*oW6%uJ4(eT0)",
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
			Origin:  "studentportal",
		},
		Login: LoginConfig{
			ClientID: "001",
		},
		Storage: StorageConfig{
			Prefix: "wildcatOne_",
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c Config) Validate() error {
	if c.Endpoints.BaseURL == "" {
		return errors.New("Endpoints.BaseURL required")
	}
	if c.Endpoints.LoginURL == "" {
		return errors.New("Endpoints.LoginURL required")
	}
	if c.Endpoints.RelayURL == "" {
		return errors.New("Endpoints.RelayURL required")
	}
	if !strings.Contains(c.Endpoints.RelayURL, "?url=") {
		return errors.New("Endpoints.RelayURL must carry its url= query parameter")
	}
	if len(c.Secrets.EncryptionKey) < 16 {
		return errors.New("Secrets.EncryptionKey must be at least 16 bytes")
	}
	if c.Secrets.HMACSecret == "" {
		return errors.New("Secrets.HMACSecret required")
	}
	if c.Secrets.ClientSecret == "" {
		return errors.New("Secrets.ClientSecret required")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("HTTP.Timeout must not be negative")
	}
	if c.HTTP.Origin == "" {
		return errors.New("HTTP.Origin required")
	}
	if c.Login.ClientID == "" {
		return errors.New("Login.ClientID required")
	}
	if c.Storage.Prefix == "" {
		return errors.New("Storage.Prefix required")
	}
	return nil
}

func cloneConfig(c Config) Config {
	// Every section is value-only; a struct copy is a deep copy.
	return c
}
