package portalclient

import (
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig must validate: %v", err)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.Endpoints.BaseURL = "" }},
		{"missing login url", func(c *Config) { c.Endpoints.LoginURL = "" }},
		{"missing relay url", func(c *Config) { c.Endpoints.RelayURL = "" }},
		{"relay without url param", func(c *Config) { c.Endpoints.RelayURL = "https://relay.example/" }},
		{"short encryption key", func(c *Config) { c.Secrets.EncryptionKey = "tooshort" }},
		{"missing hmac secret", func(c *Config) { c.Secrets.HMACSecret = "" }},
		{"missing client secret", func(c *Config) { c.Secrets.ClientSecret = "" }},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }},
		{"missing origin", func(c *Config) { c.HTTP.Origin = "" }},
		{"missing client id", func(c *Config) { c.Login.ClientID = "" }},
		{"missing storage prefix", func(c *Config) { c.Storage.Prefix = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation to fail")
			}
		})
	}
}

func TestCloneConfigIsIndependent(t *testing.T) {
	original := DefaultConfig()
	clone := cloneConfig(original)

	clone.Endpoints.BaseURL = "https://other.example"
	clone.Storage.Prefix = "other_"

	if original.Endpoints.BaseURL == clone.Endpoints.BaseURL {
		t.Fatal("clone must not share endpoint state")
	}
	if original.Storage.Prefix != "wildcatOne_" {
		t.Fatal("clone mutation leaked into the original")
	}
}
