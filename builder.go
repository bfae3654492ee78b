package portalclient

import (
	"errors"
	"net/http"

	"github.com/wildcat-one/portalclient/secure"
	"github.com/wildcat-one/portalclient/session"
	"github.com/wildcat-one/portalclient/transport"
)

// Builder defines a public type used by portalclient APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config     Config
	storage    session.Storage
	httpClient *http.Client

	onInvalidated func()

	built bool
}

// New describes the new operation and its observable behavior.
//
// New starts a builder preloaded with [DefaultConfig]; every dependency has a
// working default, so New().Build() yields a usable client.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig replaces the whole configuration. The config is validated at
// Build, not here.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
//
// WithStorage selects the durable session backend. Defaults to an in-memory
// store; pass a [session.RedisStorage] for cross-process persistence and
// logout propagation.
func (b *Builder) WithStorage(storage session.Storage) *Builder {
	b.storage = storage
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient replaces the underlying HTTP client, e.g. to install a
// custom transport or proxy.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithOnSessionInvalidated describes the withonsessioninvalidated operation and its observable behavior.
//
// WithOnSessionInvalidated registers the callback fired after the session is
// torn down by a 401 or an external token removal. The callback runs at most
// once per session and must not block.
func (b *Builder) WithOnSessionInvalidated(fn func()) *Builder {
	b.onInvalidated = fn
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build is single-use: a second call on the same builder fails.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storage := b.storage
	if storage == nil {
		storage = session.NewMemoryStorage()
	}

	codec, err := secure.NewCodec(
		cfg.Secrets.EncryptionKey,
		cfg.Secrets.HMACSecret,
		cfg.Secrets.ClientSecret,
	)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(storage, cfg.Storage.Prefix)

	api := transport.NewClient(b.httpClient, codec, store, transport.Config{
		RelayURL: cfg.Endpoints.RelayURL,
		Origin:   cfg.HTTP.Origin,
		Timeout:  cfg.HTTP.Timeout,
	})

	client := &Client{
		config:        cfg,
		store:         store,
		api:           api,
		onInvalidated: b.onInvalidated,
	}

	// The transport reports auth failure back into the orchestrator; the
	// watcher surfaces token removals by other processes the same way.
	api.SetOnUnauthorized(client.invalidateSession)
	stop, err := store.WatchToken(client.invalidateSession)
	if err != nil {
		return nil, err
	}
	client.stopWatch = stop

	b.built = true

	return client, nil
}
