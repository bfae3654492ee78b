package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wildcat-one/portalclient/internal"
	"github.com/wildcat-one/portalclient/secure"
)

// DefaultTimeout bounds a call when the config does not say otherwise.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the current bearer credential, or "" when logged out.
// The session store satisfies this.
type TokenSource interface {
	Token() string
}

// Config carries the wiring of a transport [Client].
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	// RelayURL is the CORS relay base; the percent-encoded target URL is
	// appended directly, so the value must end with its url= query parameter
	// (e.g. "https://relay.example/?url=").
	RelayURL string
	// Origin is the static origin tag sent as X-Origin and signed into every
	// request.
	Origin string
	// Timeout bounds each call; DefaultTimeout when zero.
	Timeout time.Duration
}

// CallOptions adjusts a single call.
type CallOptions struct {
	// IsLoginRequest suppresses the onUnauthorized hook for this call: a 401
	// during login means bad credentials, not an expired session.
	IsLoginRequest bool
}

// Result is the uniform outcome of a completed HTTP exchange.
type Result struct {
	Status int
	// Data is the normalized JSON body. For an empty body on a non-OK
	// response it carries {"message": "<status line>"}.
	Data json.RawMessage
	// Success reports a 2xx status.
	Success bool
}

// Decode unmarshals the normalized body into v.
func (r *Result) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}

// Client performs authenticated portal calls. All methods are safe for
// concurrent use once wiring is complete.
type Client struct {
	http           *http.Client
	codec          *secure.Codec
	tokens         TokenSource
	relayURL       string
	origin         string
	timeout        time.Duration
	onUnauthorized func()
}

// NewClient wires a transport client. httpClient may be nil for the default
// client; tokens may be nil when no session store exists yet (the bearer
// header then carries the literal "undefined", which the backend treats as
// anonymous).
func NewClient(httpClient *http.Client, codec *secure.Codec, tokens TokenSource, cfg Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:     httpClient,
		codec:    codec,
		tokens:   tokens,
		relayURL: cfg.RelayURL,
		origin:   cfg.Origin,
		timeout:  timeout,
	}
}

// SetOnUnauthorized injects the hook invoked when a non-login call observes a
// 401. Supplied once at wiring time, before the client is shared.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Call performs one authenticated request. A non-nil body is encrypted and
// wrapped as {"encrypted": ...}. See the package documentation for the
// outcome contract.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any, baseURL string, opts CallOptions) (*Result, error) {
	target := baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		cipherText, err := c.codec.Encrypt(body)
		if err != nil {
			return nil, &RequestError{Kind: ErrRequestEncode, Cause: err}
		}
		wrapped, err := json.Marshal(map[string]string{"encrypted": cipherText})
		if err != nil {
			return nil, &RequestError{Kind: ErrRequestEncode, Cause: err}
		}
		reqBody = bytes.NewReader(wrapped)
	}

	nonce, err := internal.NewNonce()
	if err != nil {
		return nil, &RequestError{Kind: ErrRequestEncode, Cause: err}
	}
	salt, err := secure.NewSalt()
	if err != nil {
		return nil, &RequestError{Kind: ErrRequestEncode, Cause: err}
	}
	signature := c.codec.Sign(nonce, c.origin, method, salt)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.relayURL+url.QueryEscape(target), reqBody)
	if err != nil {
		return nil, &RequestError{Kind: ErrRequestEncode, Cause: err}
	}

	token := "undefined"
	if c.tokens != nil {
		if t := c.tokens.Token(); t != "" {
			token = t
		}
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Origin", c.origin)
	req.Header.Set("X-HMAC-Nonce", nonce)
	req.Header.Set("X-HMAC-Salt", salt)
	req.Header.Set("X-HMAC-Signature", signature)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &RequestError{Kind: ErrTimeout, Cause: err}
		}
		return nil, &RequestError{Kind: ErrNetwork, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &RequestError{Kind: ErrTimeout, Cause: err}
		}
		return nil, &RequestError{Kind: ErrNetwork, Cause: err}
	}

	result, err := c.decodeResponse(resp, strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.IsLoginRequest && c.onUnauthorized != nil {
		// Side effect only: the 401 result still goes back to the caller.
		c.onUnauthorized()
	}

	return result, nil
}

// decodeResponse normalizes the body: text/plain means an encrypted payload,
// anything else is read as JSON. The body is always consumed as text first —
// the backend does not reliably set JSON content types on error paths.
func (c *Client) decodeResponse(resp *http.Response, body string) (*Result, error) {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if body == "" {
		if !ok {
			return &Result{
				Status:  resp.StatusCode,
				Data:    messageBody(resp.Status),
				Success: false,
			}, nil
		}
		return nil, &RequestError{Status: resp.StatusCode, Kind: ErrEmptyResponse}
	}

	var data json.RawMessage
	var parseErr error
	if strings.Contains(resp.Header.Get("Content-Type"), "text/plain") {
		data, parseErr = c.codec.Decrypt(body)
	} else if json.Valid([]byte(body)) {
		data = json.RawMessage(body)
	} else {
		parseErr = errors.New("body is not valid JSON")
	}

	if parseErr != nil {
		if !ok {
			return &Result{
				Status:  resp.StatusCode,
				Data:    messageBody(body),
				Success: false,
			}, nil
		}
		return nil, &RequestError{Status: resp.StatusCode, Kind: ErrResponseParse, Cause: parseErr}
	}

	return &Result{Status: resp.StatusCode, Data: data, Success: ok}, nil
}

func messageBody(message string) json.RawMessage {
	raw, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return json.RawMessage(`{"message":"request failed"}`)
	}
	return raw
}

// Get performs an authenticated GET.
func (c *Client) Get(ctx context.Context, endpoint, baseURL string) (*Result, error) {
	return c.Call(ctx, http.MethodGet, endpoint, nil, baseURL, CallOptions{})
}

// Post performs an authenticated POST with an encrypted body.
func (c *Client) Post(ctx context.Context, endpoint string, body any, baseURL string, opts CallOptions) (*Result, error) {
	return c.Call(ctx, http.MethodPost, endpoint, body, baseURL, opts)
}

// Put performs an authenticated PUT with an encrypted body.
func (c *Client) Put(ctx context.Context, endpoint string, body any, baseURL string) (*Result, error) {
	return c.Call(ctx, http.MethodPut, endpoint, body, baseURL, CallOptions{})
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, endpoint, baseURL string) (*Result, error) {
	return c.Call(ctx, http.MethodDelete, endpoint, nil, baseURL, CallOptions{})
}
