// Package koura is a client for the Koura Wealth investor portal API.
//
// The portal is not a public API: requests need a bearer token obtained from
// the signin endpoint plus the Origin and X-User-Tag headers the web app
// sends, or they are rejected.
package koura

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

const (
	defaultHost = "https://portal.kourawealth.co.nz"
	origin      = "https://my.kourawealth.co.nz"
)

// Client talks to the Koura Wealth portal on behalf of one investor.
type Client struct {
	// Host is the portal base URL, overridable for tests.
	Host string
	// UserTag is sent as the X-User-Tag header. A fresh tag is generated
	// per client when none is configured.
	UserTag string

	username string
	password string
	token    string
	http     *http.Client
}

// NewClient returns an unauthenticated portal client.
// Call Signin, or let the first query sign in lazily.
func NewClient(username, password string) *Client {
	return &Client{
		Host:     defaultHost,
		UserTag:  uuid.NewString(),
		username: username,
		password: password,
		http:     http.DefaultClient,
	}
}

// Signin authenticates against the portal and keeps the session token for
// subsequent queries.
func (c *Client) Signin() error {
	payload, err := json.Marshal(map[string]string{
		"Username": c.username,
		"Password": c.password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.Host+"/api/clients/auth/signin", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("cannot create signin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", origin)
	req.Header.Set("X-User-Tag", c.UserTag)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot execute signin request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read signin response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signin failed: %s: %s", resp.Status, body)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return fmt.Errorf("could not decode signin response: %w", err)
	}
	c.token = data.Token
	log.Println("authenticated with Koura Wealth")
	return nil
}

// get queries an API path with the session headers and unmarshals the JSON
// response into data, signing in first when there is no token yet.
func (c *Client) get(path string, query url.Values, data any) error {
	raw, err := c.getRaw(path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("could not decode portal response for %s: %w", path, err)
	}
	return nil
}

// getRaw is like get but returns the undecoded body. The portal's deeper
// payloads have no documented shape, so some callers keep them raw.
func (c *Client) getRaw(path string, query url.Values) ([]byte, error) {
	if c.token == "" {
		if err := c.Signin(); err != nil {
			return nil, err
		}
	}

	addr := c.Host + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Origin", origin)
	req.Header.Set("X-User-Tag", c.UserTag)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	body := resp.Body
	defer body.Close()

	// reading in a buffer to be able to print the json in debug mode
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, fmt.Errorf("cannot read receiving http body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %s: %s: %s", path, resp.Status, buf.String())
	}
	return buf.Bytes(), nil
}
