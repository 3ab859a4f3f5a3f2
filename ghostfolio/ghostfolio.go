// Package ghostfolio is a client for the Ghostfolio REST API, covering the
// account, order, import and admin market-data endpoints the sync needs.
package ghostfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// Client talks to one Ghostfolio instance with a bearer token.
type Client struct {
	// Host is the instance base URL, e.g. "https://ghostfol.io".
	Host string

	token string
	http  *http.Client
}

// NewClient returns a client using the given bearer token directly.
func NewClient(host, token string) *Client {
	return &Client{Host: host, token: token, http: http.DefaultClient}
}

// NewClientFromKey exchanges a Ghostfolio security token (the account access
// key) for a bearer token and returns a client using it.
func NewClientFromKey(host, key string) (*Client, error) {
	log.Println("no bearer token provided, fetching one")

	c := &Client{Host: host, http: http.DefaultClient}
	var data struct {
		AuthToken string `json:"authToken"`
	}
	if err := c.do(http.MethodPost, "/api/v1/auth/anonymous", nil, map[string]string{"accessToken": key}, &data); err != nil {
		return nil, fmt.Errorf("cannot fetch bearer token: %w", err)
	}
	if data.AuthToken == "" {
		return nil, fmt.Errorf("empty bearer token returned by %s", host)
	}
	c.token = data.AuthToken
	log.Println("bearer token fetched")
	return c, nil
}

// do executes one API request. body is marshaled as JSON when non-nil, and
// the response is unmarshaled into data when non-nil. Any non-2xx status is
// an error carrying the response text.
func (c *Client) do(method, path string, query url.Values, body, data any) error {
	addr := c.Host + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, addr, reader)
	if err != nil {
		return fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return fmt.Errorf("cannot read receiving http body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cannot %s %s: %s: %s", method, path, resp.Status, buf.String())
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return fmt.Errorf("could not decode response for %s: %w", path, err)
	}
	return nil
}
