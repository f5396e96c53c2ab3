// Package httpjson performs the JSON GET requests shared by the upstream clients.
package httpjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/matchday-bot/internal/ports"
)

const maxBodyBytes = 4 << 20

type Request struct {
	BaseURL string
	Path    string
	Query   url.Values
	Header  http.Header
}

func (r Request) URL() string {
	endpoint := strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		endpoint += "?" + r.Query.Encode()
	}
	return endpoint
}

// Get decodes the JSON body of a GET into out. A 429 answer wraps ports.ErrRateLimited.
func Get(ctx context.Context, client *http.Client, req Request, out any) error {
	if client == nil {
		client = http.DefaultClient
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", "matchday-bot")
	for key, values := range req.Header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	response, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d: retry-after %q", ports.ErrRateLimited, response.StatusCode, response.Header.Get("Retry-After"))
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &StatusError{Code: response.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	return nil
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}
