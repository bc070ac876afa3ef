package hue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

// Header is one name/value pair attached to an outgoing request.
type Header struct {
	Name  string
	Value string
}

// Transport executes plain HTTP calls. It knows nothing about hue
// semantics; the bridge reports its errors in the response body, so callers
// must treat any returned text as potentially carrying an error entry.
type Transport interface {
	Get(ctx context.Context, url string, headers []Header) (string, error)
	Post(ctx context.Context, url string, body string, headers []Header) (string, error)
	Put(ctx context.Context, url string, body string, headers []Header) (string, error)
}

const defaultTimeout = 30 * time.Second

// HTTPTransport is the real Transport over net/http. No retries, default
// timeout only.
type HTTPTransport struct {
	client *http.Client
}

func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (t *HTTPTransport) Get(ctx context.Context, url string, headers []Header) (string, error) {
	return t.makeRequest(ctx, http.MethodGet, url, "", headers)
}

func (t *HTTPTransport) Post(ctx context.Context, url string, body string, headers []Header) (string, error) {
	return t.makeRequest(ctx, http.MethodPost, url, body, headers)
}

func (t *HTTPTransport) Put(ctx context.Context, url string, body string, headers []Header) (string, error) {
	return t.makeRequest(ctx, http.MethodPut, url, body, headers)
}

func (t *HTTPTransport) makeRequest(ctx context.Context, method string, url string, body string, headers []Header) (string, error) {

	// validate before anything touches the network
	if err := validateHeaders(headers); err != nil {
		return "", err
	}

	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	for _, h := range headers {
		req.Header.Add(h.Name, h.Value)
	}

	// make the request
	resp, err := t.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	// the bridge signals failures in-body, not via status codes, so the
	// text is returned regardless of status
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	return string(raw), nil
}

// validateHeaders checks names and values against the HTTP field grammar.
func validateHeaders(headers []Header) error {
	for _, h := range headers {
		if !httpguts.ValidHeaderFieldName(h.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidHeaderName, h.Name)
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return fmt.Errorf("%w: %s", ErrInvalidHeaderValue, h.Name)
		}
	}
	return nil
}
