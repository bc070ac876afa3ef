package hue

import (
	"errors"
	"fmt"
)

// Error type codes the bridge is known to report (v1 API).
const (
	bridgeCodeUnauthorized     = 1
	bridgeCodeResourceNotFound = 3
	bridgeCodeLinkButton       = 101
)

var (
	// ErrLinkButtonNotPressed means the bridge refused to create a user
	// because its physical link button wasn't pressed beforehand.
	ErrLinkButtonNotPressed = errors.New("link button not pressed")
	ErrUnauthorizedUser     = errors.New("unauthorized user")
	// ErrLightNotFound covers both the bridge reporting a missing resource
	// and a client-side lookup miss (e.g. a toggle target absent from the
	// lights listing).
	ErrLightNotFound = errors.New("light not found")

	ErrInvalidHeaderName  = errors.New("invalid header name")
	ErrInvalidHeaderValue = errors.New("invalid header value")
)

// TransportError is a network-level failure reaching the bridge. HTTP status
// codes are never classified here, the bridge signals its errors in-body.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error reaching hue bridge at %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SerializationError means a response body did not match the JSON shape
// expected for the endpoint. Snippet holds at most 200 characters of the raw
// body for diagnosis.
type SerializationError struct {
	Snippet string
	Err     error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("error parsing bridge response %q: %v", e.Snippet, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// UnexpectedResponseError means the body parsed as valid JSON but was
// structurally unusable, e.g. an empty entry array where one entry was
// expected.
type UnexpectedResponseError struct {
	Snippet string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response from hue bridge: %q", e.Snippet)
}

// BridgeError carries an error entry explicitly reported by the bridge, with
// its numeric type code and description verbatim.
type BridgeError struct {
	Code        int
	Address     string
	Description string
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("bridge error %d at %s: %s", e.Code, e.Address, e.Description)
}

// Is maps the known bridge type codes onto the sentinel kinds so callers can
// match with errors.Is without knowing the numeric codes.
func (e *BridgeError) Is(target error) bool {
	switch target {
	case ErrLinkButtonNotPressed:
		return e.Code == bridgeCodeLinkButton
	case ErrUnauthorizedUser:
		return e.Code == bridgeCodeUnauthorized
	case ErrLightNotFound:
		return e.Code == bridgeCodeResourceNotFound
	}
	return false
}

const maxSnippetLen = 200

// snippet truncates a raw response body for logging and error messages.
func snippet(body string) string {
	if len(body) > maxSnippetLen {
		return body[:maxSnippetLen]
	}
	return body
}
