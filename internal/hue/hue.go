package hue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cgambrell/huelight/internal/logger"
	"github.com/cgambrell/huelight/internal/models"
)

const contentTypeJSON = "application/json"

// Service implements the bridge operations on top of an injected Transport.
// Each call is a single stateless request/response round trip; bridge
// address and credentials are supplied per call.
type Service struct {
	transport Transport
	logger    *logger.Sink
}

func NewService(transport Transport, logger *logger.Sink) *Service {
	return &Service{transport: transport, logger: logger}
}

// CreateUser asks the bridge to issue a username for deviceName. The link
// button on the bridge has to be pressed shortly before calling this,
// otherwise the bridge answers with ErrLinkButtonNotPressed.
func (s *Service) CreateUser(ctx context.Context, bridgeIP string, deviceName string) (models.User, error) {

	reqBody, err := json.Marshal(models.User{DeviceType: deviceName})
	if err != nil {
		return models.User{}, &SerializationError{Err: err}
	}

	url := fmt.Sprintf("http://%s/api", bridgeIP)
	res, err := s.transport.Post(ctx, url, string(reqBody), []Header{{Name: "Content-Type", Value: contentTypeJSON}})
	if err != nil {
		return models.User{}, err
	}

	var entries []CreateUserEntry
	if err := json.Unmarshal([]byte(res), &entries); err != nil {
		s.logger.Log(fmt.Sprintf("Failed to parse create-user response: %s", snippet(res)))
		return models.User{}, &SerializationError{Snippet: snippet(res), Err: err}
	}
	if len(entries) == 0 {
		s.logger.Log(fmt.Sprintf("Unexpected response from Hue Bridge: %s", snippet(res)))
		return models.User{}, &UnexpectedResponseError{Snippet: snippet(res)}
	}

	// single-request responses carry exactly one entry
	entry := entries[0]
	switch {
	case entry.Success != nil:
		s.logger.Log(fmt.Sprintf("User created successfully! Username: %s", entry.Success.Username))
		return models.User{Username: entry.Success.Username}, nil
	case entry.Error != nil:
		s.logger.Log(fmt.Sprintf("Error creating user: %s - %s", entry.Error.Address, entry.Error.Description))
		return models.User{}, bridgeError(*entry.Error)
	default:
		s.logger.Log(fmt.Sprintf("Unexpected response from Hue Bridge: %s", snippet(res)))
		return models.User{}, &UnexpectedResponseError{Snippet: snippet(res)}
	}
}

// GetAllLights returns every light the bridge knows about, keyed by ID.
func (s *Service) GetAllLights(ctx context.Context, bridgeIP string, username string) (models.LightResponse, error) {

	url := fmt.Sprintf("http://%s/api/%s/lights", bridgeIP, username)
	res, err := s.transport.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	// this endpoint answers with the map directly, not a wrapping entry array
	var lights models.LightResponse
	if err := json.Unmarshal([]byte(res), &lights); err != nil {
		s.logger.Log(fmt.Sprintf("Failed to parse lights from Hue Bridge response: %s", snippet(res)))
		return nil, &SerializationError{Snippet: snippet(res), Err: err}
	}

	s.logger.Log("Successfully retrieved lights from Hue Bridge.")
	return lights, nil
}

// SetLightState patches one light's state. The whole entry array is
// returned in the order received: a single call can accept one field and
// reject another, and only the caller knows which fields it cares about.
func (s *Service) SetLightState(ctx context.Context, bridgeIP string, username string, id models.LightID, state models.LightState) ([]ResponseEntry, error) {

	reqBody, err := json.Marshal(state)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	url := fmt.Sprintf("http://%s/api/%s/lights/%d/state", bridgeIP, username, id)
	res, err := s.transport.Put(ctx, url, string(reqBody), []Header{{Name: "Content-Type", Value: contentTypeJSON}})
	if err != nil {
		return nil, err
	}

	var entries []ResponseEntry
	if err := json.Unmarshal([]byte(res), &entries); err != nil {
		s.logger.Log(fmt.Sprintf("Failed to parse set-state response: %s", snippet(res)))
		return nil, &SerializationError{Snippet: snippet(res), Err: err}
	}

	s.logger.Log(fmt.Sprintf("Response from setting light %d state: %s", id, res))
	return entries, nil
}

func bridgeError(detail ErrorDetail) *BridgeError {
	return &BridgeError{Code: detail.Type, Address: detail.Address, Description: detail.Description}
}
