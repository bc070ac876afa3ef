package models

import (
	"fmt"
	"strings"
)

// LightID is the bridge-assigned numeric key for a light, opaque to us.
type LightID uint32

// LightState is a patch: only fields that are set are serialized, anything
// omitted is left untouched by the bridge. Hue is circular, 0 and 65535
// denote the same colour.
type LightState struct {
	On         *bool   `json:"on,omitempty"`
	Brightness *uint8  `json:"bri,omitempty"`
	Hue        *uint16 `json:"hue,omitempty"`
	Saturation *uint8  `json:"sat,omitempty"`
}

func (s LightState) WithOn(on bool) LightState {
	s.On = &on
	return s
}

func (s LightState) WithBrightness(bri uint8) LightState {
	s.Brightness = &bri
	return s
}

func (s LightState) WithHue(hue uint16) LightState {
	s.Hue = &hue
	return s
}

func (s LightState) WithSaturation(sat uint8) LightState {
	s.Saturation = &sat
	return s
}

// Empty reports whether no field of the patch is set.
func (s LightState) Empty() bool {
	return s.On == nil && s.Brightness == nil && s.Hue == nil && s.Saturation == nil
}

func (s LightState) String() string {
	var parts []string
	if s.On != nil {
		parts = append(parts, fmt.Sprintf("on=%t", *s.On))
	}
	if s.Brightness != nil {
		parts = append(parts, fmt.Sprintf("bri=%d", *s.Brightness))
	}
	if s.Hue != nil {
		parts = append(parts, fmt.Sprintf("hue=%d", *s.Hue))
	}
	if s.Saturation != nil {
		parts = append(parts, fmt.Sprintf("sat=%d", *s.Saturation))
	}
	return strings.Join(parts, " ")
}

// Light is what the bridge reports about one light. Read-only, fetched
// fresh per query.
type Light struct {
	State LightState `json:"state"`
	Name  string     `json:"name"`
	Type  string     `json:"type"`
}

// LightResponse maps light IDs to lights, as returned by the lights listing.
type LightResponse map[LightID]Light

// User is the create-user request/response value. Outbound it carries only
// the devicetype being registered, inbound only the username the bridge
// issued.
type User struct {
	DeviceType string `json:"devicetype,omitempty"`
	Username   string `json:"username,omitempty"`
}
