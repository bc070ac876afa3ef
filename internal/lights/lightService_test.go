package lights_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgambrell/huelight/internal/config"
	"github.com/cgambrell/huelight/internal/hue"
	"github.com/cgambrell/huelight/internal/lights"
	"github.com/cgambrell/huelight/internal/models"
)

type stubAPI struct {
	lights    models.LightResponse
	getErr    error
	setCalls  int
	lastID    models.LightID
	lastState models.LightState
}

func (s *stubAPI) GetAllLights(_ context.Context, _ string, _ string) (models.LightResponse, error) {
	return s.lights, s.getErr
}

func (s *stubAPI) SetLightState(_ context.Context, _ string, _ string, id models.LightID, state models.LightState) ([]hue.ResponseEntry, error) {
	s.setCalls++
	s.lastID = id
	s.lastState = state
	return []hue.ResponseEntry{{Success: map[string]any{"/lights/1/state/on": true}}}, nil
}

var testConfig = config.BridgeConfig{BridgeIP: "127.0.0.1", Username: "testuser"}

func Test_List_ReturnsIDsSorted(t *testing.T) {
	api := &stubAPI{lights: models.LightResponse{
		7: {Name: "Hall"},
		1: {Name: "Living Room"},
		3: {Name: "Bedroom"},
	}}
	service := lights.NewLightService(api)

	ids, all, err := service.List(context.Background(), testConfig)

	require.NoError(t, err)
	assert.Equal(t, []models.LightID{1, 3, 7}, ids)
	assert.Len(t, all, 3)
}

func Test_Toggle_FlipsCurrentState(t *testing.T) {
	tests := []struct {
		name     string
		state    models.LightState
		expected bool
	}{
		{name: "on light is turned off", state: models.LightState{}.WithOn(true), expected: false},
		{name: "off light is turned on", state: models.LightState{}.WithOn(false), expected: true},
		{name: "unknown state counts as off", state: models.LightState{}, expected: true},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			api := &stubAPI{lights: models.LightResponse{2: {Name: "Bedroom", State: c.state}}}
			service := lights.NewLightService(api)

			_, err := service.Toggle(context.Background(), testConfig, 2)

			require.NoError(t, err)
			assert.Equal(t, 1, api.setCalls)
			assert.Equal(t, models.LightID(2), api.lastID)
			require.NotNil(t, api.lastState.On)
			assert.Equal(t, c.expected, *api.lastState.On)

			// a toggle patches only the on field
			assert.Nil(t, api.lastState.Brightness)
			assert.Nil(t, api.lastState.Hue)
			assert.Nil(t, api.lastState.Saturation)
		})
	}
}

func Test_Toggle_MissingLight(t *testing.T) {
	api := &stubAPI{lights: models.LightResponse{1: {Name: "Living Room"}}}
	service := lights.NewLightService(api)

	_, err := service.Toggle(context.Background(), testConfig, 99)

	assert.ErrorIs(t, err, hue.ErrLightNotFound)
	// no write is attempted for a light we couldn't find
	assert.Equal(t, 0, api.setCalls)
}
