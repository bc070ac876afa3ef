package lights

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/cgambrell/huelight/internal/config"
	"github.com/cgambrell/huelight/internal/hue"
	"github.com/cgambrell/huelight/internal/models"
)

// bridgeAPI is the slice of the hue service the light service needs.
type bridgeAPI interface {
	GetAllLights(ctx context.Context, bridgeIP string, username string) (models.LightResponse, error)
	SetLightState(ctx context.Context, bridgeIP string, username string, id models.LightID, state models.LightState) ([]hue.ResponseEntry, error)
}

type LightService struct {
	api bridgeAPI
}

func NewLightService(api bridgeAPI) *LightService {
	return &LightService{api: api}
}

// List fetches all lights and returns their IDs in ascending order
// alongside the full response.
func (l *LightService) List(ctx context.Context, cfg config.BridgeConfig) ([]models.LightID, models.LightResponse, error) {
	lights, err := l.api.GetAllLights(ctx, cfg.BridgeIP, cfg.Username)
	if err != nil {
		return nil, nil, err
	}

	ids := lo.Keys(lights)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, lights, nil
}

// Set applies a state patch to one light.
func (l *LightService) Set(ctx context.Context, cfg config.BridgeConfig, id models.LightID, state models.LightState) ([]hue.ResponseEntry, error) {
	return l.api.SetLightState(ctx, cfg.BridgeIP, cfg.Username, id, state)
}

// Toggle reads the current on state of one light and writes the inverse. A
// target missing from the lights listing is reported as ErrLightNotFound
// without any write being attempted.
func (l *LightService) Toggle(ctx context.Context, cfg config.BridgeConfig, id models.LightID) ([]hue.ResponseEntry, error) {
	lights, err := l.api.GetAllLights(ctx, cfg.BridgeIP, cfg.Username)
	if err != nil {
		return nil, err
	}

	light, ok := lights[id]
	if !ok {
		return nil, fmt.Errorf("%w: light %d", hue.ErrLightNotFound, id)
	}

	on := light.State.On == nil || !*light.State.On
	return l.api.SetLightState(ctx, cfg.BridgeIP, cfg.Username, id, models.LightState{}.WithOn(on))
}
