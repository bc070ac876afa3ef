package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cgambrell/huelight/internal/config"
	"github.com/cgambrell/huelight/internal/hue"
	"github.com/cgambrell/huelight/internal/lights"
	"github.com/cgambrell/huelight/internal/logger"
	"github.com/cgambrell/huelight/internal/models"
)

const usage = `usage: huelight <command> [flags]

commands:
  setup        store the bridge address and username for later commands
  create-user  register a new user on the bridge (press the link button first)
  lights       list all lights known to the bridge
  set          change the state of one light
  toggle       flip one light on or off

environment:
  HUELIGHT_BRIDGE_IP, HUELIGHT_USERNAME   override the stored config
  HUELIGHT_LOG_LEVEL                      debug|info|warn|error (default info)
`

var errNoConfig = errors.New("no usable bridge configuration, run 'huelight setup' first")

func main() {

	viper.SetEnvPrefix("huelight")
	viper.AutomaticEnv()
	viper.SetDefault("log_level", "info")

	level := log.InfoLevel
	switch viper.GetString("log_level") {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	l := log.NewWithOptions(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename: "logs/huelight.log",
		MaxAge:   3,
	}), log.Options{
		Level:      level,
		TimeFormat: "2006/01/02 15:04:05",
	})

	sink := logger.NewSink(l)

	store := config.NewStore(config.NewOSFileAccess(), sink)
	service := hue.NewService(hue.NewHTTPTransport(), sink)
	lightService := lights.NewLightService(service)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "setup":
		err = runSetup(store, os.Args[2:])
	case "create-user":
		err = runCreateUser(ctx, service, os.Args[2:])
	case "lights":
		err = runLights(ctx, lightService, store)
	case "set":
		err = runSet(ctx, lightService, store, os.Args[2:])
	case "toggle":
		err = runToggle(ctx, lightService, store, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "huelight: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "huelight: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the stored config and applies environment overrides. A
// missing or incomplete config is reported as errNoConfig, distinct from
// lower-level file failures on a config that should exist.
func loadConfig(store *config.Store) (config.BridgeConfig, error) {
	cfg, err := store.Load()
	if err != nil {
		var fileErr *config.FileError
		if !errors.As(err, &fileErr) {
			return config.BridgeConfig{}, err
		}
		// missing file: fall through, env overrides may still complete it
	}

	if v := viper.GetString("bridge_ip"); v != "" {
		cfg.BridgeIP = v
	}
	if v := viper.GetString("username"); v != "" {
		cfg.Username = v
	}

	if !cfg.Complete() {
		return config.BridgeConfig{}, errNoConfig
	}
	return cfg, nil
}

func runSetup(store *config.Store, args []string) error {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	bridge := fs.String("bridge", "", "IP address of the Hue Bridge")
	username := fs.String("username", "", "username issued by the bridge")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *bridge == "" || *username == "" {
		return errors.New("setup requires -bridge and -username")
	}

	return store.Save(config.BridgeConfig{BridgeIP: *bridge, Username: *username})
}

func runCreateUser(ctx context.Context, service *hue.Service, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	bridge := fs.String("bridge", viper.GetString("bridge_ip"), "IP address of the Hue Bridge")
	device := fs.String("device", "huelightcli", "device name to register")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *bridge == "" {
		return errors.New("create-user requires -bridge")
	}

	user, err := service.CreateUser(ctx, *bridge, *device)
	if err != nil {
		if errors.Is(err, hue.ErrLinkButtonNotPressed) {
			return fmt.Errorf("%w: press the button on the bridge and retry", err)
		}
		return err
	}

	fmt.Printf("username: %s\n", user.Username)
	fmt.Printf("store it with: huelight setup -bridge %s -username %s\n", *bridge, user.Username)
	return nil
}

func runLights(ctx context.Context, lightService *lights.LightService, store *config.Store) error {
	cfg, err := loadConfig(store)
	if err != nil {
		return err
	}

	ids, all, err := lightService.List(ctx, cfg)
	if err != nil {
		return err
	}

	for _, id := range ids {
		light := all[id]
		fmt.Printf("%3d  %-25s %-22s %s\n", id, light.Name, light.Type, light.State)
	}
	return nil
}

func runSet(ctx context.Context, lightService *lights.LightService, store *config.Store, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	id := fs.Uint("id", 0, "ID of the light to control")
	on := fs.Bool("on", false, "turn the light on (true) or off (false)")
	bri := fs.Uint("bri", 0, "brightness, 0-255")
	hueVal := fs.Uint("hue", 0, "hue, 0-65535")
	sat := fs.Uint("sat", 0, "saturation, 0-255")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := stateFromFlags(fs, *on, *bri, *hueVal, *sat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(store)
	if err != nil {
		return err
	}

	entries, err := lightService.Set(ctx, cfg, models.LightID(*id), state)
	if err != nil {
		return err
	}

	printEntries(entries)
	return nil
}

func runToggle(ctx context.Context, lightService *lights.LightService, store *config.Store, args []string) error {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	id := fs.Uint("id", 0, "ID of the light to toggle")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(store)
	if err != nil {
		return err
	}

	entries, err := lightService.Toggle(ctx, cfg, models.LightID(*id))
	if err != nil {
		return err
	}

	printEntries(entries)
	return nil
}

// stateFromFlags builds the patch from only the flags that were actually
// passed, so untouched attributes are never sent to the bridge.
func stateFromFlags(fs *flag.FlagSet, on bool, bri uint, hueVal uint, sat uint) (models.LightState, error) {
	state := models.LightState{}
	var err error

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "on":
			state = state.WithOn(on)
		case "bri":
			if bri > 255 {
				err = fmt.Errorf("brightness %d out of range 0-255", bri)
				return
			}
			state = state.WithBrightness(uint8(bri))
		case "hue":
			if hueVal > 65535 {
				err = fmt.Errorf("hue %d out of range 0-65535", hueVal)
				return
			}
			state = state.WithHue(uint16(hueVal))
		case "sat":
			if sat > 255 {
				err = fmt.Errorf("saturation %d out of range 0-255", sat)
				return
			}
			state = state.WithSaturation(uint8(sat))
		}
	})
	if err != nil {
		return models.LightState{}, err
	}

	if state.Empty() {
		return models.LightState{}, errors.New("set requires at least one of -on, -bri, -hue, -sat")
	}
	return state, nil
}

// printEntries reports the per-field outcome of a state change. Mixed
// success/error entries are normal, the bridge judges each field on its own.
func printEntries(entries []hue.ResponseEntry) {
	for _, entry := range entries {
		switch {
		case entry.Success != nil:
			for path, value := range entry.Success {
				fmt.Printf("ok    %s = %v\n", path, value)
			}
		case entry.Error != nil:
			fmt.Printf("error %s: %s\n", entry.Error.Address, entry.Error.Description)
		}
	}
}
