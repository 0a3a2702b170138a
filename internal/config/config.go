// Package config holds the demo's settings: window, map, player, camera and
// asset locations. Values start from DefaultConfig, are overlaid by an
// optional JSON file and then by DESERTWALK_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Backend names
const (
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DESERTWALK_"

// Config holds all settings for a run
type Config struct {
	Backend string       `json:"backend"` // "ebiten" or "terminal"
	Debug   bool         `json:"debug"`   // Draw physics bodies
	Window  WindowConfig `json:"window"`
	Map     MapConfig    `json:"map"`
	Player  PlayerConfig `json:"player"`
	Camera  CameraConfig `json:"camera"`
	Assets  AssetsConfig `json:"assets"`
	HUD     HUDConfig    `json:"hud"`
}

// WindowConfig defines the initial render surface
type WindowConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	Resizable bool   `json:"resizable"`
}

// MapConfig defines the generated tile grid
type MapConfig struct {
	Width      int `json:"width"`       // Tiles across
	Height     int `json:"height"`      // Tiles down
	TileSize   int `json:"tile_size"`   // Cell size in pixels
	WallIndex  int `json:"wall_index"`  // Tileset index for the border
	FloorIndex int `json:"floor_index"` // Tileset index for the interior
}

// PlayerConfig defines the player body and speed
type PlayerConfig struct {
	Speed float64 `json:"speed"` // Units per second
}

// CameraConfig defines the view
type CameraConfig struct {
	Zoom float64 `json:"zoom"`
}

// HUDConfig defines the overlay
type HUDConfig struct {
	Position     string  `json:"position"`      // "top-left", "top-right", "bottom-left", "bottom-right"
	ShowPosition bool    `json:"show_position"` // Add a player position line
	Opacity      float64 `json:"opacity"`       // Panel background opacity (0-1)
}

// AssetsConfig defines where the two images come from
type AssetsConfig struct {
	SpritesheetURL string `json:"spritesheet_url"`
	FrameWidth     int    `json:"frame_width"`
	FrameHeight    int    `json:"frame_height"`
	TilesetURL     string `json:"tileset_url"`
	TileMargin     int    `json:"tile_margin"`
	TileSpacing    int    `json:"tile_spacing"`
	Retries        int    `json:"retries"` // Fetch attempts per asset
}

// DefaultConfig returns the settings of the desert demo
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendEbiten,
		Debug:   false,
		Window: WindowConfig{
			Width:     1280,
			Height:    800,
			Title:     "Desert Walk - arrow keys to move",
			Resizable: true,
		},
		Map: MapConfig{
			Width:      50,
			Height:     50,
			TileSize:   32,
			WallIndex:  46,
			FloorIndex: 29,
		},
		Player: PlayerConfig{
			Speed: 300,
		},
		Camera: CameraConfig{
			Zoom: 1,
		},
		Assets: AssetsConfig{
			SpritesheetURL: "https://labs.phaser.io/assets/sprites/character.png",
			FrameWidth:     32,
			FrameHeight:    48,
			TilesetURL:     "https://labs.phaser.io/assets/tilemaps/tiles/tmw_desert_spacing.png",
			TileMargin:     1,
			TileSpacing:    1,
			Retries:        3,
		},
		HUD: HUDConfig{
			Position: "top-left",
			Opacity:  1,
		},
	}
}

// LoadConfig loads config from a JSON file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overlays DESERTWALK_* variables read through lookup
// (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	flt := func(key string, dst *float64) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}

	str("BACKEND", &c.Backend)
	if v, ok := lookup(EnvPrefix + "DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sDEBUG: %w", EnvPrefix, err))
		} else {
			c.Debug = b
		}
	}
	num("WINDOW_WIDTH", &c.Window.Width)
	num("WINDOW_HEIGHT", &c.Window.Height)
	num("MAP_WIDTH", &c.Map.Width)
	num("MAP_HEIGHT", &c.Map.Height)
	flt("PLAYER_SPEED", &c.Player.Speed)
	flt("CAMERA_ZOOM", &c.Camera.Zoom)
	str("SPRITESHEET_URL", &c.Assets.SpritesheetURL)
	str("TILESET_URL", &c.Assets.TilesetURL)

	return errors.Join(errs...)
}

// Validate reports settings the demo cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendEbiten, BackendTerminal:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height))
	}
	// The border takes one tile on each side
	if c.Map.Width < 3 || c.Map.Height < 3 {
		errs = append(errs, fmt.Errorf("invalid map dimensions: %dx%d, need at least 3x3", c.Map.Width, c.Map.Height))
	}
	if c.Map.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid tile size: %d", c.Map.TileSize))
	}
	if c.Map.Width >= 3 && c.Map.Height >= 3 && c.Map.TileSize > 0 {
		innerW := (c.Map.Width - 2) * c.Map.TileSize
		innerH := (c.Map.Height - 2) * c.Map.TileSize
		if innerW < c.Assets.FrameWidth || innerH < c.Assets.FrameHeight {
			errs = append(errs, fmt.Errorf("map interior %dx%d px is smaller than the %dx%d player frame",
				innerW, innerH, c.Assets.FrameWidth, c.Assets.FrameHeight))
		}
	}
	if c.Map.WallIndex < 0 || c.Map.FloorIndex < 0 {
		errs = append(errs, fmt.Errorf("negative tile index: wall %d, floor %d", c.Map.WallIndex, c.Map.FloorIndex))
	}
	if c.Map.WallIndex == c.Map.FloorIndex {
		errs = append(errs, fmt.Errorf("wall and floor share tile index %d", c.Map.WallIndex))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("invalid player speed: %v", c.Player.Speed))
	}
	if c.Camera.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("invalid camera zoom: %v", c.Camera.Zoom))
	}
	if c.Assets.SpritesheetURL == "" || c.Assets.TilesetURL == "" {
		errs = append(errs, errors.New("both asset URLs are required"))
	}
	if c.Assets.FrameWidth <= 0 || c.Assets.FrameHeight <= 0 {
		errs = append(errs, fmt.Errorf("invalid frame size: %dx%d", c.Assets.FrameWidth, c.Assets.FrameHeight))
	}
	switch c.HUD.Position {
	case "top-left", "top-right", "bottom-left", "bottom-right":
	default:
		errs = append(errs, fmt.Errorf("unknown HUD position %q", c.HUD.Position))
	}
	if c.HUD.Opacity < 0 || c.HUD.Opacity > 1 {
		errs = append(errs, fmt.Errorf("invalid HUD opacity: %v", c.HUD.Opacity))
	}

	return errors.Join(errs...)
}
