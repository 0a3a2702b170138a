package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/desertwalk/internal/camera"
	"chosenoffset.com/desertwalk/internal/config"
	"chosenoffset.com/desertwalk/internal/hud"
	"chosenoffset.com/desertwalk/internal/movement"
	"chosenoffset.com/desertwalk/internal/physics"
	"chosenoffset.com/desertwalk/internal/render"
	"chosenoffset.com/desertwalk/internal/telemetry"
	"chosenoffset.com/desertwalk/internal/world/atlas"
	"chosenoffset.com/desertwalk/internal/world/tilemap"
)

// Game holds all scene state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       *config.Config
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Loader       render.ResourceLoader
	Assets       ImageSource

	GameMap     *tilemap.Map
	Tileset     *atlas.Tileset
	PlayerSheet *atlas.Spritesheet
	Player      *Player
	Physics     *physics.World
	Camera      *camera.Camera
	Controller  *movement.Controller
	HUD         *hud.HUD

	// Decoded by Load, uploaded by Init
	spritesheetSrc image.Image
	tilesetSrc     image.Image

	// Debug
	FrameCount int
}

// New creates an unloaded scene.
func New(cfg *config.Config, r render.Renderer, input render.InputManager, loader render.ResourceLoader, assets ImageSource) *Game {
	return &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Config:       cfg,
		Renderer:     r,
		InputMgr:     input,
		Loader:       loader,
		Assets:       assets,
	}
}

// Load fetches and decodes the spritesheet and tileset. It may block on
// the network and returns early when ctx is cancelled.
func (g *Game) Load(ctx context.Context) error {
	ctx, span := telemetry.Tracer("scene").Start(ctx, "scene.load")
	defer span.End()

	if g.Assets == nil {
		return errors.New("no asset source configured")
	}

	a := g.Config.Assets
	log.Printf("Loading spritesheet: %s", a.SpritesheetURL)
	log.Printf("Loading tileset: %s", a.TilesetURL)

	var sheet, tiles image.Image
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		img, err := g.Assets.FetchImage(ctx, a.SpritesheetURL)
		if err != nil {
			return fmt.Errorf("failed to load spritesheet: %w", err)
		}
		sheet = img
		return nil
	})
	eg.Go(func() error {
		img, err := g.Assets.FetchImage(ctx, a.TilesetURL)
		if err != nil {
			return fmt.Errorf("failed to load tileset: %w", err)
		}
		tiles = img
		return nil
	})
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		return err
	}

	g.spritesheetSrc = sheet
	g.tilesetSrc = tiles
	return nil
}

// Init builds the tilemap, player, physics and camera. It must run on the
// frame loop after Load succeeded.
func (g *Game) Init() error {
	_, span := telemetry.Tracer("scene").Start(context.Background(), "scene.init")
	defer span.End()

	if g.spritesheetSrc == nil || g.tilesetSrc == nil {
		return errors.New("scene initialized before assets were loaded")
	}
	cfg := g.Config

	tileset, err := atlas.NewTileset("desert", g.Loader.NewImageFromImage(g.tilesetSrc),
		cfg.Map.TileSize, cfg.Map.TileSize, cfg.Assets.TileMargin, cfg.Assets.TileSpacing)
	if err != nil {
		return fmt.Errorf("failed to slice tileset: %w", err)
	}
	for _, idx := range []int{cfg.Map.WallIndex, cfg.Map.FloorIndex} {
		if _, err := tileset.TileRect(idx); err != nil {
			return fmt.Errorf("map tile not in tileset: %w", err)
		}
	}
	sheet, err := atlas.NewSpritesheet(g.Loader.NewImageFromImage(g.spritesheetSrc),
		cfg.Assets.FrameWidth, cfg.Assets.FrameHeight)
	if err != nil {
		return fmt.Errorf("failed to slice spritesheet: %w", err)
	}
	g.Tileset = tileset
	g.PlayerSheet = sheet
	g.spritesheetSrc, g.tilesetSrc = nil, nil

	if err := g.buildWorld(); err != nil {
		return err
	}

	span.SetAttributes(
		attribute.Int("map.width_px", g.GameMap.WidthInPixels()),
		attribute.Int("map.height_px", g.GameMap.HeightInPixels()),
		attribute.Float64("player.spawn_x", g.Player.Body.X),
		attribute.Float64("player.spawn_y", g.Player.Body.Y),
	)
	log.Printf("Scene ready: map %dx%d px, player at (%.0f, %.0f)",
		g.GameMap.WidthInPixels(), g.GameMap.HeightInPixels(), g.Player.Body.X, g.Player.Body.Y)
	return nil
}

// buildWorld creates everything that does not depend on images.
func (g *Game) buildWorld() error {
	cfg := g.Config

	gameMap, err := tilemap.Generate(tilemap.Config{
		Width:      cfg.Map.Width,
		Height:     cfg.Map.Height,
		TileSize:   cfg.Map.TileSize,
		WallIndex:  cfg.Map.WallIndex,
		FloorIndex: cfg.Map.FloorIndex,
	})
	if err != nil {
		return fmt.Errorf("failed to generate map: %w", err)
	}
	g.GameMap = gameMap

	widthPx := float64(gameMap.WidthInPixels())
	heightPx := float64(gameMap.HeightInPixels())

	g.Physics = physics.NewWorld(physics.Rect{W: widthPx, H: heightPx})

	spawnX, spawnY := gameMap.Center()
	body := physics.NewBody(spawnX, spawnY, float64(cfg.Assets.FrameWidth), float64(cfg.Assets.FrameHeight))
	body.CollideWorldBounds = true
	g.Player = &Player{Body: body}
	g.Physics.AddBody(body)
	g.Physics.AddCollider(body, gameMap, gameMap.TileSize)

	g.Camera = camera.New(g.ScreenWidth, g.ScreenHeight)
	g.Camera.SetBounds(widthPx, heightPx)
	g.Camera.SetZoom(cfg.Camera.Zoom)
	g.Camera.StartFollow(g.Player, true)

	g.Controller = movement.NewController(cfg.Player.Speed)

	g.HUD = hud.New(cfg.HUD, g.Renderer, g.ScreenWidth, g.ScreenHeight)
	g.HUD.SetMapSize(gameMap.WidthInPixels(), gameMap.HeightInPixels())
	g.HUD.SetPlayer(g.Player)
	return nil
}

// Step samples input, sets the player velocity and advances physics and
// camera by dt seconds. It does nothing until the player and input exist.
func (g *Game) Step(dt float64) {
	if g.Player == nil || g.InputMgr == nil {
		return
	}

	vx, vy := g.Controller.Velocity(movement.ReadInput(g.InputMgr))
	g.Player.Body.SetVelocity(vx, vy)

	g.Physics.Step(dt)
	g.Camera.Update()
	g.FrameCount++
}

// Resize changes the render surface size and the camera view.
func (g *Game) Resize(width, height int) {
	if width == g.ScreenWidth && height == g.ScreenHeight {
		return
	}
	g.ScreenWidth = width
	g.ScreenHeight = height
	if g.Camera != nil {
		g.Camera.Resize(width, height)
	}
	if g.HUD != nil {
		g.HUD.SetScreenSize(width, height)
	}
}
