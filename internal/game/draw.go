package game

import (
	"image/color"
	"math"

	"chosenoffset.com/desertwalk/internal/render"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	debugBodyColor  = color.RGBA{255, 0, 255, 255}
	debugVelColor   = color.RGBA{0, 255, 0, 255}

	wallCellColor   = color.RGBA{150, 105, 60, 255}
	floorCellColor  = color.RGBA{220, 190, 120, 255}
	playerCellColor = color.RGBA{255, 255, 255, 255}
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)
	if g.GameMap == nil || g.Camera == nil {
		return
	}

	g.drawTiles(screen)
	g.drawPlayer(screen)
	if g.Config.Debug {
		g.drawDebugBodies(screen)
	}
	g.HUD.Draw(screen)
}

// visibleTiles returns the inclusive tile range inside the camera view.
func (g *Game) visibleTiles() (x0, y0, x1, y1 int) {
	ts := float64(g.GameMap.TileSize)
	viewW, viewH := g.Camera.WorldView()

	x0 = max(0, int(math.Floor(g.Camera.X/ts)))
	y0 = max(0, int(math.Floor(g.Camera.Y/ts)))
	x1 = min(g.GameMap.Width-1, int(math.Ceil((g.Camera.X+viewW)/ts)))
	y1 = min(g.GameMap.Height-1, int(math.Ceil((g.Camera.Y+viewH)/ts)))
	return x0, y0, x1, y1
}

func (g *Game) drawTiles(screen render.Image) {
	if g.Tileset == nil {
		return
	}

	ts := float64(g.GameMap.TileSize)
	zoom := g.Camera.Zoom
	x0, y0, x1, y1 := g.visibleTiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			idx := g.GameMap.Tiles[y][x]
			sx, sy := g.Camera.WorldToScreen(float64(x)*ts, float64(y)*ts)
			// Init rejects map indices outside the tileset
			_ = g.Tileset.DrawTile(screen, idx, sx, sy, zoom)
		}
	}
}

func (g *Game) drawPlayer(screen render.Image) {
	if g.Player == nil || g.PlayerSheet == nil {
		return
	}
	frame, err := g.PlayerSheet.Frame(g.Player.Frame)
	if err != nil {
		return
	}

	fw, fh := float64(g.PlayerSheet.FrameWidth), float64(g.PlayerSheet.FrameHeight)
	sx, sy := g.Camera.WorldToScreen(g.Player.Body.X-fw/2, g.Player.Body.Y-fh/2)

	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Scale(g.Camera.Zoom, g.Camera.Zoom)
	opts.GeoM.Translate(math.Round(sx), math.Round(sy))
	screen.DrawImage(frame, opts)
}

// drawDebugBodies outlines physics bodies and their velocity direction.
func (g *Game) drawDebugBodies(screen render.Image) {
	zoom := g.Camera.Zoom
	for _, b := range g.Physics.Bodies() {
		r := b.Bounds()
		sx, sy := g.Camera.WorldToScreen(r.X, r.Y)
		g.Renderer.StrokeRect(screen, float32(sx), float32(sy), float32(r.W*zoom), float32(r.H*zoom), 1, debugBodyColor)

		cx, cy := g.Camera.WorldToScreen(b.X, b.Y)
		g.Renderer.FillRect(screen, float32(cx+b.VX*zoom/10)-1, float32(cy+b.VY*zoom/10)-1, 3, 3, debugVelColor)
	}
}

// DrawCells renders the camera view onto a character grid, one cell per tile.
func (g *Game) DrawCells(canvas render.CellCanvas) {
	cols, rows := canvas.Size()
	if g.GameMap == nil || g.Camera == nil {
		return
	}

	ts := float64(g.GameMap.TileSize)
	originX := int(math.Floor(g.Camera.X / ts))
	originY := int(math.Floor(g.Camera.Y / ts))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx, err := g.GameMap.GetTileAt(originX+col, originY+row)
			switch {
			case err != nil:
				canvas.SetCell(col, row, ' ', backgroundColor, backgroundColor)
			case g.GameMap.Collides(idx):
				canvas.SetCell(col, row, '#', wallCellColor, backgroundColor)
			default:
				canvas.SetCell(col, row, '.', floorCellColor, backgroundColor)
			}
		}
	}

	if g.Player != nil {
		px, py := g.GameMap.WorldToTile(g.Player.Body.X, g.Player.Body.Y)
		canvas.SetCell(px-originX, py-originY, '@', playerCellColor, backgroundColor)
	}

	g.HUD.DrawCells(canvas)
}
