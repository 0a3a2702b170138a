// Package placeholders draws offline stand-ins for the desert tileset and
// the character spritesheet.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// Tileset layout, matching the remote desert tileset.
const (
	TileSize       = 32
	TilesetColumns = 8
	TilesetRows    = 6
	Margin         = 1
	Spacing        = 1

	FloorIndex = 29
	WallIndex  = 46
)

// Character frame size.
const (
	FrameWidth  = 32
	FrameHeight = 48
	FrameCount  = 4
)

// File names written by GenerateAndSave.
const (
	TilesetFile     = "tmw_desert_spacing.png"
	SpritesheetFile = "dude.png"
)

// ColorPalette defines colors for the desert theme
var ColorPalette = struct {
	Sand      color.RGBA
	SandDark  color.RGBA
	Rock      color.RGBA
	RockDark  color.RGBA
	Cactus    color.RGBA
	Water     color.RGBA
	Skin      color.RGBA
	Shirt     color.RGBA
	Trousers  color.RGBA
	Separator color.RGBA
}{
	Sand:      color.RGBA{222, 190, 120, 255},
	SandDark:  color.RGBA{196, 160, 92, 255},
	Rock:      color.RGBA{150, 105, 60, 255},
	RockDark:  color.RGBA{105, 70, 40, 255},
	Cactus:    color.RGBA{70, 140, 60, 255},
	Water:     color.RGBA{60, 120, 200, 255},
	Skin:      color.RGBA{240, 200, 160, 255},
	Shirt:     color.RGBA{70, 90, 200, 255},
	Trousers:  color.RGBA{60, 50, 40, 255},
	Separator: color.RGBA{0, 0, 0, 255},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(baseColor)

	switch pattern {
	case "dunes":
		// Shallow ripples every 8 rows
		for y := 4; y < TileSize; y += 8 {
			for x := 0; x < TileSize; x++ {
				if (x/4)%2 == 0 {
					img.Set(x, y, patternColor)
				} else {
					img.Set(x, y+1, patternColor)
				}
			}
		}
	case "bricks":
		// Outline plus staggered mortar lines
		for i := 0; i < TileSize; i++ {
			img.Set(i, 0, patternColor)
			img.Set(i, TileSize-1, patternColor)
			img.Set(0, i, patternColor)
			img.Set(TileSize-1, i, patternColor)
		}
		for y := 8; y < TileSize; y += 8 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, y, patternColor)
			}
			offset := 0
			if (y/8)%2 == 1 {
				offset = TileSize / 4
			}
			for x := offset; x < TileSize; x += TileSize / 2 {
				for dy := y - 8; dy < y; dy++ {
					img.Set(x, dy, patternColor)
				}
			}
		}
	case "cactus":
		mid := TileSize / 2
		for y := 6; y < TileSize-4; y++ {
			img.Set(mid, y, patternColor)
			img.Set(mid+1, y, patternColor)
		}
		for x := mid - 6; x <= mid+7; x++ {
			img.Set(x, 14, patternColor)
		}
	case "pool":
		for y := 8; y < TileSize-8; y++ {
			for x := 6; x < TileSize-6; x++ {
				img.Set(x, y, patternColor)
			}
		}
	}

	return img
}

// TileFor returns the placeholder tile for a tileset index. Floor and wall
// indices get their own look, the rest vary the sand shade so that any
// index is recognizable.
func TileFor(index int) *image.RGBA {
	p := ColorPalette
	switch {
	case index == FloorIndex:
		return CreatePatternedTile(p.Sand, p.SandDark, "dunes")
	case index == WallIndex:
		return CreatePatternedTile(p.Rock, p.RockDark, "bricks")
	case index%7 == 3:
		return CreatePatternedTile(p.Sand, p.Cactus, "cactus")
	case index%11 == 5:
		return CreatePatternedTile(p.Sand, p.Water, "pool")
	default:
		return CreateSolidTile(Darken(p.Sand, 0.7+0.3*float64(index%5)/4))
	}
}

// TileOrigin returns the top-left pixel of a tile inside the tileset.
func TileOrigin(index int) image.Point {
	col := index % TilesetColumns
	row := index / TilesetColumns
	return image.Pt(Margin+col*(TileSize+Spacing), Margin+row*(TileSize+Spacing))
}

// CreateTileset lays out every tile with the margin and spacing of the
// remote tileset.
func CreateTileset() *image.RGBA {
	width := 2*Margin + TilesetColumns*TileSize + (TilesetColumns-1)*Spacing
	height := 2*Margin + TilesetRows*TileSize + (TilesetRows-1)*Spacing

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{ColorPalette.Separator}, image.Point{}, draw.Src)

	for i := 0; i < TilesetColumns*TilesetRows; i++ {
		o := TileOrigin(i)
		draw.Draw(img, image.Rect(o.X, o.Y, o.X+TileSize, o.Y+TileSize), TileFor(i), image.Point{}, draw.Src)
	}
	return img
}

// CreateCharacterFrame draws one walking frame of the character.
func CreateCharacterFrame(frame int) *image.RGBA {
	p := ColorPalette
	img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))

	fill := func(r image.Rectangle, c color.RGBA) {
		draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
	}

	// Head
	center := image.Pt(FrameWidth/2, 10)
	for y := 2; y < 18; y++ {
		for x := 8; x < 24; x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy <= 49 {
				img.Set(x, y, p.Skin)
			}
		}
	}
	// Body and arms
	fill(image.Rect(9, 18, 23, 34), p.Shirt)
	fill(image.Rect(5, 19, 9, 30), p.Skin)
	fill(image.Rect(23, 19, 27, 30), p.Skin)

	// Legs swing with the frame
	stride := []int{0, 2, 0, -2}[frame%4]
	fill(image.Rect(10+stride, 34, 15+stride, 47), p.Trousers)
	fill(image.Rect(17-stride, 34, 22-stride, 47), p.Trousers)
	return img
}

// CreateSpritesheet places frames side by side without margins.
func CreateSpritesheet(frames int) *image.RGBA {
	sheet := image.NewRGBA(image.Rect(0, 0, frames*FrameWidth, FrameHeight))
	for i := 0; i < frames; i++ {
		r := image.Rect(i*FrameWidth, 0, (i+1)*FrameWidth, FrameHeight)
		draw.Draw(sheet, r, CreateCharacterFrame(i), image.Point{}, draw.Src)
	}
	return sheet
}

// GenerateAndSave writes the tileset and spritesheet into outDir and
// returns their paths.
func GenerateAndSave(outDir string) (tilesetPath, spritesheetPath string, err error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	tilesetPath = filepath.Join(outDir, TilesetFile)
	if err := SavePNG(CreateTileset(), tilesetPath); err != nil {
		return "", "", fmt.Errorf("failed to save tileset: %w", err)
	}
	spritesheetPath = filepath.Join(outDir, SpritesheetFile)
	if err := SavePNG(CreateSpritesheet(FrameCount), spritesheetPath); err != nil {
		return "", "", fmt.Errorf("failed to save spritesheet: %w", err)
	}
	return tilesetPath, spritesheetPath, nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
