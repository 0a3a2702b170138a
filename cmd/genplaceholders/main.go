package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/desertwalk/internal/placeholders"
)

func main() {
	outDir := flag.String("out", "assets", "directory to write the placeholder images to")
	flag.Parse()

	fmt.Println("Desert Walk Placeholder Graphics Generator")
	fmt.Println("==========================================")
	fmt.Println()

	tileset, sheet, err := placeholders.GenerateAndSave(*outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tileset:     %s\n", tileset)
	fmt.Printf("Spritesheet: %s\n", sheet)
	fmt.Println()
	fmt.Println("Done! Run the demo offline with:")
	fmt.Printf("  DESERTWALK_TILESET_URL=%s DESERTWALK_SPRITESHEET_URL=%s desertwalk\n", tileset, sheet)
}
