package main

import (
	"fmt"
	"os"

	"sparrow-repack/internal/repack"
	"sparrow-repack/internal/sparrow"
	"sparrow-repack/internal/sprite"
)

// inspect prints what repack would do for a sheet prefix without writing
// any output: raw vs normalized geometry per SubTexture, the uniform cell
// size, and the computed atlas side.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <sheet-prefix>\n", os.Args[0])
		os.Exit(1)
	}
	prefix := os.Args[1]

	atlas, err := sparrow.ParseFile(prefix + ".xml")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	records, err := atlas.Records()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("SubTextures: %d\n", len(records))
	for i := range atlas.SubTextures {
		st := &atlas.SubTextures[i]
		r := records[i]
		rot := ""
		if r.Rotated {
			rot = " rotated"
		}
		fmt.Printf("  [%3d] %-40s raw=(%s,%s %sx%s frame=%s,%s)%s\n",
			i, st.Name, st.X, st.Y, st.Width, st.Height, orZero(st.FrameX), orZero(st.FrameY), rot)
		fmt.Printf("        normalized=(%d,%d %dx%d pos=%d,%d) trimmed=%dx%d\n",
			r.X, r.Y, r.W, r.H, r.PosX, r.PosY, r.TrimW(), r.TrimH())
	}

	cat := sprite.BuildCatalog(records, sprite.SizeMultiple)
	side := repack.AtlasSide(len(cat.Records), cat.CellW, cat.CellH)

	fmt.Printf("Unique sprites: %d (%d duplicates dropped)\n", len(cat.Records), len(records)-len(cat.Records))
	fmt.Printf("Cell: %dx%d\n", cat.CellW, cat.CellH)
	fmt.Printf("Atlas: %dx%d\n", side, side)
}

func orZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}
