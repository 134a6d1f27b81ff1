package repack

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"sparrow-repack/internal/sprite"
)

// Result is the repacked atlas plus one record per catalog entry, in
// catalog order. Every record is (cellX, cellY, cellW, cellH) with a zero
// trim offset and no rotation.
type Result struct {
	Image   *image.NRGBA
	Records []sprite.Record
	Side    int
}

// Pack places every catalog sprite into a row-major grid of uniform
// CellW×CellH cells inside a square power-of-two atlas. The trimmed
// content is pasted shifted backward by its own trim offset, so the cell
// origin plus the cell size reproduce the sprite's original anchor without
// any frame offset metadata.
func Pack(cat sprite.Catalog, sheet *image.NRGBA) (*Result, error) {
	side := AtlasSide(len(cat.Records), cat.CellW, cat.CellH)
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	out := make([]sprite.Record, 0, len(cat.Records))

	curX, curY := 0, 0
	for _, rec := range cat.Records {
		if curX+cat.CellW > side {
			curX = 0
			curY += cat.CellH
		}

		cell := crop(sheet, rec)
		at := image.Pt(curX-rec.PosX, curY-rec.PosY)
		paste := image.Rectangle{Min: at, Max: at.Add(cell.Bounds().Size())}
		// The area-based side is not proven to fit the quantized grid.
		// Cells on the last row may reach past the bottom edge, which is
		// harmless while the clipped region holds no pixels; discarding
		// visible pixels is a hard failure.
		vis := paste.Intersect(dst.Bounds())
		if vis != paste && !transparentOutside(cell, vis.Sub(at)) {
			return nil, fmt.Errorf("repack: content for %q at %v overflows %dx%d atlas", rec.Name, paste, side, side)
		}
		draw.Draw(dst, vis, cell, vis.Min.Sub(at), draw.Src)

		out = append(out, sprite.Record{Name: rec.Name, X: curX, Y: curY, W: cat.CellW, H: cat.CellH})
		curX += cat.CellW
	}

	return &Result{Image: dst, Records: out, Side: side}, nil
}

// AtlasSide returns the square power-of-two side sized by total cell area.
func AtlasSide(n, cellW, cellH int) int {
	area := n * cellW * cellH
	return sprite.NextPowerOfTwo(int(math.Ceil(math.Sqrt(float64(area)))))
}

// crop copies the packed source rectangle for rec out of the sheet,
// rotating the pixels back to display orientation when they are stored
// rotated. The record is already normalized, so for rotated sprites the
// stored rectangle is rec.H wide and rec.W tall.
func crop(sheet *image.NRGBA, rec sprite.Record) *image.NRGBA {
	if !rec.Rotated {
		out := image.NewNRGBA(image.Rect(0, 0, rec.W, rec.H))
		draw.Draw(out, out.Bounds(), sheet, image.Pt(rec.X, rec.Y), draw.Src)
		return out
	}
	stored := image.NewNRGBA(image.Rect(0, 0, rec.H, rec.W))
	draw.Draw(stored, stored.Bounds(), sheet, image.Pt(rec.X, rec.Y), draw.Src)
	return rotateCCW(stored)
}

// transparentOutside reports whether every pixel of img outside keep has
// zero alpha.
func transparentOutside(img *image.NRGBA, keep image.Rectangle) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if image.Pt(x, y).In(keep) {
				continue
			}
			if img.Pix[img.PixOffset(x, y)+3] != 0 {
				return false
			}
		}
	}
	return true
}

// rotateCCW returns src rotated 90 degrees counter-clockwise: the right
// edge of src becomes the top edge of the result.
func rotateCCW(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))
	for dy := 0; dy < w; dy++ {
		for dx := 0; dx < h; dx++ {
			si := src.PixOffset(w-1-dy, dx)
			di := dst.PixOffset(dx, dy)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
