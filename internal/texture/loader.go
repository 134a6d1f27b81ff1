package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
)

// sheetExts are the image extensions tried, in order, when resolving a
// sheet path prefix.
var sheetExts = []string{".png", ".jpg", ".jpeg", ".tga"}

// FindSheet returns the path of the first existing sheet image for the
// given path prefix.
func FindSheet(prefix string) (string, error) {
	for _, ext := range sheetExts {
		p := prefix + ext
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("texture: no sheet image for %s (tried %s)", prefix, sheetExts)
}

// LoadSheet decodes the sprite sheet at path into an NRGBA image.
func LoadSheet(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with bounds anchored at the origin.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == image.Pt(0, 0) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
