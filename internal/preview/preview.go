package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales the atlas down to size×size with premultiplied-alpha
// CatmullRom filtering. Filtering straight-alpha pixels directly would
// bleed the (black) color of fully transparent texels into sprite edges.
func Thumbnail(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			si := scaled.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float64(scaled.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				out.Pix[di] = clamp8(float64(scaled.Pix[si]) * inv)
				out.Pix[di+1] = clamp8(float64(scaled.Pix[si+1]) * inv)
				out.Pix[di+2] = clamp8(float64(scaled.Pix[si+2]) * inv)
			}
			out.Pix[di+3] = scaled.Pix[si+3]
		}
	}

	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
