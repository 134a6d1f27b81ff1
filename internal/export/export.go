package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// Dir returns the output directory for the given input path prefix,
// creating it if absent. An empty override means dirname(prefix)/exported.
func Dir(prefix, override string) (string, error) {
	dir := override
	if dir == "" {
		dir = filepath.Join(filepath.Dir(prefix), "exported")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("export: create %s: %w", dir, err)
	}
	return dir, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export: PNG encode %s: %w", path, err)
	}
	return nil
}

// WriteWebP encodes img to path as lossless WebP.
func WriteWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("export: WebP encode %s: %w", path, err)
	}
	return nil
}
