package batch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sparrow-repack/internal/sprite"
)

const fixtureXML = `<?xml version="1.0" encoding="utf-8"?>
<TextureAtlas imagePath="BOYFRIEND.png">
  <SubTexture name="BF idle dance0000" x="0" y="0" width="10" height="20" frameX="0" frameY="0"/>
  <SubTexture name="BF idle dance0001" x="16" y="0" width="4" height="6" rotated="true"/>
  <SubTexture name="BF HEY!!0000" x="0" y="32" width="14" height="7" frameX="-2" frameY="-1" frameWidth="20" frameHeight="10"/>
</TextureAtlas>`

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	prefix := filepath.Join(dir, "BOYFRIEND")

	sheet := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	fill := func(x, y, w, h int, c color.NRGBA) {
		for yy := y; yy < y+h; yy++ {
			for xx := x; xx < x+w; xx++ {
				sheet.SetNRGBA(xx, yy, c)
			}
		}
	}
	fill(0, 0, 10, 20, color.NRGBA{R: 255, A: 255})
	fill(16, 0, 4, 6, color.NRGBA{G: 255, A: 255}) // stored rotated
	fill(0, 32, 14, 7, color.NRGBA{B: 255, A: 255})

	f, err := os.Create(prefix + ".png")
	if err != nil {
		t.Fatalf("create sheet: %v", err)
	}
	if err := png.Encode(f, sheet); err != nil {
		t.Fatalf("encode sheet: %v", err)
	}
	f.Close()

	if err := os.WriteFile(prefix+".xml", []byte(fixtureXML), 0644); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	return prefix
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	prefix := writeFixture(t, dir)

	cfg := Config{Multiple: sprite.SizeMultiple, Workers: 1, WebP: true, PreviewSize: 16}
	results := Run(cfg, []string{prefix})
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	r := results[0]
	if !r.Success {
		t.Fatalf("run failed: %s", r.Error)
	}
	if r.Sprites != 3 {
		t.Errorf("Sprites = %d, want 3", r.Sprites)
	}
	if r.Side != 32 {
		t.Errorf("Side = %d, want 32", r.Side)
	}

	outDir := filepath.Join(dir, "exported")
	atlas := decodePNG(t, filepath.Join(outDir, "BOYFRIEND.png"))
	if b := atlas.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("output atlas = %dx%d, want 32x32", b.Dx(), b.Dy())
	}

	xmlOut, err := os.ReadFile(filepath.Join(outDir, "BOYFRIEND.xml"))
	if err != nil {
		t.Fatalf("read output xml: %v", err)
	}
	for _, attr := range []string{"frameX", "frameY", "frameWidth", "frameHeight", "rotated"} {
		if bytes.Contains(xmlOut, []byte(attr)) {
			t.Errorf("output xml still contains %s", attr)
		}
	}
	if !strings.HasPrefix(string(xmlOut), "<?xml") {
		t.Error("output xml missing declaration")
	}

	if _, err := os.Stat(filepath.Join(outDir, "BOYFRIEND.webp")); err != nil {
		t.Errorf("webp copy missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "BOYFRIEND_preview.png")); err != nil {
		t.Errorf("preview missing: %v", err)
	}
}

// A second pass over the tool's own output must reproduce it exactly:
// offsets are already zero and sizes already uniform, so cell and atlas
// sizing are stable.
func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	prefix := writeFixture(t, dir)

	cfg := Config{Multiple: sprite.SizeMultiple, Workers: 1}
	if r := Run(cfg, []string{prefix})[0]; !r.Success {
		t.Fatalf("first pass failed: %s", r.Error)
	}

	firstDir := filepath.Join(dir, "exported")
	secondDir := filepath.Join(dir, "second")
	cfg.OutDir = secondDir
	if r := Run(cfg, []string{filepath.Join(firstDir, "BOYFRIEND")})[0]; !r.Success {
		t.Fatalf("second pass failed: %s", r.Error)
	}

	firstXML, err := os.ReadFile(filepath.Join(firstDir, "BOYFRIEND.xml"))
	if err != nil {
		t.Fatal(err)
	}
	secondXML, err := os.ReadFile(filepath.Join(secondDir, "BOYFRIEND.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(firstXML, secondXML) {
		t.Error("second pass changed the XML")
	}

	first := decodePNG(t, filepath.Join(firstDir, "BOYFRIEND.png"))
	second := decodePNG(t, filepath.Join(secondDir, "BOYFRIEND.png"))
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("second pass changed the atlas pixels")
	}
}

func TestRunReportsMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Multiple: sprite.SizeMultiple, Workers: 1}
	r := Run(cfg, []string{filepath.Join(dir, "nope")})[0]
	if r.Success {
		t.Fatal("want failure for missing input")
	}
	if r.Error == "" {
		t.Error("failure carries no message")
	}
	// no partial output
	if _, err := os.Stat(filepath.Join(dir, "exported")); !os.IsNotExist(err) {
		t.Error("output directory created despite failure")
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	results := []Result{
		{Prefix: "assets/BOYFRIEND", Sprites: 3, Side: 32, Success: true},
		{Prefix: "assets/broken", Error: "no sheet image"},
	}
	if err := WriteManifest(path, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"BOYFRIEND.png"`)) {
		t.Error("manifest missing successful sheet")
	}
	if bytes.Contains(data, []byte("broken")) {
		t.Error("manifest lists failed sheet")
	}
}

func decodePNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	n, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		n = image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				n.Set(x, y, img.At(x, y))
			}
		}
	}
	return n
}
