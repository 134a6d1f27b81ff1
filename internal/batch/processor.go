package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sparrow-repack/internal/export"
	"sparrow-repack/internal/preview"
	"sparrow-repack/internal/repack"
	"sparrow-repack/internal/sparrow"
	"sparrow-repack/internal/sprite"
	"sparrow-repack/internal/texture"
)

// Config holds shared settings for a batch run.
type Config struct {
	OutDir      string // empty: <sheet dir>/exported
	Multiple    int    // cell size rounding multiple
	WebP        bool   // also write a lossless WebP copy of each atlas
	PreviewSize int    // when > 0, write an n-px thumbnail per atlas
	Workers     int
}

// Result holds the outcome of normalizing one sheet.
type Result struct {
	Prefix  string
	Sprites int // unique sprites packed
	Side    int // output atlas side
	Success bool
	Error   string
}

// Run normalizes all sheet prefixes using a worker pool.
func Run(cfg Config, prefixes []string) []Result {
	total := len(prefixes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f sheets/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	prefixChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range prefixChan {
				results[idx] = processSheet(cfg, prefixes[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range prefixes {
		prefixChan <- i
	}
	close(prefixChan)

	wg.Wait()
	close(done)

	return results
}

// processSheet runs the full pipeline for one sheet: load, catalog, repack,
// rewrite, export. Nothing is written until every processing step has
// succeeded.
func processSheet(cfg Config, prefix string) Result {
	fail := func(err error) Result {
		return Result{Prefix: prefix, Error: err.Error()}
	}

	sheetPath, err := texture.FindSheet(prefix)
	if err != nil {
		return fail(err)
	}
	sheet, err := texture.LoadSheet(sheetPath)
	if err != nil {
		return fail(err)
	}

	atlas, err := sparrow.ParseFile(prefix + ".xml")
	if err != nil {
		return fail(err)
	}
	records, err := atlas.Records()
	if err != nil {
		return fail(err)
	}

	cat := sprite.BuildCatalog(records, cfg.Multiple)
	packed, err := repack.Pack(cat, sheet)
	if err != nil {
		return fail(err)
	}
	if err := atlas.Rewrite(cat, packed.Records); err != nil {
		return fail(err)
	}

	dir, err := export.Dir(prefix, cfg.OutDir)
	if err != nil {
		return fail(err)
	}
	base := filepath.Base(prefix)
	if err := export.WritePNG(filepath.Join(dir, base+".png"), packed.Image); err != nil {
		return fail(err)
	}
	if err := atlas.WriteFile(filepath.Join(dir, base+".xml")); err != nil {
		return fail(err)
	}
	if cfg.WebP {
		if err := export.WriteWebP(filepath.Join(dir, base+".webp"), packed.Image); err != nil {
			return fail(err)
		}
	}
	if cfg.PreviewSize > 0 {
		thumb := preview.Thumbnail(packed.Image, cfg.PreviewSize)
		if err := export.WritePNG(filepath.Join(dir, base+"_preview.png"), thumb); err != nil {
			return fail(err)
		}
	}

	return Result{
		Prefix:  prefix,
		Sprites: len(cat.Records),
		Side:    packed.Side,
		Success: true,
	}
}
