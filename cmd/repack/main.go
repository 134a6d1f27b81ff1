package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"sparrow-repack/internal/batch"
	"sparrow-repack/internal/sprite"
)

func main() {
	// CLI flags
	outDir := flag.String("out", "", "Output directory (default: <sheet dir>/exported)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	webp := flag.Bool("webp", false, "Also write a lossless WebP copy of each atlas")
	previewSize := flag.Int("preview", 0, "Write an N-px preview thumbnail per atlas")
	multiple := flag.Int("multiple", sprite.SizeMultiple, "Round cell sizes up to this multiple")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <sheet-prefix> [<sheet-prefix>...]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Each prefix names a sheet image plus XML index without extension,")
		fmt.Fprintln(os.Stderr, "e.g. 'assets/BOYFRIEND' for assets/BOYFRIEND.png + assets/BOYFRIEND.xml.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	prefixes := flag.Args()
	if len(prefixes) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *multiple <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -multiple must be positive")
		os.Exit(1)
	}

	cfg := batch.Config{
		OutDir:      *outDir,
		Multiple:    *multiple,
		WebP:        *webp,
		PreviewSize: *previewSize,
		Workers:     *workers,
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Workers > len(prefixes) {
		cfg.Workers = len(prefixes)
	}

	fmt.Printf("Sparrow sprite-sheet cell normalizer\n")
	fmt.Printf("Sheets: %d, Workers: %d\n", len(prefixes), cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(cfg, prefixes)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %s: %d sprites → %dx%d atlas\n", r.Prefix, r.Sprites, r.Side, r.Side)
		} else {
			failed++
		}
	}
	fmt.Printf("Normalized: %d/%d\n", success, len(prefixes))

	// With a shared output directory, drop a manifest of what landed there.
	if *outDir != "" && success > 0 {
		manifestPath := filepath.Join(*outDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, r := range results {
			if !r.Success {
				fmt.Printf("  %s: %s\n", r.Prefix, r.Error)
			}
		}
		os.Exit(1)
	}
}
