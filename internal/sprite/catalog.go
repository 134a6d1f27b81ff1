package sprite

// SizeMultiple is the default rounding multiple for cell sizes. PSXFunkin
// Characters Maker scales sprites by 0.25, so positions and sizes that are
// multiples of 4 survive that scale without landing between pixels.
const SizeMultiple = 4

// Catalog is the de-duplicated, ordered sprite list plus the uniform cell
// size every sprite will occupy after repacking.
type Catalog struct {
	Records []Record
	CellW   int
	CellH   int
}

// BuildCatalog collects records in first-seen order, dropping later records
// with equal geometry. The cell size is the maximum trimmed width/height
// over ALL input records, duplicates included, rounded up to the given
// multiple. The containment scan is O(n²); catalogs are tens to low
// hundreds of sprites.
func BuildCatalog(records []Record, multiple int) Catalog {
	var c Catalog
	maxW, maxH := 0, 0
	for _, r := range records {
		if r.TrimW() > maxW {
			maxW = r.TrimW()
		}
		if r.TrimH() > maxH {
			maxH = r.TrimH()
		}
		if c.Index(r) < 0 {
			c.Records = append(c.Records, r)
		}
	}
	c.CellW = NextMultiple(maxW, multiple)
	c.CellH = NextMultiple(maxH, multiple)
	return c
}

// Index returns the position of the first record with equal geometry,
// or -1 if none matches.
func (c Catalog) Index(r Record) int {
	for i, e := range c.Records {
		if e.Eq(r) {
			return i
		}
	}
	return -1
}
