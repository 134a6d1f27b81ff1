package sparrow

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"sparrow-repack/internal/sprite"
)

// Rewrite points every SubTexture at its uniform cell in the repacked
// atlas. Each element's record is re-derived, matched against the catalog
// by geometry (first match wins), and overwritten with the repacked record
// at the same index. The frame offset and rotation attributes are dropped:
// the cell size itself now serves as the display offset and the rotation
// is baked into the pixel data.
func (a *Atlas) Rewrite(cat sprite.Catalog, packed []sprite.Record) error {
	for i := range a.SubTextures {
		st := &a.SubTextures[i]
		rec, err := st.Record()
		if err != nil {
			return err
		}
		idx := cat.Index(rec)
		if idx < 0 {
			return fmt.Errorf("sparrow: SubTexture %q: no catalog entry for its geometry", st.Name)
		}
		n := packed[idx]
		st.X = strconv.Itoa(n.X)
		st.Y = strconv.Itoa(n.Y)
		st.Width = strconv.Itoa(n.W)
		st.Height = strconv.Itoa(n.H)
		st.FrameX = ""
		st.FrameY = ""
		st.FrameWidth = ""
		st.FrameHeight = ""
		st.Rotated = ""
	}
	return nil
}

// Encode writes the document to w with an XML declaration.
func (a *Atlas) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(a); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile serializes the atlas to path, UTF-8 with an XML declaration.
func (a *Atlas) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sparrow: create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := a.Encode(bw); err != nil {
		return fmt.Errorf("sparrow: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sparrow: write %s: %w", path, err)
	}
	return nil
}
