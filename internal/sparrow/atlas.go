package sparrow

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"sparrow-repack/internal/sprite"
)

// Atlas holds a Sparrow/Starling texture atlas document. The root element
// name and any root attributes (imagePath and friends) are kept verbatim
// so the rewritten document round-trips.
type Atlas struct {
	XMLName     xml.Name
	Attrs       []xml.Attr   `xml:",any,attr"`
	SubTextures []SubTexture `xml:"SubTexture"`
}

// SubTexture mirrors one <SubTexture> element. Geometry attributes are kept
// as strings so absent optional attributes stay absent on output; Extra
// carries any attributes this tool does not interpret.
type SubTexture struct {
	Name        string     `xml:"name,attr"`
	X           string     `xml:"x,attr"`
	Y           string     `xml:"y,attr"`
	Width       string     `xml:"width,attr"`
	Height      string     `xml:"height,attr"`
	FrameX      string     `xml:"frameX,attr,omitempty"`
	FrameY      string     `xml:"frameY,attr,omitempty"`
	FrameWidth  string     `xml:"frameWidth,attr,omitempty"`
	FrameHeight string     `xml:"frameHeight,attr,omitempty"`
	Rotated     string     `xml:"rotated,attr,omitempty"`
	Extra       []xml.Attr `xml:",any,attr"`
}

// ParseFile reads and decodes the atlas XML at path.
func ParseFile(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sparrow: open %s: %w", path, err)
	}
	defer f.Close()

	a, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("sparrow: parse %s: %w", path, err)
	}
	return a, nil
}

// Parse decodes an atlas document from r.
func Parse(r io.Reader) (*Atlas, error) {
	var a Atlas
	if err := xml.NewDecoder(r).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Record converts the SubTexture to a normalized sprite record, applying
// the rotation fixup at construction.
func (s *SubTexture) Record() (sprite.Record, error) {
	if s.Name == "" {
		return sprite.Record{}, fmt.Errorf("sparrow: SubTexture missing name attribute")
	}
	x, err := requiredInt(s.Name, "x", s.X)
	if err != nil {
		return sprite.Record{}, err
	}
	y, err := requiredInt(s.Name, "y", s.Y)
	if err != nil {
		return sprite.Record{}, err
	}
	w, err := requiredInt(s.Name, "width", s.Width)
	if err != nil {
		return sprite.Record{}, err
	}
	h, err := requiredInt(s.Name, "height", s.Height)
	if err != nil {
		return sprite.Record{}, err
	}
	posX, err := optionalInt(s.Name, "frameX", s.FrameX)
	if err != nil {
		return sprite.Record{}, err
	}
	posY, err := optionalInt(s.Name, "frameY", s.FrameY)
	if err != nil {
		return sprite.Record{}, err
	}
	rotated, err := parseRotated(s.Name, s.Rotated)
	if err != nil {
		return sprite.Record{}, err
	}
	return sprite.NewRecord(s.Name, x, y, w, h, posX, posY, rotated), nil
}

// Records converts every SubTexture in document order, without
// de-duplication.
func (a *Atlas) Records() ([]sprite.Record, error) {
	out := make([]sprite.Record, 0, len(a.SubTextures))
	for i := range a.SubTextures {
		r, err := a.SubTextures[i].Record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func requiredInt(name, attr, v string) (int, error) {
	if v == "" {
		return 0, fmt.Errorf("sparrow: SubTexture %q missing %s attribute", name, attr)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("sparrow: SubTexture %q: bad %s value %q", name, attr, v)
	}
	return n, nil
}

func optionalInt(name, attr, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("sparrow: SubTexture %q: bad %s value %q", name, attr, v)
	}
	return n, nil
}

// parseRotated accepts strconv.ParseBool's true/false spellings. Some
// exporters write rotated="false" explicitly, so attribute presence alone
// is not enough to mark a sprite rotated.
func parseRotated(name, v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("sparrow: SubTexture %q: bad rotated value %q", name, v)
	}
	return b, nil
}
