package sprite

// Record describes one SubTexture in its final display orientation.
// X, Y, W, H is the packed rectangle in source-sheet pixels; PosX, PosY is
// the trim offset from the sprite's full bounding box to where the packed
// content begins (Sparrow frameX/frameY, usually negative or zero).
type Record struct {
	Name    string
	X, Y    int
	W, H    int
	PosX    int
	PosY    int
	Rotated bool
}

// NewRecord builds a Record in display orientation. Rotated sprites store
// their pixels turned 90 degrees, so their packed width/height and trim
// offsets arrive swapped; both pairs are swapped back here. After
// construction W, H and PosX, PosY always describe the un-rotated sprite,
// while Rotated still marks that the pixel data needs a 90 degree
// correction when copied out of the sheet.
func NewRecord(name string, x, y, w, h, posX, posY int, rotated bool) Record {
	if rotated {
		w, h = h, w
		posX, posY = posY, posX
	}
	return Record{
		Name:    name,
		X:       x,
		Y:       y,
		W:       w,
		H:       h,
		PosX:    posX,
		PosY:    posY,
		Rotated: rotated,
	}
}

// Eq compares the six geometry fields only. Name and Rotated are ignored,
// so differently named sprites sharing a packed rectangle and trim offset
// count as the same sprite.
func (r Record) Eq(o Record) bool {
	return r.X == o.X && r.Y == o.Y &&
		r.W == o.W && r.H == o.H &&
		r.PosX == o.PosX && r.PosY == o.PosY
}

// TrimW returns the width of the sprite's full bounding box, i.e. the
// packed width minus the (usually negative) horizontal trim offset.
func (r Record) TrimW() int { return r.W - r.PosX }

// TrimH returns the height of the sprite's full bounding box.
func (r Record) TrimH() int { return r.H - r.PosY }
