package render

// Rect is an axis aligned box with the origin at the top-left corner of the sheet
type Rect struct {
	X, Y, W, H float64
}

// Grid tiles a rectangle into equal cells, row 0 at the top
type Grid struct {
	Columns int
	Rows    int
	Area    Rect
}

func (g Grid) cellSize() (float64, float64) {
	return g.Area.W / float64(g.Columns), g.Area.H / float64(g.Rows)
}

// Row returns the full-width band of row r
func (g Grid) Row(r int) Rect {
	_, h := g.cellSize()
	return Rect{X: g.Area.X, Y: g.Area.Y + float64(r)*h, W: g.Area.W, H: h}
}

// Cell returns the box of the zero-based cell index, walked row-major
func (g Grid) Cell(index int) Rect {
	w, h := g.cellSize()
	r, c := index/g.Columns, index%g.Columns
	return Rect{X: g.Area.X + float64(c)*w, Y: g.Area.Y + float64(r)*h, W: w, H: h}
}
