package profile

// FlipoName is the name of the built-in table generation for the flipo.io
// modules released in 2023.
const FlipoName = "flipo-2023"

var flipo2023 = mustNew(FlipoName,
	&Shape{Type: D7SEG, Name: "D7SEG", Kind: Segment, Rows: 7, Cols: 5, Width: 3, On: seg7On, Off: seg7Off},
	&Shape{Type: D3X1, Name: "D3X1", Kind: Line, Rows: 3, Cols: 1, Width: 1, On: dots3x1On, Off: dots3x1Off},
	&Shape{Type: D1X3, Name: "D1X3", Kind: Line, Rows: 1, Cols: 3, Width: 1, On: line1x3On, Off: line1x3Off},
	&Shape{Type: D1X7, Name: "D1X7", Kind: Line, Rows: 1, Cols: 7, Width: 2, On: line1x7On, Off: line1x7Off},
	&Shape{Type: D2X6, Name: "D2X6", Kind: Matrix, Rows: 2, Cols: 6, Width: 2, On: matrix2x6On, Off: matrix2x6Off},
	&Shape{Type: D3X3, Name: "D3X3", Kind: Matrix, Rows: 3, Cols: 3, Width: 2, On: matrix3x3On, Off: matrix3x3Off},
	&Shape{Type: D3X4, Name: "D3X4", Kind: Matrix, Rows: 4, Cols: 3, Width: 2, On: matrix3x4On, Off: matrix3x4Off},
	&Shape{Type: D3X5, Name: "D3X5", Kind: Matrix, Rows: 5, Cols: 3, Width: 2, On: matrix3x5On, Off: matrix3x5Off},
)

func init() {
	Register(flipo2023)
}

func mustNew(name string, shapes ...*Shape) *Profile {
	p, err := New(name, shapes...)
	if err != nil {
		panic(err)
	}
	return p
}
