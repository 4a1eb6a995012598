package render

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExampleHeading is drawn on the sample flyer shown before any template exists
const ExampleHeading = "Exemplo - Tabloide (sem template cadastrado)"

// ExampleFlyer is a 3x4 sheet of "Produto A".."Produto L" priced 19.90 to 129.90
func ExampleFlyer() Flyer {
	f := Flyer{
		Heading:   ExampleHeading,
		Columns:   3,
		Rows:      4,
		Primary:   ExampleFill,
		Alternate: ExampleFill,
		Cells:     make(map[int]Cell, 12),
	}
	base := decimal.RequireFromString("19.90")
	for i := 0; i < 12; i++ {
		f.Cells[i] = Cell{
			Name:  fmt.Sprintf("Produto %c", 'A'+i),
			Price: base.Add(decimal.NewFromInt(int64(10 * i))),
		}
	}
	return f
}
