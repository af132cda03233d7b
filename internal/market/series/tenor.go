package series

import "sort"

// Tenor identifies a point on the rate term structure by its canonical label.
type Tenor string

// Canonical tenor labels, shortest to longest maturity.
const (
	TenorCash    Tenor = "cash"
	Tenor1Month  Tenor = "1month"
	Tenor2Month  Tenor = "2month"
	Tenor3Month  Tenor = "3month"
	Tenor6Month  Tenor = "6month"
	Tenor9Month  Tenor = "9month"
	Tenor1Year   Tenor = "1year"
	Tenor2Year   Tenor = "2year"
	Tenor3Year   Tenor = "3year"
	Tenor5Year   Tenor = "5year"
	Tenor7Year   Tenor = "7year"
	Tenor10Year  Tenor = "10year"
	Tenor15Year  Tenor = "15year"
	Tenor20Year  Tenor = "20year"
	Tenor30Year  Tenor = "30year"
	Tenor40Year  Tenor = "40year"
	Tenor50Year  Tenor = "50year"
)

// TenorOrder lists every canonical tenor in term-structure order. Backends
// that carry fewer maturities produce curves restricted to a subsequence of
// this order.
var TenorOrder = []Tenor{
	TenorCash,
	Tenor1Month,
	Tenor2Month,
	Tenor3Month,
	Tenor6Month,
	Tenor9Month,
	Tenor1Year,
	Tenor2Year,
	Tenor3Year,
	Tenor5Year,
	Tenor7Year,
	Tenor10Year,
	Tenor15Year,
	Tenor20Year,
	Tenor30Year,
	Tenor40Year,
	Tenor50Year,
}

// maturityCodes maps internal maturity codes, as stored by the data source,
// to canonical tenor labels. The y2 code is recognized for completeness, but
// readers always overwrite the 2-year tenor with the synthesized value.
var maturityCodes = map[string]Tenor{
	"m0":  TenorCash,
	"m1":  Tenor1Month,
	"m2":  Tenor2Month,
	"m3":  Tenor3Month,
	"m6":  Tenor6Month,
	"m9":  Tenor9Month,
	"y1":  Tenor1Year,
	"y2":  Tenor2Year,
	"y3":  Tenor3Year,
	"y5":  Tenor5Year,
	"y7":  Tenor7Year,
	"y10": Tenor10Year,
	"y15": Tenor15Year,
	"y20": Tenor20Year,
	"y30": Tenor30Year,
	"y40": Tenor40Year,
	"y50": Tenor50Year,
}

var tenorRank = func() map[Tenor]int {
	rank := make(map[Tenor]int, len(TenorOrder))
	for i, t := range TenorOrder {
		rank[t] = i
	}
	return rank
}()

// TenorForCode returns the canonical tenor label for an internal maturity
// code. The second return is false for unrecognized codes.
func TenorForCode(code string) (Tenor, bool) {
	t, ok := maturityCodes[code]
	return t, ok
}

// SortTenors orders tenors in place by term-structure position. Unknown
// tenors sort after all known ones.
func SortTenors(tenors []Tenor) {
	sort.Slice(tenors, func(i, j int) bool {
		return tenorPos(tenors[i]) < tenorPos(tenors[j])
	})
}

func tenorPos(t Tenor) int {
	if r, ok := tenorRank[t]; ok {
		return r
	}
	return len(TenorOrder)
}
