// ABOUTME: Stage-selection table keyed on (fromWidth, toWidth)
package convert

// reduceRow is one entry in the fast-reducer table: at equal sample rates
// and matching signedness, converting fromWidth to toWidth can skip the
// float round-trip and run kind directly.
type reduceRow struct {
	fromWidth Width
	toWidth   Width
	kind      reduceKind
}

var reduceTable = []reduceRow{
	{fromWidth: Width32, toWidth: Width16, kind: reduce32to16},
	{fromWidth: Width32, toWidth: Width24, kind: reduce32to24},
	{fromWidth: Width32, toWidth: Width24Packed, kind: reduce32to24Packed},
	{fromWidth: Width24, toWidth: Width16, kind: reduce24to16},
}

// lookupReducePath finds the fast-reducer row for fromWidth -> toWidth,
// reporting ok=false if no row matches.
func lookupReducePath(fromWidth, toWidth Width) (kind reduceKind, ok bool) {
	for _, row := range reduceTable {
		if row.fromWidth == fromWidth && row.toWidth == toWidth {
			return row.kind, true
		}
	}
	return 0, false
}
