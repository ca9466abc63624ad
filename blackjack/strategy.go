package blackjack

// Code is a strategy-table cell: the recommended action plus, where the
// primary action may be unavailable at the table, its fallback.
type Code string

const (
	CodeStand       Code = "S"
	CodeHit         Code = "H"
	CodeDouble      Code = "D"
	CodeDoubleHit   Code = "Dh" // double if allowed, otherwise hit
	CodeDoubleStand Code = "Ds" // double if allowed, otherwise stand
	CodeSplit       Code = "P"
	CodeSplitHit    Code = "Ph" // split if doubling after split is allowed, otherwise hit
	CodeSurrender   Code = "R"
)

// Legend describes the table cell codes for renderers.
const Legend = "S=Stand, H=Hit, D=Double, Dh=Double/Hit, Ds=Double/Stand, P=Split, Ph=Split/Hit, R=Surrender"

// Decide reduces an EV vector to its table code. When doubling wins, the
// stand and hit EVs from the same vector determine the fallback tag: the
// choice a player must make at tables that disallow the double.
func Decide(evs EVs) Code {
	action, _ := evs.Best()
	switch action {
	case Stand:
		return CodeStand
	case Double:
		if evs[Stand] >= evs[Hit] {
			return CodeDoubleStand
		}
		return CodeDoubleHit
	case Split:
		return CodeSplit
	case Surrender:
		return CodeSurrender
	default:
		return CodeHit
	}
}
