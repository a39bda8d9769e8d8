package gentrie

// Key is a key in its structural form. The concrete value depends on
// the shape position it is consumed by: UnitKey for Unit, Pair for
// Product, Left/Right for Sum, and a byte, rune, int64 or *big.Int at
// the leaves.
type Key = interface{}

// UnitKey is the only key of the Unit shape.
type UnitKey struct{}

// Pair addresses an entry of a Product shape.
type Pair struct {
	Fst, Snd Key
}

// Left tags a key of the first alternative of a Sum shape.
type Left struct {
	Key Key
}

// Right tags a key of the second alternative of a Sum shape.
type Right struct {
	Key Key
}

// Item is one key/value entry, as produced by Items.
type Item struct {
	Key Key
	Val interface{}
}
