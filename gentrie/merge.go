package gentrie

// MergeWithKey merges two maps of the same shape. Keys present in
// both sides go through combine, which decides the result value and
// presence. Runs of keys present on one side only are passed, as
// whole maps, to onlyLeft and onlyRight.
//
// Precondition, not checked at runtime: onlyLeft and onlyRight must
// not introduce keys absent from their input. A transform that does
// silently breaks canonical emptiness and every equality or emptiness
// check derived from it.
func MergeWithKey(
	combine func(k Key, a, b interface{}) (interface{}, bool),
	onlyLeft, onlyRight func(Map) Map,
	x, y Map,
) Map {
	shape := x.shape
	root := shape.merge(
		combine,
		func(n node) node { return onlyLeft(Map{shape, n}).root },
		func(n node) node { return onlyRight(Map{shape, n}).root },
		x.root, y.root)
	return Map{shape, root}
}

// Union combines two maps of the same shape, keeping one-sided
// entries as they are and resolving clashes with f.
func Union(f func(k Key, a, b interface{}) interface{}, x, y Map) Map {
	id := func(m Map) Map { return m }
	return MergeWithKey(func(k Key, a, b interface{}) (interface{}, bool) {
		return f(k, a, b), true
	}, id, id, x, y)
}

// Equal reports whether two maps of the same shape hold the same
// entries, comparing values with ==. Values must be comparable; use
// EqualFunc otherwise.
func Equal(x, y Map) bool {
	return EqualFunc(func(a, b interface{}) bool { return a == b }, x, y)
}

// EqualFunc is Equal with a caller value predicate. The check is a
// merge to the empty map: any one-sided key or value mismatch leaves
// a marker behind, so the merge result is empty exactly when the maps
// agree.
func EqualFunc(eq func(a, b interface{}) bool, x, y Map) bool {
	mark := func(m Map) Map {
		return m.MapMaybe(func(Key, interface{}) (interface{}, bool) {
			return false, true
		})
	}
	diff := MergeWithKey(func(_ Key, a, b interface{}) (interface{}, bool) {
		if eq(a, b) {
			return nil, false
		}
		return false, true
	}, mark, mark, x, y)
	return diff.IsEmpty()
}
